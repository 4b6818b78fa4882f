package get_turf_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/internal/service/bookings/models"
)

// ParseQuery разбирает query-параметры фильтрации в модель сервиса
// Поддерживаются startDate, endDate (YYYY-MM-DD), status, includeInactive
func ParseQuery(query url.Values, turfID, userID int64) (*models.GetTurfBookingsRequest, error) {
	req := &models.GetTurfBookingsRequest{
		TurfID: turfID,
		UserID: userID,
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	return req, nil
}
