package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-TurfService/internal/domain"
	"github.com/m04kA/SMC-TurfService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TurfService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с окнами обслуживания площадок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон обслуживания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTurfAndDate получает окна обслуживания площадки на дату
// Окна только читаются: расписание ведёт владелец через административный контур
func (r *Repository) GetByTurfAndDate(ctx context.Context, turfID int64, date time.Time) ([]*domain.MaintenanceBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"turf_id",
		"date",
		"start_time",
		"end_time",
		"reason",
	).
		From("maintenance_blocks").
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.Eq{"date": date}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	blocks := make([]*domain.MaintenanceBlock, 0)
	for rows.Next() {
		var block domain.MaintenanceBlock
		err := rows.Scan(
			&block.ID,
			&block.TurfID,
			&block.Date,
			&block.StartTime,
			&block.EndTime,
			&block.Reason,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByTurfAndDate - scan block: %v", ErrScanRow, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByTurfAndDate - rows error: %v", ErrScanRow, err)
	}

	return blocks, nil
}
