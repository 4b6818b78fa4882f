package domain

import "github.com/m04kA/SMC-TurfService/pkg/types"

// Overlaps проверяет пересечение двух полуинтервалов [aStart, aEnd) и [bStart, bEnd)
// одного рабочего дня. Интервал с end <= start продолжается за полночь
// в следующие календарные сутки. Граничащие интервалы не пересекаются.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	aS, aE := normalize(aStart, aEnd)
	bS, bE := normalize(bStart, bEnd)

	// Интервал через полночь может пересекать второй по обе стороны
	// границы суток, поэтому дополнительно проверяется сдвиг на сутки
	return intersects(aS, aE, bS, bE) ||
		intersects(aS, aE, bS+types.MinutesPerDay, bE+types.MinutesPerDay) ||
		intersects(aS+types.MinutesPerDay, aE+types.MinutesPerDay, bS, bE)
}

// normalize переводит интервал в минуты с полуночи; конец за полночью
// сдвигается на сутки вперед
func normalize(start, end types.TimeString) (int, int) {
	s := minutesOf(start)
	e := minutesOf(end)
	if e <= s {
		e += types.MinutesPerDay
	}
	return s, e
}

func intersects(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// Времена приходят провалидированными на границах системы
func minutesOf(t types.TimeString) int {
	m, err := t.MinutesFromMidnight()
	if err != nil {
		return 0
	}
	return m
}
