package scheduling_engine

import (
	"context"
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
	"github.com/suchimauz/booking-scheduling-engine/internal/utils"
)

const (
	// Значения по умолчанию для подбора альтернативных слотов
	DefaultMaxSuggestions     = 5
	SuggestionWindowDays      = 7
	SuggestionIntervalMinutes = 30
)

// SuggestSlots подбирает альтернативные слоты, когда запрошенный недоступен
func (e *SchedulingEngine) SuggestSlots(ctx context.Context, request domain.BookingRequest, maxSuggestions int) ([]domain.TimeSlot, error) {
	if _, err := e.requestWindow(request); err != nil {
		return nil, err
	}

	return e.suggestSlots(ctx, request, maxSuggestions), nil
}

// suggestSlots — перебор вперед по календарным дням начиная с запрошенной даты,
// до SuggestionWindowDays дней включая нулевой. Для каждого открытого дня
// генерируется полная сетка слотов, каждый кандидат проходит полную проверку
// доступности как свежий запрос — подбор никогда не предлагает невалидный слот.
// Прямой перебор намеренный: сетка небольшая, порядка сотни слотов в день.
func (e *SchedulingEngine) suggestSlots(ctx context.Context, request domain.BookingRequest, maxSuggestions int) []domain.TimeSlot {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	suggestions := make([]domain.TimeSlot, 0, maxSuggestions)

	loc, err := e.tz.location(request.Timezone)
	if err != nil {
		return suggestions
	}

	dayStart, err := time.ParseInLocation("2006-01-02", request.RequestedDate, loc)
	if err != nil {
		return suggestions
	}

	// Длительность для конца слота считается как в requestWindow
	duration := request.ServiceDuration
	if service := e.findService(request.ServiceID); duration <= 0 && service != nil {
		duration = service.DurationMinutes
	}

	e.logger.Debug("suggestions.generate.started", out.LogFields{
		"requestedDate": request.RequestedDate,
		"maxCount":      maxSuggestions,
	})

	day := dayStart
	for dayOffset := 0; dayOffset < SuggestionWindowDays && len(suggestions) < maxSuggestions; dayOffset, day = dayOffset+1, utils.StartNextDay(day) {
		date := day.Format("2006-01-02")

		hours, open := e.config.BusinessHours.ForDate(day)
		if !open {
			continue
		}

		grid := e.slotGrid(ctx, date, hours, SuggestionIntervalMinutes)

		for _, start := range grid {
			if len(suggestions) >= maxSuggestions {
				break
			}

			candidate := request
			candidate.RequestedDate = date
			candidate.RequestedTime = start.String()

			// Полная перепроверка кандидата без рекурсивного подбора альтернатив
			result, staff, err := e.evaluate(ctx, candidate, false)
			if err != nil || !result.IsAvailable || staff == nil {
				continue
			}

			suggestions = append(suggestions, domain.TimeSlot{
				Start:     date + "T" + start.String(),
				End:       date + "T" + start.AddMinutes(duration).String(),
				StaffID:   staff.ID,
				StaffName: staff.Name,
			})
		}
	}

	e.logger.Debug("suggestions.generate.finished", out.LogFields{
		"count": len(suggestions),
	})

	// Сортируем по времени начала, ранние слоты первыми
	return TimeSlotSlice(suggestions).quickSort()
}
