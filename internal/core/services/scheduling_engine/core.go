package scheduling_engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/json_types"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// SchedulingEngine — оркестратор проверки доступности: линейный конвейер
// валидация → выбор сотрудника → график сотрудника → конфликты → успех.
// Каждая стадия либо пропускает дальше, либо дает терминальный результат.
// Движок только читает календари, фиксация записи идет через CalendarPort.
type SchedulingEngine struct {
	config       domain.BusinessCalendarConfig
	services     []domain.ServiceDefinition
	tz           *TimezoneManager
	calendarPort out.CalendarPort
	cachePort    out.CachePort
	logger       out.LoggerPort

	// Источник текущего времени, подменяется в тестах
	nowFunc func() time.Time
}

func NewSchedulingEngine(
	config domain.BusinessCalendarConfig,
	services []domain.ServiceDefinition,
	calendarPort out.CalendarPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
) (*SchedulingEngine, error) {
	// Падаем сразу на плохой конфигурации арендатора, а не на каждом запросе
	tz, err := NewTimezoneManager(config.Timezone)
	if err != nil {
		return nil, err
	}

	return &SchedulingEngine{
		config:       config,
		services:     services,
		tz:           tz,
		calendarPort: calendarPort,
		cachePort:    cachePort,
		logger:       logger.WithModule("SchedulingEngine"),
		nowFunc:      time.Now,
	}, nil
}

// requestWindow — разобранный запрошенный интервал в таймзоне арендатора
type requestWindow struct {
	start           time.Time
	clock           domain.WallClock
	durationMinutes int
	bufferMinutes   int
}

func (e *SchedulingEngine) requestWindow(request domain.BookingRequest) (requestWindow, error) {
	loc, err := e.tz.location(request.Timezone)
	if err != nil {
		return requestWindow{}, err
	}

	day, err := time.ParseInLocation("2006-01-02", request.RequestedDate, loc)
	if err != nil {
		return requestWindow{}, fmt.Errorf("%w: bad requested date %q", domain.ErrInvalidRequest, request.RequestedDate)
	}

	clock, err := domain.ParseWallClock(request.RequestedTime)
	if err != nil {
		return requestWindow{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	service := e.findService(request.ServiceID)

	// Длительность приходит в запросе, услуга — запасной источник
	duration := request.ServiceDuration
	if duration <= 0 && service != nil {
		duration = service.DurationMinutes
	}

	// Приоритет буфера: запрос, затем услуга, затем арендатор
	buffer := request.BufferTime
	if buffer <= 0 && service != nil {
		buffer = service.BufferTimeMinutes
	}
	if buffer <= 0 {
		buffer = e.config.BufferTimeMinutes
	}

	return requestWindow{
		start:           time.Date(day.Year(), day.Month(), day.Day(), clock.Hour, clock.Minute, 0, 0, loc),
		clock:           clock,
		durationMinutes: duration,
		bufferMinutes:   buffer,
	}, nil
}

// CheckAvailability — единственная публичная операция проверки:
// отвечает "был бы этот слот валиден прямо сейчас", ничего не резервируя
func (e *SchedulingEngine) CheckAvailability(ctx context.Context, request domain.BookingRequest) (*domain.AvailabilityResult, error) {
	e.logger.Info("availability.check.started", out.LogFields{
		"tenantId":  request.TenantID,
		"serviceId": request.ServiceID,
		"date":      request.RequestedDate,
		"time":      request.RequestedTime,
		"staffId":   request.StaffID,
	})

	result, _, err := e.evaluate(ctx, request, true)
	if err != nil {
		e.logger.Error("availability.check.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	e.logger.Info("availability.check.finished", out.LogFields{
		"isAvailable": result.IsAvailable,
		"reason":      result.Reason,
	})

	return result, nil
}

// evaluate прогоняет запрос через конвейер. withSuggestions управляет подбором
// альтернатив на терминальных стадиях и выключен при проверке кандидатов
// внутри самого подбора. Вторым значением возвращается выбранный сотрудник.
func (e *SchedulingEngine) evaluate(ctx context.Context, request domain.BookingRequest, withSuggestions bool) (*domain.AvailabilityResult, *domain.StaffMember, error) {
	window, err := e.requestWindow(request)
	if err != nil {
		return nil, nil, err
	}

	// Стадия 1: бизнес-правила арендатора
	if reason := e.validateRequest(request, window.start, window.clock, window.durationMinutes, e.nowFunc()); reason != "" {
		// Запрос невалиден независимо от сотрудника и слота, альтернативы не считаем
		return &domain.AvailabilityResult{IsAvailable: false, Reason: reason}, nil, nil
	}

	// Стадия 2: выбор сотрудника
	staff := e.resolveStaff(ctx, request, window.start, window.durationMinutes, window.bufferMinutes)
	if staff == nil {
		result := &domain.AvailabilityResult{
			IsAvailable: false,
			Reason:      domain.ReasonStaffUnavailable,
		}
		if withSuggestions {
			result.SuggestedSlots = e.suggestSlots(ctx, request, DefaultMaxSuggestions)
		}
		return result, nil, nil
	}

	// Стадия 3: персональный график выбранного сотрудника
	if reason := e.validateStaffSchedule(*staff, request.RequestedDate, window.start, window.clock, window.durationMinutes); reason != "" {
		return &domain.AvailabilityResult{IsAvailable: false, Reason: reason}, staff, nil
	}

	// Стадия 4: конфликты с существующими записями
	conflicts := FindConflicts(staff.Appointments, window.start, window.durationMinutes, window.bufferMinutes)
	if len(conflicts) > 0 {
		e.logger.Debug("availability.check.conflict_detected", out.LogFields{
			"staffId":        staff.ID,
			"conflictsCount": len(conflicts),
		})

		result := &domain.AvailabilityResult{
			IsAvailable: false,
			Reason:      domain.ReasonDoubleBooking,
			Conflicts:   conflicts,
		}
		if withSuggestions {
			result.SuggestedSlots = e.suggestSlots(ctx, request, DefaultMaxSuggestions)
		}
		return result, staff, nil
	}

	return &domain.AvailabilityResult{IsAvailable: true}, staff, nil
}

// BookAppointment — проверка плюс фиксация. Проверка сама по себе ничего
// не резервирует, поэтому коммит перепроверяет конфликты под блокировкой
// календаря сотрудника — два конкурентных запроса на один слот не пройдут оба.
func (e *SchedulingEngine) BookAppointment(ctx context.Context, request domain.BookingRequest) (*domain.BookingResult, error) {
	result, staff, err := e.evaluate(ctx, request, true)
	if err != nil {
		return nil, err
	}

	if !result.IsAvailable {
		return &domain.BookingResult{Success: false, Availability: *result}, nil
	}

	window, err := e.requestWindow(request)
	if err != nil {
		return nil, err
	}

	slot := domain.AppointmentSlot{
		ID:        uuid.New(),
		StartDate: json_types.DateTime{Date: window.start.UTC()},
		EndDate:   json_types.DateTime{Date: window.start.Add(time.Duration(window.durationMinutes) * time.Minute).UTC()},
		ServiceID: request.ServiceID,
		Status:    domain.AppointmentStatusConfirmed,
	}

	err = e.calendarPort.CommitAppointment(ctx, staff.ID, slot, func(existing []domain.AppointmentSlot) []domain.AppointmentSlot {
		return FindConflicts(existing, window.start, window.durationMinutes, window.bufferMinutes)
	})
	if err != nil {
		if errors.Is(err, out.ErrCommitConflict) {
			// Слот заняли между проверкой и фиксацией
			e.logger.Warn("booking.commit.conflict", out.LogFields{
				"staffId": staff.ID,
				"date":    request.RequestedDate,
				"time":    request.RequestedTime,
			})

			return &domain.BookingResult{
				Success: false,
				Availability: domain.AvailabilityResult{
					IsAvailable:    false,
					Reason:         domain.ReasonDoubleBooking,
					SuggestedSlots: e.suggestSlots(ctx, request, DefaultMaxSuggestions),
				},
			}, nil
		}
		return nil, err
	}

	e.logger.Info("booking.committed", out.LogFields{
		"appointmentId": slot.ID,
		"staffId":       staff.ID,
		"serviceId":     request.ServiceID,
		"date":          request.RequestedDate,
		"time":          request.RequestedTime,
	})

	return &domain.BookingResult{
		Success:       true,
		AppointmentID: slot.ID,
		StaffID:       staff.ID,
		StaffName:     staff.Name,
		Availability:  *result,
	}, nil
}

// Timezones возвращает менеджер таймзон движка
func (e *SchedulingEngine) Timezones() *TimezoneManager {
	return e.tz
}
