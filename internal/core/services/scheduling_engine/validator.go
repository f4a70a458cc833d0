package scheduling_engine

import (
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

// Функция для проверки вхождения интервала в часы работы:
// начало не раньше открытия, конец не позже закрытия
func isWithinHours(clock domain.WallClock, durationMinutes int, hours domain.DayHours) bool {
	start := clock.Minutes()
	end := start + durationMinutes
	return start >= hours.Open.Minutes() && end <= hours.Close.Minutes()
}

// validateRequest — проверки бизнес-правил арендатора.
// Порядок фиксирован, короткое замыкание на первой нарушенной проверке:
// прошлое, слишком далеко вперед, недостаточный запас, праздник, часы работы.
func (e *SchedulingEngine) validateRequest(request domain.BookingRequest, requestStart time.Time, clock domain.WallClock, durationMinutes int, now time.Time) domain.UnavailableReason {
	if requestStart.Before(now) {
		return domain.ReasonInPast
	}

	maxDate := now.AddDate(0, 0, e.config.MaxAdvanceBookingDays)
	if requestStart.After(maxDate) {
		return domain.ReasonTooFarAhead
	}

	if requestStart.Sub(now) < time.Duration(e.config.MinBookingNotice)*time.Minute {
		return domain.ReasonInsufficientNotice
	}

	if e.config.IsHoliday(request.RequestedDate) {
		return domain.ReasonHolidayClosed
	}

	hours, open := e.config.BusinessHours.ForDate(requestStart)
	if !open {
		return domain.ReasonOutsideBusinessHours
	}
	if !isWithinHours(clock, durationMinutes, hours) {
		return domain.ReasonOutsideBusinessHours
	}

	return ""
}

// validateStaffSchedule — те же проверки дня и часов, но против персонального
// графика уже выбранного сотрудника и его закрытых дат
func (e *SchedulingEngine) validateStaffSchedule(staff domain.StaffMember, date string, requestStart time.Time, clock domain.WallClock, durationMinutes int) domain.UnavailableReason {
	hours, working := staff.WorkingHours.ForDate(requestStart)
	if !working {
		return domain.ReasonStaffDayOff
	}

	if !isWithinHours(clock, durationMinutes, hours) {
		return domain.ReasonStaffOutsideHours
	}

	if staff.IsUnavailableOn(date) {
		return domain.ReasonStaffBlackout
	}

	return ""
}
