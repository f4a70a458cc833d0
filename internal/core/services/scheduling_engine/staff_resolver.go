package scheduling_engine

import (
	"context"
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

func (e *SchedulingEngine) findService(serviceID string) *domain.ServiceDefinition {
	for i := range e.services {
		if e.services[i].ID == serviceID {
			return &e.services[i]
		}
	}
	return nil
}

// resolveStaff выбирает сотрудника для запроса.
// Явный staffId — только поиск по идентификатору, доступность проверяется
// дальше по конвейеру. Без staffId — first-fit: первый по порядку списка
// подходящий по специализации сотрудник без конфликтов в календаре.
// Порядок списка значим, это не оптимальное назначение.
func (e *SchedulingEngine) resolveStaff(ctx context.Context, request domain.BookingRequest, requestedStart time.Time, durationMinutes, bufferMinutes int) *domain.StaffMember {
	staffList := e.calendarPort.StaffSnapshot(ctx)

	if request.StaffID != "" {
		for i := range staffList {
			if staffList[i].ID == request.StaffID {
				return &staffList[i]
			}
		}
		return nil
	}

	service := e.findService(request.ServiceID)
	if service == nil {
		return nil
	}

	for i := range staffList {
		staff := &staffList[i]

		// Фильтр по специализации действует только для услуг со специалистом
		if service.RequiresSpecialist && len(service.SpecialtiesRequired) > 0 &&
			!staff.HasAnySpecialty(service.SpecialtiesRequired) {
			continue
		}

		if len(FindConflicts(staff.Appointments, requestedStart, durationMinutes, bufferMinutes)) == 0 {
			return staff
		}
	}

	return nil
}
