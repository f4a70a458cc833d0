package scheduling_engine

import (
	"time"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

// FindConflicts возвращает все записи, пересекающиеся с запрошенным интервалом.
// Буфер применяется асимметрично — только как хвостовой зазор после конца
// записи, ведущего буфера перед началом нет. От этой семантики зависит
// достижимость слотов "впритык", менять ее нельзя без согласования с продуктом.
func FindConflicts(appointments []domain.AppointmentSlot, requestedStart time.Time, durationMinutes, bufferMinutes int) []domain.AppointmentSlot {
	requestedEnd := requestedStart.Add(time.Duration(durationMinutes) * time.Minute)
	requestedEndBuffered := requestedEnd.Add(time.Duration(bufferMinutes) * time.Minute)

	conflicts := make([]domain.AppointmentSlot, 0)

	for _, appointment := range appointments {
		appointmentStart := appointment.StartDate.Date
		appointmentEndBuffered := appointment.EndDate.Date.Add(time.Duration(bufferMinutes) * time.Minute)

		// Начало запрошенного интервала попадает в [start, endBuffered)
		startsInside := !requestedStart.Before(appointmentStart) && requestedStart.Before(appointmentEndBuffered)
		// Буферизованный конец попадает в (start, endBuffered]
		endsInside := requestedEndBuffered.After(appointmentStart) && !requestedEndBuffered.After(appointmentEndBuffered)
		// Запрошенный интервал целиком накрывает буферизованную запись
		contains := !requestedStart.After(appointmentStart) && !requestedEndBuffered.Before(appointmentEndBuffered)

		if startsInside || endsInside || contains {
			conflicts = append(conflicts, appointment)
		}
	}

	return conflicts
}
