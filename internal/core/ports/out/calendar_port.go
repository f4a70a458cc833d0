package out

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

// ErrCommitConflict — guard нашел конфликт под блокировкой, запись не зафиксирована
var ErrCommitConflict = errors.New("appointment commit conflict")

// ErrStaffNotFound — сотрудник отсутствует в календарном хранилище
var ErrStaffNotFound = errors.New("staff member not found")

// ConflictGuard выполняется под блокировкой календаря сотрудника
// непосредственно перед записью и возвращает конфликтующие записи.
// Коммит отменяется, если guard вернул непустой список.
type ConflictGuard func(existing []domain.AppointmentSlot) []domain.AppointmentSlot

type CalendarPort interface {
	// Снимок календарей всех сотрудников в порядке из конфигурации арендатора.
	// Порядок значим: разрешение сотрудника работает по принципу first-fit.
	StaffSnapshot(ctx context.Context) []domain.StaffMember
	GetStaff(ctx context.Context, staffID string) (domain.StaffMember, bool)

	// Транзакционная фиксация записи: guard перепроверяет конфликты
	// под блокировкой, закрывая гонку check-then-act
	CommitAppointment(ctx context.Context, staffID string, slot domain.AppointmentSlot, guard ConflictGuard) error

	// Репликация событий записи из внешнего контура бронирования
	ApplyAppointment(ctx context.Context, staffID string, slot domain.AppointmentSlot) error
	RemoveAppointment(ctx context.Context, staffID string, appointmentID uuid.UUID) bool
}
