package calendar

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/ports/out"
)

// staffEntry — календарь одного сотрудника со своей блокировкой и версией.
// Все записи в календарь сериализованы per-staff, чтение отдает копию.
type staffEntry struct {
	mu      sync.Mutex
	version uint64
	member  domain.StaffMember
}

// CalendarStore — in-memory хранилище календарей сотрудников.
// Движок читает снимки, путь фиксации пишет под блокировкой сотрудника —
// инвариант отсутствия двойных записей сохраняется под конкуренцией.
type CalendarStore struct {
	mu     sync.RWMutex
	staff  map[string]*staffEntry
	order  []string
	logger out.LoggerPort
}

func NewCalendarStore(staffList []domain.StaffMember, logger out.LoggerPort) *CalendarStore {
	store := &CalendarStore{
		staff:  make(map[string]*staffEntry, len(staffList)),
		order:  make([]string, 0, len(staffList)),
		logger: logger.WithModule("CalendarStore"),
	}

	for _, member := range staffList {
		store.staff[member.ID] = &staffEntry{member: copyStaff(member)}
		store.order = append(store.order, member.ID)
	}

	return store
}

// copyStaff делает копию с собственным слайсом записей,
// чтобы снимки не делили память с хранилищем
func copyStaff(member domain.StaffMember) domain.StaffMember {
	appointments := make([]domain.AppointmentSlot, len(member.Appointments))
	copy(appointments, member.Appointments)
	member.Appointments = appointments
	return member
}

// StaffSnapshot возвращает снимок всех календарей в порядке конфигурации.
// Порядок значим: выбор сотрудника работает по принципу first-fit.
func (s *CalendarStore) StaffSnapshot(ctx context.Context) []domain.StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make([]domain.StaffMember, 0, len(s.order))
	for _, id := range s.order {
		entry := s.staff[id]
		entry.mu.Lock()
		snapshot = append(snapshot, copyStaff(entry.member))
		entry.mu.Unlock()
	}

	return snapshot
}

func (s *CalendarStore) GetStaff(ctx context.Context, staffID string) (domain.StaffMember, bool) {
	s.mu.RLock()
	entry, exists := s.staff[staffID]
	s.mu.RUnlock()

	if !exists {
		return domain.StaffMember{}, false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return copyStaff(entry.member), true
}

// CommitAppointment — транзакционная фиксация: guard перепроверяет конфликты
// над актуальным списком под блокировкой сотрудника. Это закрывает гонку
// check-then-act, когда два вызова успели увидеть isAvailable=true.
func (s *CalendarStore) CommitAppointment(ctx context.Context, staffID string, slot domain.AppointmentSlot, guard out.ConflictGuard) error {
	s.mu.RLock()
	entry, exists := s.staff[staffID]
	s.mu.RUnlock()

	if !exists {
		return out.ErrStaffNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if guard != nil {
		if conflicts := guard(entry.member.Appointments); len(conflicts) > 0 {
			s.logger.Warn("calendar.commit.conflict", out.LogFields{
				"staffId":        staffID,
				"appointmentId":  slot.ID,
				"conflictsCount": len(conflicts),
				"version":        entry.version,
			})
			return out.ErrCommitConflict
		}
	}

	entry.member.Appointments = append(entry.member.Appointments, slot)
	entry.version++

	s.logger.Debug("calendar.commit.applied", out.LogFields{
		"staffId":       staffID,
		"appointmentId": slot.ID,
		"version":       entry.version,
	})

	return nil
}

// ApplyAppointment — репликация записи, созданной внешним контуром бронирования.
// Идемпотентна по идентификатору записи.
func (s *CalendarStore) ApplyAppointment(ctx context.Context, staffID string, slot domain.AppointmentSlot) error {
	s.mu.RLock()
	entry, exists := s.staff[staffID]
	s.mu.RUnlock()

	if !exists {
		return out.ErrStaffNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	for i := range entry.member.Appointments {
		if entry.member.Appointments[i].ID == slot.ID {
			entry.member.Appointments[i] = slot
			entry.version++
			return nil
		}
	}

	entry.member.Appointments = append(entry.member.Appointments, slot)
	entry.version++

	return nil
}

func (s *CalendarStore) RemoveAppointment(ctx context.Context, staffID string, appointmentID uuid.UUID) bool {
	s.mu.RLock()
	entry, exists := s.staff[staffID]
	s.mu.RUnlock()

	if !exists {
		return false
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	for i := range entry.member.Appointments {
		if entry.member.Appointments[i].ID == appointmentID {
			entry.member.Appointments = append(entry.member.Appointments[:i], entry.member.Appointments[i+1:]...)
			entry.version++
			return true
		}
	}

	return false
}
