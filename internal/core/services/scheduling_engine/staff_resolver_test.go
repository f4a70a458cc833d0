package scheduling_engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suchimauz/booking-scheduling-engine/internal/adapters/out/calendar"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

func TestFindService(t *testing.T) {
	engine, _ := newTestEngine(t)

	service := engine.findService("service_2")
	require.NotNil(t, service)
	assert.Equal(t, "Massage", service.Name)

	assert.Nil(t, engine.findService("non-existent-service"))
}

func TestResolveStaff_ExplicitID(t *testing.T) {
	engine, _ := newTestEngine(t)
	request := baseRequest()

	// Явный идентификатор — чистый поиск, занятость слота здесь не проверяется
	staff := engine.resolveStaff(context.Background(), request, at(t, "10:30"), 60, 15)
	require.NotNil(t, staff)
	assert.Equal(t, "Sarah", staff.Name)

	request.StaffID = "staff_999"
	assert.Nil(t, engine.resolveStaff(context.Background(), request, at(t, "14:00"), 60, 15))
}

func TestResolveStaff_SpecialistFilter(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Массаж умеет только Thabo, хоть Sarah и первая в списке
	request := baseRequest()
	request.StaffID = ""
	request.ServiceID = "service_2"

	staff := engine.resolveStaff(context.Background(), request, at(t, "14:00"), 30, 15)
	require.NotNil(t, staff)
	assert.Equal(t, "Thabo", staff.Name)
}

func TestResolveStaff_FirstFitOrder(t *testing.T) {
	engine, _ := newTestEngine(t)

	// Без требования специалиста подходит любой — берется первый по порядку
	request := baseRequest()
	request.StaffID = ""
	request.ServiceID = "service_3"

	staff := engine.resolveStaff(context.Background(), request, at(t, "14:00"), 30, 15)
	require.NotNil(t, staff)
	assert.Equal(t, "Sarah", staff.Name)

	// На слоте, где Sarah занята, first-fit переходит к следующему
	staff = engine.resolveStaff(context.Background(), request, at(t, "10:30"), 30, 15)
	require.NotNil(t, staff)
	assert.Equal(t, "Thabo", staff.Name)
}

func TestResolveStaff_NoEligibleStaff(t *testing.T) {
	engine, _ := newTestEngine(t)

	request := baseRequest()
	request.StaffID = ""
	request.ServiceID = "non-existent-service"

	assert.Nil(t, engine.resolveStaff(context.Background(), request, at(t, "14:00"), 60, 15))
}

func TestResolveStaff_AllEligibleBusy(t *testing.T) {
	staff := testStaff(t)
	// Thabo занят в то же время, что и Sarah
	staff[1].Appointments = []domain.AppointmentSlot{
		appointmentAt(t, "2026-01-15", "10:00", "11:00"),
	}

	store := calendar.NewCalendarStore(staff, nopLogger{})
	engine, err := NewSchedulingEngine(testConfig(), testServices(), store, nil, nopLogger{})
	require.NoError(t, err)

	request := baseRequest()
	request.StaffID = ""
	request.ServiceID = "service_3"

	assert.Nil(t, engine.resolveStaff(context.Background(), request, at(t, "10:30"), 30, 15))
}
