package domain

import (
	"github.com/google/uuid"
	"github.com/suchimauz/booking-scheduling-engine/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type AppointmentSlot struct {
	ID        uuid.UUID           `json:"id"`
	StartDate json_types.DateTime `json:"start"`
	EndDate   json_types.DateTime `json:"end"`
	ServiceID string              `json:"serviceId"`
	Status    AppointmentStatus   `json:"status"`
}

type StaffMember struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Specialties      []string          `json:"specialties"`
	WorkingHours     WeekHours         `json:"workingHours"`
	UnavailableDates []json_types.Date `json:"unavailableDates"`
	Appointments     []AppointmentSlot `json:"appointments"`
}

// IsUnavailableOn проверяет, закрыта ли дата для сотрудника (отпуск, больничный и т.д.)
func (s StaffMember) IsUnavailableOn(date string) bool {
	for _, unavailable := range s.UnavailableDates {
		if unavailable.Date.Format("2006-01-02") == date {
			return true
		}
	}
	return false
}

// HasAnySpecialty проверяет пересечение специализаций сотрудника с требуемыми
func (s StaffMember) HasAnySpecialty(required []string) bool {
	for _, need := range required {
		for _, specialty := range s.Specialties {
			if specialty == need {
				return true
			}
		}
	}
	return false
}
