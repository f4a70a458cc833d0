package domain

import "github.com/google/uuid"

type UnavailableReason string

const (
	ReasonInPast               UnavailableReason = "in_past"
	ReasonTooFarAhead          UnavailableReason = "too_far_ahead"
	ReasonInsufficientNotice   UnavailableReason = "insufficient_notice"
	ReasonHolidayClosed        UnavailableReason = "holiday_closed"
	ReasonOutsideBusinessHours UnavailableReason = "outside_business_hours"
	ReasonStaffUnavailable     UnavailableReason = "staff_unavailable"
	ReasonStaffDayOff          UnavailableReason = "staff_day_off"
	ReasonStaffOutsideHours    UnavailableReason = "staff_outside_hours"
	ReasonStaffBlackout        UnavailableReason = "staff_blackout"
	ReasonDoubleBooking        UnavailableReason = "double_booking"
)

// BookingRequest — запрос на проверку доступности слота.
// Дата и время заданы в локальном времени таймзоны арендатора:
// дата в формате "YYYY-MM-DD", время в формате "HH:MM".
type BookingRequest struct {
	ServiceID       string `json:"serviceId"`
	ServiceDuration int    `json:"serviceDuration"` // в минутах
	RequestedDate   string `json:"requestedDate"`
	RequestedTime   string `json:"requestedTime"`
	StaffID         string `json:"staffId,omitempty"`
	CustomerID      string `json:"customerId"`
	TenantID        string `json:"tenantId"`
	Timezone        string `json:"timezone,omitempty"`
	BufferTime      int    `json:"bufferTime,omitempty"` // в минутах, 0 — буфер арендатора
}

type TimeSlot struct {
	Start     string `json:"start"` // "YYYY-MM-DDTHH:MM"
	End       string `json:"end"`
	StaffID   string `json:"employeeId,omitempty"`
	StaffName string `json:"employeeName,omitempty"`
}

type AvailabilityResult struct {
	IsAvailable    bool              `json:"isAvailable"`
	Reason         UnavailableReason `json:"reason,omitempty"`
	Conflicts      []AppointmentSlot `json:"conflicts,omitempty"`
	SuggestedSlots []TimeSlot        `json:"suggestedSlots,omitempty"`
}

// BookingResult — результат фиксации записи после положительной проверки
type BookingResult struct {
	Success       bool               `json:"success"`
	AppointmentID uuid.UUID          `json:"appointmentId,omitempty"`
	StaffID       string             `json:"staffId,omitempty"`
	StaffName     string             `json:"staffName,omitempty"`
	Availability  AvailabilityResult `json:"availability"`
}
