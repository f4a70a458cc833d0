package in

import (
	"context"

	"github.com/suchimauz/booking-scheduling-engine/internal/core/domain"
)

type SchedulingUseCase interface {
	// Проверка доступности запрошенного слота
	CheckAvailability(ctx context.Context, request domain.BookingRequest) (*domain.AvailabilityResult, error)

	// Подбор альтернативных слотов, когда запрошенный недоступен
	SuggestSlots(ctx context.Context, request domain.BookingRequest, maxSuggestions int) ([]domain.TimeSlot, error)

	// Проверка и фиксация записи с перепроверкой под блокировкой
	BookAppointment(ctx context.Context, request domain.BookingRequest) (*domain.BookingResult, error)
}
