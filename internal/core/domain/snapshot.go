package domain

import (
	"errors"
	"strconv"
)

// ErrInvalidConfiguration — фатальная ошибка конструирования движка,
// например неизвестный идентификатор таймзоны в конфигурации арендатора
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrInvalidRequest — запрос с нечитаемой датой, временем или таймзоной
var ErrInvalidRequest = errors.New("invalid booking request")

// TenantSnapshot — неизменяемый снимок конфигурации арендатора,
// с которым работает движок на протяжении своей жизни
type TenantSnapshot struct {
	TenantID string                 `json:"tenantId"`
	Config   BusinessCalendarConfig `json:"config"`
	Services []ServiceDefinition    `json:"services"`
	Staff    []StaffMember          `json:"staff"`
}

// SlotGridKey — явный ключ мемоизации сетки слотов.
// Сетка зависит только от этих полей, скрытых глобальных кэшей нет.
type SlotGridKey struct {
	Date            string
	Open            WallClock
	Close           WallClock
	IntervalMinutes int
}

func (k SlotGridKey) String() string {
	return k.Date + "|" + k.Open.String() + "|" + k.Close.String() + "|" + strconv.Itoa(k.IntervalMinutes)
}
