package domain

type ServiceDefinition struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	DurationMinutes     int      `json:"duration"`
	BufferTimeMinutes   int      `json:"bufferTime,omitempty"`
	RequiresSpecialist  bool     `json:"requiresSpecialist,omitempty"`
	SpecialtiesRequired []string `json:"specialtiesRequired,omitempty"`
}
