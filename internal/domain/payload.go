package domain

// Payload is an untyped JSON object. Profiles, posts, listings and admin items
// are exchanged as payloads; the server is the source of truth for their shape.
type Payload map[string]any

// String returns the string value stored under key, or "".
func (p Payload) String(key string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy of p.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// EmergencyContact is a person notified when a traveler raises a panic event.
type EmergencyContact struct {
	ContactID    string `json:"contact_id,omitempty"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship,omitempty"`
}

// PanicEvent is raised by a traveler in distress.
type PanicEvent struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Message   string  `json:"message,omitempty"`
}

// DetailError is the error body returned by the backend.
type DetailError struct {
	Detail string `json:"detail"`
}
