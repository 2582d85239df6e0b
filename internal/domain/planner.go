package domain

// PlannerChatRequest is sent to the itinerary planner.
type PlannerChatRequest struct {
	Message     string        `json:"message"`
	History     []ChatMessage `json:"history,omitempty"`
	Preferences Payload       `json:"preferences,omitempty"`
}

// PlannerChatResponse carries the planner's reply and, once it has enough
// information, a draft itinerary.
type PlannerChatResponse struct {
	Reply     string  `json:"reply"`
	Itinerary Payload `json:"itinerary,omitempty"`
}
