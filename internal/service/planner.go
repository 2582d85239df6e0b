package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hayawalid/smartexplorers/internal/domain"
)

const maxPlanDays = 14

var daysPattern = regexp.MustCompile(`(\d+)\s*-?\s*days?`)

var dayThemes = []string{
	"Arrival and old town walk",
	"Museums and history",
	"Markets and local food",
	"Day trip out of the city",
	"River cruise and sunset",
	"Free day",
}

// PlannerChat answers a planning message. Once the message or the history
// mentions a trip length, a draft itinerary is attached.
func (s *Service) PlannerChat(ctx context.Context, userID string, req domain.PlannerChatRequest) (*domain.PlannerChatResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, newError(ErrInvalidInput, "message is required")
	}

	days := tripDays(req)
	destination := req.Preferences.String("destination")
	if destination == "" {
		destination = "Cairo"
	}
	if days == 0 {
		return &domain.PlannerChatResponse{
			Reply: fmt.Sprintf("How many days will you spend in %s?", destination),
		}, nil
	}

	plan := make([]any, 0, days)
	for d := 1; d <= days; d++ {
		plan = append(plan, domain.Payload{
			"day":   d,
			"title": dayThemes[(d-1)%len(dayThemes)],
		})
	}
	itinerary := domain.Payload{
		"user_id":     userID,
		"destination": destination,
		"days":        days,
		"plan":        plan,
	}
	if interests, ok := req.Preferences["interests"]; ok {
		itinerary["interests"] = interests
	}

	return &domain.PlannerChatResponse{
		Reply:     fmt.Sprintf("Here is a %d-day plan for %s. Save it when you are happy with it.", days, destination),
		Itinerary: itinerary,
	}, nil
}

func tripDays(req domain.PlannerChatRequest) int {
	texts := []string{req.Message}
	for i := len(req.History) - 1; i >= 0; i-- {
		texts = append(texts, req.History[i].Content)
	}
	for _, t := range texts {
		m := daysPattern.FindStringSubmatch(strings.ToLower(t))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if n > maxPlanDays {
			n = maxPlanDays
		}
		return n
	}
	return 0
}

// SaveItinerary stores userID's itinerary, replacing any previous one.
func (s *Service) SaveItinerary(ctx context.Context, userID string, itinerary domain.Payload) (domain.Payload, error) {
	if len(itinerary) == 0 {
		return nil, newError(ErrInvalidInput, "itinerary is required")
	}
	doc := itinerary.Clone()
	doc["user_id"] = userID
	return s.create(ctx, planDocs, doc)
}

// MyItinerary returns the saved itinerary of userID.
func (s *Service) MyItinerary(ctx context.Context, userID string) (domain.Payload, error) {
	return s.get(ctx, planDocs, userID)
}
