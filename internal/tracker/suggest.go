package tracker

import (
	"fmt"
	"math"
	"time"

	"jobpilot.local/internal/domain"
)

const followUpAfterDays = 7

type SuggestionType string

const (
	SuggestionFollowUp      SuggestionType = "follow_up"
	SuggestionInterviewPrep SuggestionType = "interview_prep"
	SuggestionMotivation    SuggestionType = "motivation"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
)

type Suggestion struct {
	Type     SuggestionType `json:"type"`
	Priority Priority       `json:"priority"`
	Message  string         `json:"message"`
	// JobID is nil for suggestions that are not about a single application.
	JobID *int64 `json:"job_id"`
}

// BuildSuggestions walks apps in order and emits a follow-up for every
// application still in Applied for a week or more, an interview-prep
// reminder for every Interview, and one closing motivation message.
func BuildSuggestions(apps []domain.Application, now time.Time) []Suggestion {
	suggestions := make([]Suggestion, 0, len(apps)+1)

	for _, a := range apps {
		id := a.ID
		switch a.Status {
		case domain.StatusApplied:
			days := daysSince(a.AppliedDate, now)
			if days >= followUpAfterDays {
				suggestions = append(suggestions, Suggestion{
					Type:     SuggestionFollowUp,
					Priority: PriorityHigh,
					Message: fmt.Sprintf("Follow up on your %s application at %s - %d days since applied",
						a.Position, a.Company, days),
					JobID: &id,
				})
			}
		case domain.StatusInterview:
			suggestions = append(suggestions, Suggestion{
				Type:     SuggestionInterviewPrep,
				Priority: PriorityHigh,
				Message:  fmt.Sprintf("Prepare for your %s interview at %s", a.Position, a.Company),
				JobID:    &id,
			})
		}
	}

	if len(apps) > 0 {
		suggestions = append(suggestions, Suggestion{
			Type:     SuggestionMotivation,
			Priority: PriorityMedium,
			Message:  fmt.Sprintf("Great progress! You've applied to %d positions. Keep going!", len(apps)),
		})
	}
	return suggestions
}

// daysSince counts whole elapsed days, flooring like a calendar delta.
func daysSince(from, now time.Time) int {
	return int(math.Floor(now.Sub(from).Hours() / 24))
}
