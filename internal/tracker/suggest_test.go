package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobpilot.local/internal/domain"
)

func TestBuildSuggestions_Empty(t *testing.T) {
	got := BuildSuggestions(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildSuggestions(t *testing.T) {
	now := time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)
	apps := []domain.Application{
		{ID: 1, Company: "Acme", Position: "SRE", Status: domain.StatusApplied, AppliedDate: now.AddDate(0, 0, -10)},
		{ID: 2, Company: "Globex", Position: "Dev", Status: domain.StatusApplied, AppliedDate: now.Add(-6*24*time.Hour - 23*time.Hour)},
		{ID: 3, Company: "Initech", Position: "QA", Status: domain.StatusInterview, AppliedDate: now.AddDate(0, -2, 0)},
		{ID: 4, Company: "Umbrella", Position: "PM", Status: domain.StatusOffer, AppliedDate: now.AddDate(0, 0, -30)},
		{ID: 5, Company: "Hooli", Position: "SWE", Status: domain.StatusApplied, AppliedDate: now.AddDate(0, 0, -7)},
		{ID: 6, Company: "Stark", Position: "Ops", Status: "applied", AppliedDate: now.AddDate(0, 0, -30)},
	}

	got := BuildSuggestions(apps, now)
	require.Len(t, got, 4)

	assert.Equal(t, Suggestion{
		Type:     SuggestionFollowUp,
		Priority: PriorityHigh,
		Message:  "Follow up on your SRE application at Acme - 10 days since applied",
		JobID:    ptr(int64(1)),
	}, got[0])

	assert.Equal(t, Suggestion{
		Type:     SuggestionInterviewPrep,
		Priority: PriorityHigh,
		Message:  "Prepare for your QA interview at Initech",
		JobID:    ptr(int64(3)),
	}, got[1])

	assert.Equal(t, SuggestionFollowUp, got[2].Type)
	assert.Equal(t, "Follow up on your SWE application at Hooli - 7 days since applied", got[2].Message)

	assert.Equal(t, Suggestion{
		Type:     SuggestionMotivation,
		Priority: PriorityMedium,
		Message:  "Great progress! You've applied to 6 positions. Keep going!",
	}, got[3])
}

func TestDaysSince(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysSince(now, now))
	assert.Equal(t, 6, daysSince(now.Add(-(7*24*time.Hour - time.Second)), now))
	assert.Equal(t, 7, daysSince(now.Add(-7*24*time.Hour), now))
	assert.Equal(t, -1, daysSince(now.Add(time.Hour), now))
}

func ptr[T any](v T) *T { return &v }
