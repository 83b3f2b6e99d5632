package tracker

import (
	"math"

	"jobpilot.local/internal/domain"
)

type Stats struct {
	Total        int                   `json:"total"`
	ByStatus     map[domain.Status]int `json:"by_status"`
	ResponseRate float64               `json:"response_rate"`
}

type Trends struct {
	MonthlyApplications map[string]int        `json:"monthly_applications"`
	StatusDistribution  map[domain.Status]int `json:"status_distribution"`
	Metrics             TrendMetrics          `json:"metrics"`
}

type TrendMetrics struct {
	TotalApplications int     `json:"total_applications"`
	InterviewRate     float64 `json:"interview_rate"`
	OfferRate         float64 `json:"offer_rate"`
}

// ComputeStats counts applications per known status. The response rate is
// the share of applications that moved past Applied into a known status.
// Unknown statuses count toward Total only.
func ComputeStats(apps []domain.Application) Stats {
	byStatus := make(map[domain.Status]int, len(domain.KnownStatuses))
	for _, s := range domain.KnownStatuses {
		byStatus[s] = 0
	}
	for _, a := range apps {
		if _, ok := byStatus[a.Status]; ok {
			byStatus[a.Status]++
		}
	}

	responses := byStatus[domain.StatusScreening] +
		byStatus[domain.StatusInterview] +
		byStatus[domain.StatusOffer] +
		byStatus[domain.StatusRejected]

	return Stats{
		Total:        len(apps),
		ByStatus:     byStatus,
		ResponseRate: percent(responses, len(apps)),
	}
}

// ComputeTrends buckets applications by the year-month of their applied
// date and by raw status value.
func ComputeTrends(apps []domain.Application) Trends {
	monthly := make(map[string]int)
	distribution := make(map[domain.Status]int)
	var interviews, offers int

	for _, a := range apps {
		monthly[a.AppliedDate.UTC().Format(domain.MonthLayout)]++
		distribution[a.Status]++
		switch a.Status {
		case domain.StatusInterview:
			interviews++
		case domain.StatusOffer:
			offers++
		}
	}

	return Trends{
		MonthlyApplications: monthly,
		StatusDistribution:  distribution,
		Metrics: TrendMetrics{
			TotalApplications: len(apps),
			InterviewRate:     percent(interviews, len(apps)),
			OfferRate:         percent(offers, len(apps)),
		},
	}
}

// percent returns 100*n/total rounded half to even at one decimal, or 0
// for an empty set.
func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.RoundToEven(float64(n)*1000/float64(total)) / 10
}
