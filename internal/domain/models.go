package domain

import (
	"encoding/json"
	"time"
)

// Wire formats for dates exposed over the API.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
	MonthLayout     = "2006-01"
)

type Status string

const (
	StatusApplied   Status = "Applied"
	StatusScreening Status = "Screening"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"

	DefaultStatus = StatusApplied
)

// KnownStatuses is the fixed set of lifecycle stages, in pipeline order.
var KnownStatuses = []Status{
	StatusApplied,
	StatusScreening,
	StatusInterview,
	StatusOffer,
	StatusRejected,
}

func (s Status) Known() bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// Application is a single job application tracked by the user.
type Application struct {
	ID          int64
	Company     string
	Position    string
	Location    string
	Status      Status
	AppliedDate time.Time
	JobURL      string
	SalaryRange string
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// NotionPageID links the record to its mirrored Notion page, if any.
	NotionPageID string
}

type applicationJSON struct {
	ID          int64  `json:"id"`
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	Status      Status `json:"status"`
	AppliedDate string `json:"applied_date"`
	JobURL      string `json:"job_url"`
	SalaryRange string `json:"salary_range"`
	Notes       string `json:"notes"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (a Application) MarshalJSON() ([]byte, error) {
	return json.Marshal(applicationJSON{
		ID:          a.ID,
		Company:     a.Company,
		Position:    a.Position,
		Location:    a.Location,
		Status:      a.Status,
		AppliedDate: a.AppliedDate.UTC().Format(DateLayout),
		JobURL:      a.JobURL,
		SalaryRange: a.SalaryRange,
		Notes:       a.Notes,
		CreatedAt:   a.CreatedAt.UTC().Format(TimestampLayout),
		UpdatedAt:   a.UpdatedAt.UTC().Format(TimestampLayout),
	})
}

// NewApplication is the payload accepted when creating a record.
// AppliedDate is kept as the raw YYYY-MM-DD string; unparsable values fall
// back to the creation time.
type NewApplication struct {
	Company     string `json:"company"`
	Position    string `json:"position"`
	Location    string `json:"location"`
	Status      Status `json:"status"`
	AppliedDate string `json:"applied_date"`
	JobURL      string `json:"job_url"`
	SalaryRange string `json:"salary_range"`
	Notes       string `json:"notes"`
}

// ApplicationPatch carries a partial update. Only fields whose key was
// present in the request are applied. applied_date cannot be changed.
type ApplicationPatch struct {
	Company     Optional[string] `json:"company"`
	Position    Optional[string] `json:"position"`
	Location    Optional[string] `json:"location"`
	Status      Optional[Status] `json:"status"`
	JobURL      Optional[string] `json:"job_url"`
	SalaryRange Optional[string] `json:"salary_range"`
	Notes       Optional[string] `json:"notes"`
}

func (p ApplicationPatch) IsEmpty() bool {
	return !p.Company.Set && !p.Position.Set && !p.Location.Set && !p.Status.Set &&
		!p.JobURL.Set && !p.SalaryRange.Set && !p.Notes.Set
}

// Apply copies every present field onto app. It does not touch timestamps.
func (p ApplicationPatch) Apply(app *Application) {
	p.Company.ApplyTo(&app.Company)
	p.Position.ApplyTo(&app.Position)
	p.Location.ApplyTo(&app.Location)
	p.Status.ApplyTo(&app.Status)
	p.JobURL.ApplyTo(&app.JobURL)
	p.SalaryRange.ApplyTo(&app.SalaryRange)
	p.Notes.ApplyTo(&app.Notes)
}
