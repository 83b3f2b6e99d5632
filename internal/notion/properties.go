package notion

import (
	gnt "github.com/dstotijn/go-notion"

	"jobpilot.local/internal/domain"
)

// Property names of the Job Tracker database.
const (
	propPosition   = "Position"
	propCompany    = "Company"
	propJobPosting = "Job Posting"
	propLocation   = "location"
	propSalary     = "Salary"
	propStatus     = "Status"
	propNotes      = "Notes"
	propApplied    = "Applied"
)

// helper: build a valid Notion rich_text slice from a plain string.
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

// Empty fields are left out; Notion rejects empty select and url values.
// Used for page creation.
func buildApplicationPageProperties(app domain.Application) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Position is the title property.
	if app.Position != "" {
		props[propPosition] = gnt.DatabasePageProperty{
			Title: richText(app.Position),
		}
	}

	if app.Company != "" {
		props[propCompany] = gnt.DatabasePageProperty{
			RichText: richText(app.Company),
		}
	}

	if app.JobURL != "" {
		url := app.JobURL
		props[propJobPosting] = gnt.DatabasePageProperty{
			URL: &url,
		}
	}

	if app.Location != "" {
		props[propLocation] = gnt.DatabasePageProperty{
			RichText: richText(app.Location),
		}
	}

	if app.SalaryRange != "" {
		props[propSalary] = gnt.DatabasePageProperty{
			RichText: richText(app.SalaryRange),
		}
	}

	if app.Status != "" {
		props[propStatus] = gnt.DatabasePageProperty{
			Select: &gnt.SelectOptions{
				Name: string(app.Status),
			},
		}
	}

	if app.Notes != "" {
		props[propNotes] = gnt.DatabasePageProperty{
			RichText: richText(app.Notes),
		}
	}

	if !app.AppliedDate.IsZero() {
		props[propApplied] = gnt.DatabasePageProperty{
			Date: &gnt.Date{
				Start: gnt.NewDateTime(app.AppliedDate, false),
			},
		}
	}

	return props
}

// buildApplicationUpdateProperties is buildApplicationPageProperties plus an
// explicit cleared value for every optional field that is now empty, since
// UpdatePage leaves unsent properties untouched.
func buildApplicationUpdateProperties(app domain.Application) gnt.DatabasePageProperties {
	props := buildApplicationPageProperties(app)

	for _, name := range []string{propLocation, propSalary, propNotes} {
		if _, ok := props[name]; !ok {
			props[name] = gnt.DatabasePageProperty{
				Type:     gnt.DBPropTypeRichText,
				RichText: []gnt.RichText{},
			}
		}
	}
	if _, ok := props[propJobPosting]; !ok {
		props[propJobPosting] = gnt.DatabasePageProperty{Type: gnt.DBPropTypeURL}
	}
	if _, ok := props[propStatus]; !ok {
		props[propStatus] = gnt.DatabasePageProperty{Type: gnt.DBPropTypeSelect}
	}
	if _, ok := props[propApplied]; !ok {
		props[propApplied] = gnt.DatabasePageProperty{Type: gnt.DBPropTypeDate}
	}

	return props
}
