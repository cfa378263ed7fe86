package clinical

import (
	"time"

	"github.com/asthmacare/clinic-api/internal/model"
)

type ReviewState string

const (
	ReviewNever   ReviewState = "never"
	ReviewOverdue ReviewState = "overdue"
	ReviewOK      ReviewState = "ok"
)

// ReviewStatus reports where a patient stands against the annual
// inhaler-technique re-education policy.
type ReviewStatus struct {
	State      ReviewState `json:"state"`
	LastReview string      `json:"last_review,omitempty"`
	NextDue    string      `json:"next_due,omitempty"`
	// DaysLate when overdue, DaysRemaining when ok; zero otherwise.
	DaysLate      int `json:"days_late,omitempty"`
	DaysRemaining int `json:"days_remaining,omitempty"`
}

// InhalerReviewStatus finds the most recent visit whose technique was
// checked and measures it against the one-year review interval. No such
// visit means the technique was never reviewed.
func InhalerReviewStatus(visits []model.Visit, today time.Time) ReviewStatus {
	var last time.Time
	var found bool

	for _, v := range visits {
		if v.TechniqueCheck != model.TechniqueChecked {
			continue
		}
		d, err := time.Parse(dateLayout, v.Date)
		if err != nil {
			continue
		}
		if !found || d.After(last) {
			last = d
			found = true
		}
	}

	if !found {
		return ReviewStatus{State: ReviewNever}
	}

	nextDue := last.AddDate(1, 0, 0)
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(nextDue.Sub(todayDate).Hours() / 24)

	status := ReviewStatus{
		LastReview: last.Format(dateLayout),
		NextDue:    nextDue.Format(dateLayout),
	}
	if days < 0 {
		status.State = ReviewOverdue
		status.DaysLate = -days
	} else {
		status.State = ReviewOK
		status.DaysRemaining = days
	}
	return status
}
