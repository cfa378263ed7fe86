package clinical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/asthmacare/clinic-api/internal/model"
)

func visitOn(date, check string) model.Visit {
	return model.Visit{HN: "0000123", Date: date, TechniqueCheck: check}
}

func TestInhalerReviewStatusNever(t *testing.T) {
	today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	status := InhalerReviewStatus(nil, today)
	assert.Equal(t, ReviewNever, status.State)

	// Visits without a technique check do not count as reviews.
	visits := []model.Visit{
		visitOn("2026-01-10", model.TechniqueNotChecked),
		visitOn("2026-03-02", ""),
	}
	status = InhalerReviewStatus(visits, today)
	assert.Equal(t, ReviewNever, status.State)
}

func TestInhalerReviewStatusOK(t *testing.T) {
	today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	visits := []model.Visit{
		visitOn("2025-01-15", model.TechniqueChecked),
		visitOn("2026-02-01", model.TechniqueChecked),
		visitOn("2026-05-01", model.TechniqueNotChecked),
	}

	status := InhalerReviewStatus(visits, today)
	assert.Equal(t, ReviewOK, status.State)
	assert.Equal(t, "2026-02-01", status.LastReview)
	assert.Equal(t, "2027-02-01", status.NextDue)
	// 2026-08-29 .. 2027-02-01 = 156 days
	assert.Equal(t, 156, status.DaysRemaining)
	assert.Zero(t, status.DaysLate)
}

func TestInhalerReviewStatusOverdue(t *testing.T) {
	today := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	visits := []model.Visit{
		visitOn("2025-03-10", model.TechniqueChecked),
	}

	status := InhalerReviewStatus(visits, today)
	assert.Equal(t, ReviewOverdue, status.State)
	assert.Equal(t, "2026-03-10", status.NextDue)
	// 2026-03-10 .. 2026-08-29 = 172 days
	assert.Equal(t, 172, status.DaysLate)
	assert.Zero(t, status.DaysRemaining)
}

func TestInhalerReviewStatusDueToday(t *testing.T) {
	today := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)

	visits := []model.Visit{visitOn("2025-03-10", model.TechniqueChecked)}

	status := InhalerReviewStatus(visits, today)
	assert.Equal(t, ReviewOK, status.State)
	assert.Equal(t, 0, status.DaysRemaining)
}

func TestInhalerReviewMonotonicity(t *testing.T) {
	// An earlier last review is never less overdue than a later one.
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	prevLate := -1
	for _, date := range []string{"2024-01-01", "2024-06-01", "2025-01-01", "2025-06-01"} {
		status := InhalerReviewStatus([]model.Visit{visitOn(date, model.TechniqueChecked)}, today)
		assert.Equal(t, ReviewOverdue, status.State)
		if prevLate >= 0 {
			assert.Less(t, status.DaysLate, prevLate)
		}
		prevLate = status.DaysLate
	}
}
