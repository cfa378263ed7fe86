// Package clinical implements the asthma scoring rules: age and predicted
// peak-expiratory-flow computation, action-plan zone classification, and
// the inhaler-technique checklist score. Everything here is pure and
// synchronous; persistence lives in the repository layer.
package clinical

import (
	"math"
	"time"

	"github.com/asthmacare/clinic-api/internal/model"
)

// Zone is the traffic-light action-plan band for a measured PEFR relative
// to the patient's predicted value.
type Zone string

const (
	ZoneGreen   Zone = "green"
	ZoneYellow  Zone = "yellow"
	ZoneRed     Zone = "red"
	ZoneUnknown Zone = "unknown"
)

// Zone thresholds as fraction of predicted PEFR. These are the standard
// asthma action-plan cut points and must not be redefined elsewhere.
const (
	greenThreshold  = 0.80
	yellowThreshold = 0.60
)

const dateLayout = "2006-01-02"

// Age computes full calendar years between dob (ISO date string) and asOf.
// An empty or unparseable dob yields 0; missing birth data is treated as
// insufficient information, not an error.
func Age(dob string, asOf time.Time) int {
	birth, err := time.Parse(dateLayout, dob)
	if err != nil {
		return 0
	}

	years := asOf.Year() - birth.Year()
	if asOf.Month() < birth.Month() ||
		(asOf.Month() == birth.Month() && asOf.Day() < birth.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// PredictedPEFR computes the reference PEFR in L/min from the regression
// formula for the sex implied by the name prefix. The result is rounded to
// the nearest integer and clamped at 0. A non-positive height yields 0
// (insufficient data).
func PredictedPEFR(prefix string, heightCm float64, ageYears int) int {
	if heightCm <= 0 {
		return 0
	}

	var predicted float64
	if prefix == model.PrefixMr || prefix == model.PrefixBoy {
		predicted = 5.48*heightCm - 1.51*float64(ageYears) - 279.7
	} else {
		predicted = 3.72*heightCm - 2.24*float64(ageYears) - 96.6
	}

	rounded := int(math.Round(predicted))
	if rounded < 0 {
		return 0
	}
	return rounded
}

// ClassifyZone bands a measured PEFR against the predicted value:
// green at or above 80% of predicted, yellow from 60% up to 80%, red
// below 60%. A non-positive predicted value cannot be banded and returns
// ZoneUnknown.
func ClassifyZone(measured, predicted int) Zone {
	if predicted <= 0 {
		return ZoneUnknown
	}

	ratio := float64(measured) / float64(predicted)
	switch {
	case ratio >= greenThreshold:
		return ZoneGreen
	case ratio >= yellowThreshold:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

// ScoreTechnique counts the correctly performed checklist steps. The
// stored total score is always this count; an externally supplied score is
// never trusted.
func ScoreTechnique(steps [model.TechniqueSteps]bool) int {
	score := 0
	for _, done := range steps {
		if done {
			score++
		}
	}
	return score
}
