package model

// TechniqueSteps is the number of steps on the MDI technique checklist.
const TechniqueSteps = 8

// TechniqueCheck is one scored run through the eight-step inhaler-use
// checklist. TotalScore is always recomputed from Steps, never taken from
// input, so the stored score cannot drift from the checklist.
type TechniqueCheck struct {
	HN         string               `json:"hn"`
	Date       string               `json:"date"`
	Steps      [TechniqueSteps]bool `json:"steps"`
	TotalScore int                  `json:"total_score"`
	Note       string               `json:"note,omitempty"`
}

// StepLabels are the eight fixed checklist steps, in scoring order.
var StepLabels = [TechniqueSteps]string{
	"shake device",
	"hold upright",
	"exhale fully",
	"head upright",
	"seal lips",
	"inhale and actuate together",
	"hold breath ~10s",
	"exhale slowly",
}

type TechniqueInput struct {
	Steps [TechniqueSteps]bool `json:"steps"`
	Note  string               `json:"note"`
}
