package model

import "strconv"

type ControlLevel string

const (
	ControlLevelWell         ControlLevel = "Well-controlled"
	ControlLevelPartly       ControlLevel = "Partly Controlled"
	ControlLevelUncontrolled ControlLevel = "Uncontrolled"
)

// Technique check markers as stored in the visits tab.
const (
	TechniqueChecked    = "ทำ"
	TechniqueNotChecked = "ไม่ทำ"
)

// NotMeasured is the sentinel stored when a numeric field was not taken.
const NotMeasured = "-"

// Visit is one clinic encounter. Visits are append-only; no update or
// delete operations exist for them.
type Visit struct {
	HN             string `json:"hn"`
	Date           string `json:"date"`
	PEFR           string `json:"pefr"`
	ControlLevel   string `json:"control_level"`
	Controller     string `json:"controller"`
	Reliever       string `json:"reliever"`
	Adherence      string `json:"adherence"`
	DRP            string `json:"drp"`
	Advice         string `json:"advice"`
	TechniqueCheck string `json:"technique_check"`
	NextAppt       string `json:"next_appt,omitempty"`
	Note           string `json:"note,omitempty"`
	IsNewCase      bool   `json:"is_new_case"`
	InhalerEval    string `json:"inhaler_eval"`
}

// MeasuredPEFR parses the recorded PEFR value. The second return is false
// for the "-" sentinel or a value that does not parse.
func (v *Visit) MeasuredPEFR() (int, bool) {
	if v.PEFR == "" || v.PEFR == NotMeasured {
		return 0, false
	}
	n, err := strconv.Atoi(v.PEFR)
	if err != nil {
		return 0, false
	}
	return n, true
}

type RecordVisitRequest struct {
	PEFR           string          `json:"pefr" binding:"omitempty,numeric"`
	ControlLevel   string          `json:"control_level" binding:"required,oneof=Well-controlled 'Partly Controlled' Uncontrolled"`
	Controller     string          `json:"controller" binding:"required"`
	Reliever       string          `json:"reliever" binding:"required"`
	Adherence      string          `json:"adherence" binding:"omitempty,numeric"`
	DRP            string          `json:"drp"`
	Advice         string          `json:"advice"`
	TechniqueCheck string          `json:"technique_check" binding:"required,oneof=ทำ ไม่ทำ"`
	NextAppt       string          `json:"next_appt" binding:"omitempty,datetime=2006-01-02"`
	Note           string          `json:"note"`
	IsNewCase      bool            `json:"is_new_case"`
	Technique      *TechniqueInput `json:"technique"`
}
