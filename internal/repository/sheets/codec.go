package sheets

import (
	"strconv"
	"strings"

	"github.com/asthmacare/clinic-api/internal/model"
)

// Canonical column orders. Appends always write these orders, so the wire
// layout every existing reader depends on never changes. Decoding goes
// through the tab's header row instead of fixed offsets, which tolerates
// reordered or extended sheets.
var (
	patientColumns = []string{
		"hn", "prefix", "first_name", "last_name", "dob",
		"predicted_pefr", "height", "status", "public_token", "phone",
	}
	visitColumns = []string{
		"hn", "date", "pefr", "control_level", "controller", "reliever",
		"adherence", "drp", "advice", "technique_check", "next_appt",
		"note", "is_new_case", "inhaler_eval",
	}
	techniqueColumns = []string{
		"hn", "date",
		"step_1", "step_2", "step_3", "step_4",
		"step_5", "step_6", "step_7", "step_8",
		"total_score", "note",
	}
	intentColumns = []string{"id", "hn", "date", "status"}
)

// statusColumnOffset is the patients-tab offset used by UpdateCell for
// status changes. Part of the positional contract above.
const statusColumnOffset = 7

// rowReader resolves fields by header name. A sheet whose header row does
// not name the key column falls back to the canonical column order, which
// keeps legacy tabs without headers readable at their historical offsets.
type rowReader struct {
	index map[string]int
	row   []string
}

func newRowReader(header, canonical, row []string) rowReader {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := index[canonical[0]]; !ok {
		index = make(map[string]int, len(canonical))
		for i, name := range canonical {
			index[name] = i
		}
	}
	return rowReader{index: index, row: row}
}

func (r rowReader) get(field string) string {
	i, ok := r.index[field]
	if !ok || i >= len(r.row) {
		return ""
	}
	return r.row[i]
}

func decodePatient(header, row []string) model.Patient {
	rd := newRowReader(header, patientColumns, row)
	return model.Patient{
		HN:            rd.get("hn"),
		Prefix:        rd.get("prefix"),
		FirstName:     rd.get("first_name"),
		LastName:      rd.get("last_name"),
		DOB:           rd.get("dob"),
		PredictedPEFR: rd.get("predicted_pefr"),
		Height:        rd.get("height"),
		Status:        rd.get("status"),
		PublicToken:   rd.get("public_token"),
		Phone:         rd.get("phone"),
	}
}

func encodePatient(p *model.Patient) []string {
	return []string{
		p.HN, p.Prefix, p.FirstName, p.LastName, p.DOB,
		p.PredictedPEFR, p.Height, p.Status, p.PublicToken, p.Phone,
	}
}

func decodeVisit(header, row []string) model.Visit {
	rd := newRowReader(header, visitColumns, row)
	return model.Visit{
		HN:             rd.get("hn"),
		Date:           rd.get("date"),
		PEFR:           rd.get("pefr"),
		ControlLevel:   rd.get("control_level"),
		Controller:     rd.get("controller"),
		Reliever:       rd.get("reliever"),
		Adherence:      rd.get("adherence"),
		DRP:            rd.get("drp"),
		Advice:         rd.get("advice"),
		TechniqueCheck: rd.get("technique_check"),
		NextAppt:       rd.get("next_appt"),
		Note:           rd.get("note"),
		IsNewCase:      parseSheetBool(rd.get("is_new_case")),
		InhalerEval:    rd.get("inhaler_eval"),
	}
}

func encodeVisit(v *model.Visit) []string {
	return []string{
		v.HN, v.Date, v.PEFR, v.ControlLevel, v.Controller, v.Reliever,
		v.Adherence, v.DRP, v.Advice, v.TechniqueCheck, v.NextAppt,
		v.Note, formatSheetBool(v.IsNewCase), v.InhalerEval,
	}
}

func decodeTechnique(header, row []string) model.TechniqueCheck {
	rd := newRowReader(header, techniqueColumns, row)
	check := model.TechniqueCheck{
		HN:   rd.get("hn"),
		Date: rd.get("date"),
		Note: rd.get("note"),
	}
	for i := 0; i < model.TechniqueSteps; i++ {
		check.Steps[i] = parseSheetBool(rd.get("step_" + strconv.Itoa(i+1)))
	}
	if score, err := strconv.Atoi(rd.get("total_score")); err == nil {
		check.TotalScore = score
	}
	return check
}

func encodeTechnique(t *model.TechniqueCheck) []string {
	row := []string{t.HN, t.Date}
	for _, step := range t.Steps {
		row = append(row, formatSheetBool(step))
	}
	return append(row, strconv.Itoa(t.TotalScore), t.Note)
}

func decodeIntent(header, row []string) model.WriteIntent {
	rd := newRowReader(header, intentColumns, row)
	return model.WriteIntent{
		ID:     rd.get("id"),
		HN:     rd.get("hn"),
		Date:   rd.get("date"),
		Status: model.IntentStatus(rd.get("status")),
	}
}

func encodeIntent(i *model.WriteIntent) []string {
	return []string{i.ID, i.HN, i.Date, string(i.Status)}
}

// Sheets renders booleans as TRUE/FALSE.
func parseSheetBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}

func formatSheetBool(b bool) string {
	if b {
		return "TRUE"
	}
	return "FALSE"
}
