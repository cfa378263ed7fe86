package visit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthmacare/clinic-api/internal/clinical"
	"github.com/asthmacare/clinic-api/internal/model"
	"github.com/asthmacare/clinic-api/internal/repository/memory"
	"github.com/asthmacare/clinic-api/internal/repository/sheets"
	apperrors "github.com/asthmacare/clinic-api/pkg/errors"
)

const (
	patientsTab   = "patients"
	visitsTab     = "visits"
	techniqueTab  = "technique_checks"
	intentsTab    = "write_intents"
	testHN = "0000123"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.Seed(patientsTab, [][]string{
		{"hn", "prefix", "first_name", "last_name", "dob", "predicted_pefr", "height", "status", "public_token", "phone"},
		{testHN, "นาย", "สมชาย", "ใจดี", "1996-03-01", "607", "170", "Active", "tok-1", "0812345678"},
	})
	store.Seed(visitsTab, [][]string{
		{"hn", "date", "pefr", "control_level", "controller", "reliever", "adherence", "drp", "advice", "technique_check", "next_appt", "note", "is_new_case", "inhaler_eval"},
	})
	store.Seed(techniqueTab, [][]string{
		{"hn", "date", "step_1", "step_2", "step_3", "step_4", "step_5", "step_6", "step_7", "step_8", "total_score", "note"},
	})
	store.Seed(intentsTab, [][]string{
		{"id", "hn", "date", "status"},
	})

	svc := NewService(
		sheets.NewVisitRepository(store, visitsTab),
		sheets.NewTechniqueRepository(store, techniqueTab),
		sheets.NewPatientRepository(store, patientsTab),
		sheets.NewIntentRepository(store, intentsTab),
		nil,
	)
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func baseRequest() *model.RecordVisitRequest {
	return &model.RecordVisitRequest{
		PEFR:           "480",
		ControlLevel:   "Well-controlled",
		Controller:     "Budesonide/Formoterol",
		Reliever:       "Salbutamol",
		Adherence:      "90",
		TechniqueCheck: model.TechniqueNotChecked,
	}
}

func TestRecordWithoutTechnique(t *testing.T) {
	svc, store := newTestService(t)

	visit, err := svc.Record(context.Background(), "123", baseRequest())
	require.NoError(t, err)

	assert.Equal(t, testHN, visit.HN)
	assert.Equal(t, "2026-08-29", visit.Date)
	assert.Equal(t, "90%", visit.Adherence)
	assert.Equal(t, "-", visit.DRP)
	assert.Equal(t, "-", visit.Advice)
	assert.Equal(t, "-", visit.Note)
	assert.Equal(t, model.NotMeasured, visit.InhalerEval)

	assert.Len(t, store.Rows(visitsTab), 2)
	assert.Len(t, store.Rows(techniqueTab), 1, "no technique row for ไม่ทำ")
	assert.Len(t, store.Rows(intentsTab), 1, "no intent for a single-write visit")
}

func TestRecordUnmeasuredPEFR(t *testing.T) {
	svc, _ := newTestService(t)

	req := baseRequest()
	req.PEFR = ""
	req.Adherence = ""

	visit, err := svc.Record(context.Background(), "123", req)
	require.NoError(t, err)
	assert.Equal(t, model.NotMeasured, visit.PEFR)
	assert.Equal(t, model.NotMeasured, visit.Adherence)
}

func TestRecordWithTechnique(t *testing.T) {
	svc, store := newTestService(t)

	req := baseRequest()
	req.TechniqueCheck = model.TechniqueChecked
	req.Technique = &model.TechniqueInput{
		Steps: [8]bool{true, true, true, false, true, true, false, true},
		Note:  "ลืมกลั้นหายใจ",
	}

	visit, err := svc.Record(context.Background(), "123", req)
	require.NoError(t, err)
	assert.Equal(t, "6", visit.InhalerEval)

	assert.Len(t, store.Rows(visitsTab), 2)
	assert.Len(t, store.Rows(techniqueTab), 2)

	intents := store.Rows(intentsTab)
	require.Len(t, intents, 2)
	assert.Equal(t, string(model.IntentCommitted), intents[1][3])
}

func TestRecordTechniqueRequiresChecklist(t *testing.T) {
	svc, store := newTestService(t)

	req := baseRequest()
	req.TechniqueCheck = model.TechniqueChecked
	req.Technique = nil

	_, err := svc.Record(context.Background(), "123", req)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Len(t, store.Rows(visitsTab), 1, "nothing written on validation failure")
	assert.Len(t, store.Rows(intentsTab), 1)
}

func TestRecordUnknownPatient(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Record(context.Background(), "9999999", baseRequest())
	require.Error(t, err)
}

func TestRecordPartialFailureLeavesPendingIntent(t *testing.T) {
	svc, store := newTestService(t)

	req := baseRequest()
	req.TechniqueCheck = model.TechniqueChecked
	req.Technique = &model.TechniqueInput{Steps: [8]bool{true, true, true, true, true, true, true, true}}

	// Intent and technique appends succeed, the visit append fails.
	store.FailAppendTab = visitsTab

	_, err := svc.Record(context.Background(), "123", req)
	require.Error(t, err)

	assert.Len(t, store.Rows(techniqueTab), 2, "technique row landed before the failure")
	assert.Len(t, store.Rows(visitsTab), 1)

	pending, err := svc.PendingIntents(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, testHN, pending[0].HN)
	assert.Equal(t, model.IntentPending, pending[0].Status)
}

func TestHistoryNewestFirst(t *testing.T) {
	svc, store := newTestService(t)

	for _, date := range []string{"2026-01-10", "2026-05-02", "2026-03-15"} {
		row := []string{testHN, date, "450", "Well-controlled", "ICS", "SABA", "90%", "-", "-", "ไม่ทำ", "", "-", "FALSE", "-"}
		require.NoError(t, store.AppendRow(context.Background(), visitsTab, row))
	}

	visits, err := svc.History(context.Background(), "123")
	require.NoError(t, err)
	require.Len(t, visits, 3)
	assert.Equal(t, "2026-05-02", visits[0].Date)
	assert.Equal(t, "2026-03-15", visits[1].Date)
	assert.Equal(t, "2026-01-10", visits[2].Date)
}

func TestReviewStatusOverdue(t *testing.T) {
	svc, store := newTestService(t)

	row := []string{testHN, "2025-02-01", "450", "Well-controlled", "ICS", "SABA", "90%", "-", "-", "ทำ", "", "-", "FALSE", "8"}
	require.NoError(t, store.AppendRow(context.Background(), visitsTab, row))

	status, err := svc.ReviewStatus(context.Background(), "123")
	require.NoError(t, err)
	assert.Equal(t, clinical.ReviewOverdue, status.State)
	assert.Equal(t, "2025-02-01", status.LastReview)
	assert.Equal(t, "2026-02-01", status.NextDue)
}
