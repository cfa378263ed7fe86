package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthmacare/clinic-api/internal/repository/memory"
	"github.com/asthmacare/clinic-api/internal/repository/sheets"
)

func TestOverview(t *testing.T) {
	store := memory.NewStore()
	store.Seed("patients", [][]string{
		{"hn", "prefix", "first_name", "last_name", "dob", "predicted_pefr", "height", "status", "public_token", "phone"},
		{"0000001", "ด.ช.", "เด็กชาย", "หนึ่ง", "2016-01-01", "250", "130", "Active", "t1", ""},
		{"0000002", "นาย", "ผู้ใหญ่", "สอง", "1990-01-01", "600", "172", "Active", "t2", ""},
		{"0000003", "นาง", "ผู้ใหญ่", "สาม", "1980-01-01", "450", "158", "COPD", "t3", ""},
		{"0000004", "นาย", "ผู้สูงอายุ", "สี่", "1950-01-01", "480", "165", "Discharge", "t4", ""},
	})

	svc := NewService(sheets.NewPatientRepository(store, "patients"))
	svc.now = func() time.Time {
		return time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	}

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalPatients)
	assert.Equal(t, map[string]int{"Active": 2, "COPD": 1, "Discharge": 1}, stats.StatusCounts)
	assert.Equal(t, 1, stats.AgeGroups.Children)
	assert.Equal(t, 2, stats.AgeGroups.Adults)
	assert.Equal(t, 1, stats.AgeGroups.Elderly)
}

func TestOverviewEmpty(t *testing.T) {
	store := memory.NewStore()
	store.Seed("patients", [][]string{
		{"hn", "prefix", "first_name", "last_name", "dob", "predicted_pefr", "height", "status", "public_token", "phone"},
	})

	svc := NewService(sheets.NewPatientRepository(store, "patients"))

	stats, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPatients)
	assert.Empty(t, stats.StatusCounts)
}
