package patient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asthmacare/clinic-api/internal/repository/memory"
	"github.com/asthmacare/clinic-api/internal/repository/sheets"
	patientService "github.com/asthmacare/clinic-api/internal/service/patient"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	store.Seed("patients", [][]string{
		{"hn", "prefix", "first_name", "last_name", "dob", "predicted_pefr", "height", "status", "public_token", "phone"},
	})
	store.Seed("visits", [][]string{
		{"hn", "date", "pefr", "control_level", "controller", "reliever", "adherence", "drp", "advice", "technique_check", "next_appt", "note", "is_new_case", "inhaler_eval"},
	})

	svc := patientService.NewService(
		sheets.NewPatientRepository(store, "patients"),
		sheets.NewVisitRepository(store, "visits"),
		nil,
	)

	engine := gin.New()
	NewHandler(svc).RegisterRoutes(engine.Group("/api/v1"))
	return engine, store
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func validRegisterBody() map[string]interface{} {
	return map[string]interface{}{
		"hn":         "123",
		"prefix":     "นาย",
		"first_name": "สมชาย",
		"last_name":  "ใจดี",
		"dob":        "1996-08-01",
		"height":     "170",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			HN          string `json:"hn"`
			PublicToken string `json:"public_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, "0000123", resp.Data.HN)
	assert.NotEmpty(t, resp.Data.PublicToken)

	assert.Len(t, store.Rows("patients"), 2)
}

func TestRegisterEndpointDuplicate(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterEndpointRejectsBadPrefix(t *testing.T) {
	engine, _ := newTestRouter(t)

	body := validRegisterBody()
	body["prefix"] = "Mr."
	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterEndpointRejectsBadHN(t *testing.T) {
	engine, _ := newTestRouter(t)

	for _, hn := range []string{"12ab567", "12345678", ""} {
		body := validRegisterBody()
		body["hn"] = hn
		w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "hn %q", hn)
	}
}

func TestGetEndpointLenientHN(t *testing.T) {
	engine, _ := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/patients/123", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/patients/0000123", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodGet, "/api/v1/patients/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodPut, "/api/v1/patients/123/status", map[string]string{"status": "Discharge"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rows := store.Rows("patients")
	assert.Equal(t, "Discharge", rows[1][7])

	w = doJSON(t, engine, http.MethodPut, "/api/v1/patients/123/status", map[string]string{"status": "Retired"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "unknown status is rejected")
}

func TestDeleteEndpoint(t *testing.T) {
	engine, store := newTestRouter(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/patients", validRegisterBody())
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, engine, http.MethodDelete, "/api/v1/patients/0000123", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.Rows("patients"), 1, "only the header remains")
}
