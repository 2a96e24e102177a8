package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/analytics"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/store"
	"github.com/Ajosh-NyxBar/siswaAnalyze/internal/student"
)

const fiveStudents = `[
	{"id": "1", "name": "Andi",  "class": "6A", "averageGrade": 85, "attendance": 90, "attitude": 85, "tasks": 8, "nis": "001"},
	{"id": "2", "name": "Budi",  "class": "6A", "averageGrade": 92, "attendance": 92, "attitude": 90, "tasks": 9},
	{"id": "3", "name": "Citra", "class": "6B", "averageGrade": 78, "attendance": 85, "attitude": 80, "tasks": 7},
	{"id": "4", "name": "Dewi",  "class": "6B", "averageGrade": 88, "attendance": 88, "attitude": 88, "tasks": 9},
	{"id": "5", "name": "Eka",   "class": "6B", "averageGrade": 76, "attendance": 80, "attitude": 78, "tasks": 7}
]`

func newTestServer(t *testing.T, students store.StudentRepo) http.Handler {
	t.Helper()
	svc, err := analytics.NewService()
	require.NoError(t, err)
	return New(svc, students, DefaultOptions()).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestPostPriority(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/analytics/saw", fiveStudents)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	data := out["data"].([]any)
	require.Len(t, data, 5)
	first := data[0].(map[string]any)
	assert.Equal(t, "2", first["id"])
	assert.Equal(t, 1.0, first["sawScore"])
	assert.Equal(t, "Berprestasi", first["category"])

	summary := out["summary"].(map[string]any)
	assert.Equal(t, 1.0, summary["berprestasi"])
	assert.Equal(t, 2.0, summary["cukup"])
	assert.Equal(t, 2.0, summary["perluPerhatian"])
	assert.NotEmpty(t, out["runId"])
}

func TestPostPriority_BadInput(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/analytics/saw", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/analytics/saw", `[{"id": "1", "name": "A", "attendance": 150}]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "invalid json input")
}

func TestPostCluster(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/analytics/kmeans?k=2&seed=7", fiveStudents)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	assert.Len(t, out["data"], 5)
	assert.Len(t, out["centroids"], 2)
	first := out["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "001", first["nis"])
	assert.Contains(t, first, "clusterLabel")
}

func TestPostCluster_InvalidConfig(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/analytics/kmeans?k=9", fiveStudents)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/analytics/kmeans?k=abc", fiveStudents)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/analytics/kmeans?seed=-3", fiveStudents)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostCluster_Empty(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/analytics/kmeans", `[]`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Empty(t, out["data"])
	assert.Equal(t, 0.0, out["iterations"])
}

func TestGetAnalytics_NoStore(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/analytics/saw", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetAnalytics_FromStore(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.DriverSQLite, "file:server_from_store?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	repo := s.StudentRepo()
	require.NoError(t, repo.Import(ctx, []student.Record{
		{ID: "1", Name: "Andi", Class: "6A", Attendance: student.Float(95), Grades: []float64{90, 92}},
		{ID: "2", Name: "Budi", Class: "6A", Attendance: student.Float(70), Grades: []float64{60, 65}},
		{ID: "3", Name: "Citra", Class: "6B", Attendance: student.Float(88), Grades: []float64{80}},
	}))
	h := newTestServer(t, repo)

	rec := do(t, h, http.MethodGet, "/api/analytics/saw?class=6a", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	data := decode(t, rec)["data"].([]any)
	require.Len(t, data, 2)
	assert.Equal(t, "1", data[0].(map[string]any)["id"])

	rec = do(t, h, http.MethodGet, "/api/analytics/kmeans?k=3&seed=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode(t, rec)["data"], 3)
}

func TestPostStats(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/api/analytics/stats", `{"grades": [88, 92, 79, 65]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode(t, rec)
	assert.Equal(t, 81.0, out["average"])
	assert.Equal(t, 75.0, out["passingRate"])
	assert.Equal(t, "B", out["letter"])

	rec = do(t, h, http.MethodPost, "/api/analytics/stats", `{"grades": [88, 92, 79, 65], "passingGrade": 80}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50.0, decode(t, rec)["passingRate"])

	rec = do(t, h, http.MethodPost, "/api/analytics/stats", `[`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/analytics/saw", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
