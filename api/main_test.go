package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tureright/performance-test-k6/dashboard"
	"github.com/Tureright/performance-test-k6/model"
)

func summaryFile(p95, failRate float64) *fstest.MapFile {
	data := fmt.Sprintf(`{
		"state": {"testRunDurationMs": 30000},
		"metrics": {
			"http_reqs": {"values": {"count": 100}},
			"http_req_duration": {"values": {"avg": 100, "p(95)": %v}},
			"http_req_failed": {"values": {"rate": %v}},
			"vus": {"values": {"max": 10}}
		}
	}`, p95, failRate)
	return &fstest.MapFile{Data: []byte(data)}
}

func newTestRouter() *httprouter.Router {
	fsys := fstest.MapFS{
		"smoke/homepage-summary.json": summaryFile(300, 0),
		"smoke/homepage-report.html":  &fstest.MapFile{Data: []byte("<html>homepage</html>")},
		"load/checkout-summary.json":  summaryFile(2500, 0.01),
		"stress/search-summary.json":  summaryFile(8000, 0.2),
	}
	s := NewAPIServer(dashboard.New(fsys))
	router := httprouter.New()
	for _, r := range s.InitRoutes() {
		router.Handle(r.Method, r.Path, r.HandlerFunc)
	}
	return router
}

func doRequest(router http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetRuns(t *testing.T) {
	rec := doRequest(newTestRouter(), "/api/runs")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	list := new(model.RunList)
	require.Nil(t, json.NewDecoder(rec.Body).Decode(list))
	require.Len(t, list.Runs, 3)
	assert.Equal(t, "homepage", list.Runs[0].Name)
	assert.Equal(t, "checkout", list.Runs[1].Name)
	assert.Equal(t, "search", list.Runs[2].Name)
	assert.Equal(t, model.Totals{Total: 3, Passed: 1, Warned: 1, Failed: 1}, list.Totals)
}

func TestGetCategoryRuns(t *testing.T) {
	router := newTestRouter()

	rec := doRequest(router, "/api/runs/stress")
	require.Equal(t, http.StatusOK, rec.Code)
	list := new(model.RunList)
	require.Nil(t, json.NewDecoder(rec.Body).Decode(list))
	require.Len(t, list.Runs, 1)
	assert.Equal(t, model.StatusFail, list.Runs[0].Status)

	// a known category without runs is an empty list, not null
	rec = doRequest(router, "/api/runs/soak")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"runs":[]`)
}

func TestGetCategoryRunsUnknownCategory(t *testing.T) {
	rec := doRequest(newTestRouter(), "/api/runs/chaos")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	msg := new(JSONMessage)
	require.Nil(t, json.NewDecoder(rec.Body).Decode(msg))
	assert.Contains(t, msg.Message, "invalid category")
}

func TestGetReport(t *testing.T) {
	rec := doRequest(newTestRouter(), "/reports/smoke/homepage-report.html")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<html>homepage</html>", rec.Body.String())
}

func TestGetReportErrors(t *testing.T) {
	router := newTestRouter()
	cases := []struct {
		target string
		code   int
	}{
		{"/reports/load/checkout-report.html", http.StatusNotFound},
		{"/reports/smoke/homepage-summary.json", http.StatusBadRequest},
		{"/reports/smoke/.hidden-report.html", http.StatusBadRequest},
		{"/reports/chaos/homepage-report.html", http.StatusBadRequest},
	}
	for _, c := range cases {
		t.Run(c.target, func(t *testing.T) {
			rec := doRequest(router, c.target)
			assert.Equal(t, c.code, rec.Code)
		})
	}
}

func TestClientAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1:1234", clientAddr(req))

	req.Header.Set("X-Forwarded-For", "192.168.1.5, 10.0.0.2")
	assert.Equal(t, "192.168.1.5", clientAddr(req))

	req.Header.Set("X-Forwarded-For", " 172.16.0.9 ")
	assert.Equal(t, "172.16.0.9", clientAddr(req))
}
