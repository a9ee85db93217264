package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"path"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/Tureright/performance-test-k6/dashboard"
	"github.com/Tureright/performance-test-k6/model"
)

type DashboardAPI struct {
	dashboard *dashboard.Dashboard
}

func NewAPIServer(d *dashboard.Dashboard) *DashboardAPI {
	return &DashboardAPI{
		dashboard: d,
	}
}

type JSONMessage struct {
	Message string `json:"message"`
}

func (s *DashboardAPI) jsonise(w http.ResponseWriter, status int, content interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(content)
}

func (s *DashboardAPI) makeRespMessage(message string) *JSONMessage {
	return &JSONMessage{
		Message: message,
	}
}

func (s *DashboardAPI) makeFailMessage(w http.ResponseWriter, message string, statusCode int) {
	messageObj := s.makeRespMessage(message)
	s.jsonise(w, statusCode, messageObj)
}

func (s *DashboardAPI) handleErrors(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invalidRequestErr):
		s.makeFailMessage(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, notFoundErr):
		s.makeFailMessage(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("api error: %v", err)
		s.makeFailMessage(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *DashboardAPI) collect(r *http.Request) (*dashboard.Report, error) {
	report, err := s.dashboard.Collect(r.Context())
	if err != nil {
		return nil, makeInternalServerError(err.Error())
	}
	return report, nil
}

func (s *DashboardAPI) runsGetHandler(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	report, err := s.collect(r)
	if err != nil {
		s.handleErrors(w, err)
		return
	}
	s.jsonise(w, http.StatusOK, model.NewRunList(report.Runs))
}

func (s *DashboardAPI) categoryRunsGetHandler(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	category, err := s.getCategory(params)
	if err != nil {
		s.handleErrors(w, err)
		return
	}
	report, err := s.collect(r)
	if err != nil {
		s.handleErrors(w, err)
		return
	}
	s.jsonise(w, http.StatusOK, model.NewRunList(report.ByCategory(category)))
}

func (s *DashboardAPI) reportGetHandler(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	category, err := s.getCategory(params)
	if err != nil {
		s.handleErrors(w, err)
		return
	}
	file, err := getReportFile(params)
	if err != nil {
		s.handleErrors(w, err)
		return
	}
	filename := path.Join(category, file)
	fi, err := fs.Stat(s.dashboard.FS, filename)
	if err != nil {
		s.handleErrors(w, makeNotFoundError(filename))
		return
	}
	data, err := fs.ReadFile(s.dashboard.FS, filename)
	if err != nil {
		s.handleErrors(w, makeInternalServerError(err.Error()))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, req, file, fi.ModTime(), bytes.NewReader(data))
}

type Route struct {
	Name        string
	Method      string
	Path        string
	HandlerFunc httprouter.Handle
}

type Routes []*Route

func (s *DashboardAPI) InitRoutes() Routes {
	routes := Routes{
		&Route{"get_runs", "GET", "/api/runs", s.runsGetHandler},
		&Route{"get_category_runs", "GET", "/api/runs/:category", s.categoryRunsGetHandler},
		&Route{"get_report", "GET", "/reports/:category/:file", s.reportGetHandler},
	}
	for _, r := range routes {
		r.HandlerFunc = s.requestLogged(r.HandlerFunc)
	}
	return routes
}
