package ui

import (
	"bytes"
	"net/http"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/Tureright/performance-test-k6/api"
	"github.com/Tureright/performance-test-k6/dashboard"
)

// ReportsPrefix is where the api serves the per-run k6 reports.
const ReportsPrefix = "/reports/"

type UI struct {
	dashboard *dashboard.Dashboard
}

func NewUI(d *dashboard.Dashboard) *UI {
	return &UI{
		dashboard: d,
	}
}

// homeHandler renders the dashboard from whatever is on disk right now.
func (u *UI) homeHandler(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	report, err := u.dashboard.Collect(r.Context())
	if err != nil {
		log.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := Render(&buf, NewDashboardPage(report, ReportsPrefix)); err != nil {
		log.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (u *UI) InitRoutes() api.Routes {
	return api.Routes{
		&api.Route{Name: "home", Method: "GET", Path: "/", HandlerFunc: u.homeHandler},
	}
}
