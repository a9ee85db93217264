package api

import (
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/Tureright/performance-test-k6/model"
)

func (s *DashboardAPI) getCategory(params httprouter.Params) (string, error) {
	category := params.ByName("category")
	if !model.InCategories(s.dashboard.Categories, category) {
		return "", makeInvalidResourceError("category")
	}
	return category, nil
}

// getReportFile only lets through the HTML reports k6 writes, so the route
// cannot be used to read summaries or anything else under the results root.
func getReportFile(params httprouter.Params) (string, error) {
	file := params.ByName("file")
	if !strings.HasSuffix(file, model.ReportSuffix) || strings.ContainsAny(file, `/\`) || strings.HasPrefix(file, ".") {
		return "", makeInvalidResourceError("report file")
	}
	return file, nil
}
