package handlers

import (
	"net/http"
	"time"

	"github.com/gestor-app/gestor/internal/httpx"
	"github.com/gestor-app/gestor/internal/services"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Show renders the three aggregations, optionally bounded by
// start_date/end_date (ISO dates, both inclusive).
func (h *ReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start_date")
	endStr := r.URL.Query().Get("end_date")

	var start, end *time.Time
	var dateErr bool
	if startStr != "" {
		if t, err := time.Parse("2006-01-02", startStr); err == nil {
			start = &t
		} else {
			dateErr = true
		}
	}
	if endStr != "" {
		if t, err := time.Parse("2006-01-02", endStr); err == nil {
			end = &t
		} else {
			dateErr = true
		}
	}

	rep, err := h.reports.Summary(start, end)
	if err != nil {
		http.Error(w, "erro ao gerar relatório", http.StatusInternalServerError)
		return
	}
	data := map[string]any{
		"Report":    rep,
		"StartDate": startStr,
		"EndDate":   endStr,
	}
	if dateErr {
		data["Flash"] = httpx.Flash{Category: "warning", Message: "Data inválida; use o formato AAAA-MM-DD"}
	}
	render(w, r, "relatorios.html", data)
}
