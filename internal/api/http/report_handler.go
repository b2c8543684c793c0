package http

import (
	"net/http"
	"time"

	"equiptrack-backend/internal/service"
)

type ReportHandler struct {
	reports service.ReportService
}

func NewReportHandler(reports service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("export") == "excel" {
		h.exportExcel(w, r)
		return
	}

	report, err := h.reports.Build(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *ReportHandler) exportExcel(w http.ResponseWriter, r *http.Request) {
	data, err := h.reports.ExportExcel(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filename := "inventory_" + time.Now().Format("20060102") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
