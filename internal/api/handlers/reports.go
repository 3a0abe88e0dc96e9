package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"courtnotify/internal/core"
	"courtnotify/internal/notify"
	"courtnotify/internal/types"
)

// --- Service Interfaces ---

// ReportNotifier defines the dispatch contract for reporting and triage
// notifications.
type ReportNotifier interface {
	SendMediaApplicationReportingEmail(ctx context.Context, e types.MediaApplicationReportingEmail) (*notify.Receipt, error)
	SendMIDataReportingEmail(ctx context.Context, e types.MIDataReportingEmail) (*notify.Receipt, error)
	SendUnidentifiedBlobEmail(ctx context.Context, e types.UnidentifiedBlobEmail) (*notify.Receipt, error)
}

// --- Request Models ---

// MediaReportRequest is the request body for POST /notify/media/report.
// The application list is converted into the attached spreadsheet; an
// empty list still produces a header-only report.
type MediaReportRequest struct {
	Email        string                   `json:"email" validate:"required,email"`
	Applications []types.MediaApplication `json:"applications"`
}

// MISectionRequest is one sheet of the MI report.
type MISectionRequest struct {
	Name   string     `json:"name" validate:"required"`
	Header []string   `json:"header" validate:"required,min=1"`
	Rows   [][]string `json:"rows"`
}

// MIReportRequest is the request body for POST /notify/mi/report.
type MIReportRequest struct {
	Email       string             `json:"email" validate:"required,email"`
	Environment string             `json:"environment"`
	Sections    []MISectionRequest `json:"sections" validate:"required,min=1,dive"`
}

// UnidentifiedBlobRequest is the request body for POST /notify/unidentified-blob.
type UnidentifiedBlobRequest struct {
	Email    string         `json:"email" validate:"required,email"`
	Artefact types.Artefact `json:"artefact"`
}

// --- Handler ---

// ReportHandler serves the reporting and triage notification endpoints.
type ReportHandler struct {
	notifier  ReportNotifier
	retention types.RetentionPeriod
	validator *core.Validator
	logger    *slog.Logger
}

// NewReportHandler creates a ReportHandler with the provided dependencies.
func NewReportHandler(n ReportNotifier, retention types.RetentionPeriod, v *core.Validator, l *slog.Logger) *ReportHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ReportHandler{notifier: n, retention: retention, validator: v, logger: l}
}

// Routes mounts the reporting endpoints.
func (h *ReportHandler) Routes(r chi.Router) {
	r.Post("/media/report", h.MediaReport)
	r.Post("/mi/report", h.MIReport)
	r.Post("/unidentified-blob", h.UnidentifiedBlob)
}

// MediaReport handles POST /notify/media/report. The workbook is generated
// by the dispatcher from the application rows.
func (h *ReportHandler) MediaReport(w http.ResponseWriter, r *http.Request) {
	var req MediaReportRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendMediaApplicationReportingEmail(r.Context(), types.MediaApplicationReportingEmail{
		Email:        req.Email,
		Applications: req.Applications,
		Retention:    h.retention,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// MIReport handles POST /notify/mi/report, generating one workbook sheet
// per submitted section.
func (h *ReportHandler) MIReport(w http.ResponseWriter, r *http.Request) {
	var req MIReportRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	sections := make([]notify.MISection, 0, len(req.Sections))
	for _, s := range req.Sections {
		sections = append(sections, notify.MISection{
			Name:   s.Name,
			Header: s.Header,
			Rows:   s.Rows,
		})
	}

	workbook, err := notify.GenerateMIWorkbook(sections)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendMIDataReportingEmail(r.Context(), types.MIDataReportingEmail{
		Email:       req.Email,
		Workbook:    workbook,
		Retention:   h.retention,
		Environment: req.Environment,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// UnidentifiedBlob handles POST /notify/unidentified-blob.
func (h *ReportHandler) UnidentifiedBlob(w http.ResponseWriter, r *http.Request) {
	var req UnidentifiedBlobRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendUnidentifiedBlobEmail(r.Context(), types.UnidentifiedBlobEmail{
		Email:    req.Email,
		Artefact: req.Artefact,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}
