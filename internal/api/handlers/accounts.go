// Package handlers contains the HTTP handler implementations for the
// CourtNotify API. Every endpoint follows the same shape: decode a strict
// JSON body, validate it, hand the typed payload to the dispatcher, and
// return the dispatch receipt in the standard envelope.
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

// AccountNotifier defines the dispatch contract for account-lifecycle and
// audit notifications used by the account handler.
type AccountNotifier interface {
	SendWelcomeEmail(ctx context.Context, e types.WelcomeEmail) (*notify.Receipt, error)
	SendAdminAccountCreatedEmail(ctx context.Context, e types.AdminAccountCreatedEmail) (*notify.Receipt, error)
	SendMediaVerificationEmail(ctx context.Context, e types.MediaVerificationEmail) (*notify.Receipt, error)
	SendMediaRejectionEmail(ctx context.Context, e types.MediaRejectionEmail) (*notify.Receipt, error)
	SendInactiveUserEmail(ctx context.Context, e types.InactiveUserEmail) (*notify.Receipt, error)
	SendSystemAdminUpdateEmail(ctx context.Context, e types.SystemAdminUpdateEmail) (*notify.Receipt, error)
}

// --- Request Models ---

// WelcomeEmailRequest is the request body for POST /notify/welcome-email.
type WelcomeEmailRequest struct {
	Email      string `json:"email" validate:"required,email"`
	IsExisting bool   `json:"isExisting"`
	FullName   string `json:"fullName"`
}

// AdminCreatedRequest is the request body for POST /notify/created/admin.
type AdminCreatedRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Forename string `json:"forename" validate:"required"`
	Surname  string `json:"surname" validate:"required"`
}

// MediaVerificationRequest is the request body for POST /notify/media/verification.
type MediaVerificationRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
}

// MediaRejectRequest is the request body for POST /notify/media/reject.
type MediaRejectRequest struct {
	Email    string              `json:"email" validate:"required,email"`
	FullName string              `json:"fullName" validate:"required"`
	Reasons  map[string][]string `json:"reasons" validate:"required,min=1"`
}

// InactiveUserRequest is the request body for POST /notify/user/sign-in.
type InactiveUserRequest struct {
	Email          string `json:"email" validate:"required,email"`
	FullName       string `json:"fullName" validate:"required"`
	LastSignedIn   string `json:"lastSignedInDate"`
	UserProvenance string `json:"userProvenance"`
}

// SystemAdminUpdateRequest is the request body for POST /notify/sysadmin/update.
type SystemAdminUpdateRequest struct {
	Email          string `json:"email" validate:"required,email"`
	RequesterEmail string `json:"requesterEmail" validate:"required,email"`
	ActionResult   string `json:"actionResult" validate:"required,oneof=SUCCEEDED ATTEMPTED ERRORED"`
	ChangeType     string `json:"changeType" validate:"required"`
	Detail         string `json:"detail"`
}

// --- Handler ---

// AccountHandler serves the account-lifecycle notification endpoints.
type AccountHandler struct {
	notifier  AccountNotifier
	validator *core.Validator
	logger    *slog.Logger
}

// NewAccountHandler creates an AccountHandler with the provided dependencies.
func NewAccountHandler(n AccountNotifier, v *core.Validator, l *slog.Logger) *AccountHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AccountHandler{notifier: n, validator: v, logger: l}
}

// Routes mounts the account notification endpoints.
func (h *AccountHandler) Routes(r chi.Router) {
	r.Post("/welcome-email", h.Welcome)
	r.Post("/created/admin", h.AdminCreated)
	r.Post("/media/verification", h.MediaVerification)
	r.Post("/media/reject", h.MediaReject)
	r.Post("/user/sign-in", h.InactiveUser)
	r.Post("/sysadmin/update", h.SystemAdminUpdate)
}

// Welcome handles POST /notify/welcome-email. The isExisting flag selects
// between the new-user and migrated-account welcome templates.
func (h *AccountHandler) Welcome(w http.ResponseWriter, r *http.Request) {
	var req WelcomeEmailRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendWelcomeEmail(r.Context(), types.WelcomeEmail{
		Email:    req.Email,
		FullName: req.FullName,
		Existing: req.IsExisting,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// AdminCreated handles POST /notify/created/admin.
func (h *AccountHandler) AdminCreated(w http.ResponseWriter, r *http.Request) {
	var req AdminCreatedRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendAdminAccountCreatedEmail(r.Context(), types.AdminAccountCreatedEmail{
		Email:    req.Email,
		Forename: req.Forename,
		Surname:  req.Surname,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// MediaVerification handles POST /notify/media/verification.
func (h *AccountHandler) MediaVerification(w http.ResponseWriter, r *http.Request) {
	var req MediaVerificationRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendMediaVerificationEmail(r.Context(), types.MediaVerificationEmail{
		Email:    req.Email,
		FullName: req.FullName,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// MediaReject handles POST /notify/media/reject.
func (h *AccountHandler) MediaReject(w http.ResponseWriter, r *http.Request) {
	var req MediaRejectRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendMediaRejectionEmail(r.Context(), types.MediaRejectionEmail{
		Email:    req.Email,
		FullName: req.FullName,
		Reasons:  req.Reasons,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// InactiveUser handles POST /notify/user/sign-in.
func (h *AccountHandler) InactiveUser(w http.ResponseWriter, r *http.Request) {
	var req InactiveUserRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendInactiveUserEmail(r.Context(), types.InactiveUserEmail{
		Email:          req.Email,
		FullName:       req.FullName,
		LastSignIn:     req.LastSignedIn,
		UserProvenance: req.UserProvenance,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// SystemAdminUpdate handles POST /notify/sysadmin/update.
func (h *AccountHandler) SystemAdminUpdate(w http.ResponseWriter, r *http.Request) {
	var req SystemAdminUpdateRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipt, err := h.notifier.SendSystemAdminUpdateEmail(r.Context(), types.SystemAdminUpdateEmail{
		Email:          req.Email,
		RequesterEmail: req.RequesterEmail,
		ActionResult:   types.ActionResult(req.ActionResult),
		ChangeType:     types.ChangeType(req.ChangeType),
		Detail:         req.Detail,
	})
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// decodeAndValidate runs the shared decode-then-validate step for a JSON
// endpoint. It returns a *types.AppError ready to hand to core.Error.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v *core.Validator, dst interface{}) error {
	if err := core.DecodeJSON(w, r, dst); err != nil {
		return err
	}
	return v.ValidateStruct(dst)
}
