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

// SubscriptionNotifier defines the dispatch contract for publication
// subscription notifications.
type SubscriptionNotifier interface {
	SendRawDataSubscriptionEmail(ctx context.Context, e types.RawDataSubscriptionEmail, courtHouses []notify.CourtHouse) (*notify.Receipt, error)
	SendFlatFileSubscriptionEmail(ctx context.Context, e types.FlatFileSubscriptionEmail) (*notify.Receipt, error)
	SendLocationSubscriptionDeletionEmail(ctx context.Context, e types.LocationSubscriptionDeletionEmail, recipients []string) ([]*notify.Receipt, error)
}

// SubscriptionData resolves artefact payloads and location metadata from
// the data-management service.
type SubscriptionData interface {
	GetLocation(ctx context.Context, locationID string) (*types.Location, error)
	GetArtefactPayload(ctx context.Context, artefactID string) ([]byte, error)
}

// --- Request Models ---

// SubscriptionRequest is the request body for POST /notify/subscription.
// Subscriptions maps a subscription type (CASE_URN, CASE_NUMBER,
// LOCATION_ID) to the matched values for this subscriber.
type SubscriptionRequest struct {
	Email         string              `json:"email" validate:"required,email"`
	Subscriptions map[string][]string `json:"subscriptions" validate:"required"`
	Artefact      types.Artefact      `json:"artefact"`
}

// LocationDeletionRequest is the request body for
// POST /notify/location-subscription-delete.
type LocationDeletionRequest struct {
	LocationName     string   `json:"locationName" validate:"required"`
	SubscriberEmails []string `json:"subscriberEmails" validate:"required,min=1"`
	// SystemAdminEmails are the recipients of the deletion notice.
	SystemAdminEmails []string `json:"systemAdminEmails" validate:"required,min=1,dive,email"`
}

// --- Handler ---

// SubscriptionHandler serves the publication subscription endpoints.
type SubscriptionHandler struct {
	notifier  SubscriptionNotifier
	data      SubscriptionData
	retention types.RetentionPeriod
	validator *core.Validator
	logger    *slog.Logger
}

// NewSubscriptionHandler creates a SubscriptionHandler with the provided
// dependencies. retention applies to every attachment uploaded alongside a
// subscription email.
func NewSubscriptionHandler(
	n SubscriptionNotifier,
	d SubscriptionData,
	retention types.RetentionPeriod,
	v *core.Validator,
	l *slog.Logger,
) *SubscriptionHandler {
	if l == nil {
		l = slog.Default()
	}
	return &SubscriptionHandler{
		notifier:  n,
		data:      d,
		retention: retention,
		validator: v,
		logger:    l,
	}
}

// Routes mounts the subscription notification endpoints.
func (h *SubscriptionHandler) Routes(r chi.Router) {
	r.Post("/subscription", h.Subscription)
	r.Post("/location-subscription-delete", h.LocationDeletion)
}

// Subscription handles POST /notify/subscription. The artefact's flat-file
// flag selects between the flat-file path (payload forwarded as a single
// attachment) and the raw-data path (payload attached as JSON alongside a
// generated summary workbook).
func (h *SubscriptionHandler) Subscription(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	subscriptions, err := parseSubscriptions(req.Subscriptions)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	locationName, err := h.resolveLocationName(r.Context(), req.Artefact.LocationID)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	payload, err := h.data.GetArtefactPayload(r.Context(), req.Artefact.ID)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	var receipt *notify.Receipt
	if req.Artefact.IsFlatFile {
		receipt, err = h.notifier.SendFlatFileSubscriptionEmail(r.Context(), types.FlatFileSubscriptionEmail{
			Email:        req.Email,
			Artefact:     req.Artefact,
			LocationName: locationName,
			FlatFile:     payload,
			Retention:    h.retention,
		})
	} else {
		receipt, err = h.notifier.SendRawDataSubscriptionEmail(r.Context(), types.RawDataSubscriptionEmail{
			Email:         req.Email,
			Subscriptions: subscriptions,
			Artefact:      req.Artefact,
			LocationName:  locationName,
			RawData:       payload,
			Retention:     h.retention,
		}, notify.ParseListPayload(payload))
	}
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: receipt})
}

// LocationDeletion handles POST /notify/location-subscription-delete,
// fanning the notice out to every system admin recipient.
func (h *SubscriptionHandler) LocationDeletion(w http.ResponseWriter, r *http.Request) {
	var req LocationDeletionRequest
	if err := decodeAndValidate(w, r, h.validator, &req); err != nil {
		core.Error(w, r, err)
		return
	}

	receipts, err := h.notifier.SendLocationSubscriptionDeletionEmail(r.Context(), types.LocationSubscriptionDeletionEmail{
		LocationName:     req.LocationName,
		SubscriberEmails: req.SubscriberEmails,
	}, req.SystemAdminEmails)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.JSON(w, r, http.StatusOK, core.APIResponse{Data: map[string]any{"receipts": receipts}})
}

// resolveLocationName fetches the display name for the artefact's location.
// Artefacts without a location id (e.g., unmatched provenance) resolve to
// an empty name rather than an error.
func (h *SubscriptionHandler) resolveLocationName(ctx context.Context, locationID string) (string, error) {
	if locationID == "" {
		return "", nil
	}
	location, err := h.data.GetLocation(ctx, locationID)
	if err != nil {
		return "", err
	}
	return location.Name, nil
}

// parseSubscriptions converts the wire-level subscription map into typed
// keys, rejecting requests with no non-empty entry.
func parseSubscriptions(raw map[string][]string) (map[types.SubscriptionType][]string, error) {
	out := make(map[types.SubscriptionType][]string, len(raw))
	nonEmpty := false
	for key, values := range raw {
		switch t := types.SubscriptionType(key); t {
		case types.SubscriptionCaseURN, types.SubscriptionCaseNumber, types.SubscriptionLocationID:
			out[t] = values
			if len(values) > 0 {
				nonEmpty = true
			}
		default:
			return nil, types.NewAppErrorWithDetails(
				types.ErrCodeValidationBadPayload,
				"unknown subscription type",
				nil,
				map[string]any{"subscriptionType": key},
			)
		}
	}
	if !nonEmpty {
		return nil, types.NewAppError(
			types.ErrCodeValidationEmptySubs,
			"subscriptions must contain at least one non-empty entry",
			nil,
		)
	}
	return out, nil
}
