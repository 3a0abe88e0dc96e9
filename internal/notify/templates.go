// Package notify implements the rendering and dispatch core of the service:
// the template catalog, per-kind personalisation builders, case-name
// enrichment, and the dispatcher that turns a typed email payload into a
// single provider send.
package notify

import (
	"fmt"

	"courtnotify/internal/types"
)

// templateCatalog pairs every notification kind with the template id the
// delivery provider recognizes. It is compiled-in configuration: built once,
// never mutated at runtime.
var templateCatalog = map[types.EmailKind]string{
	types.KindNewUserWelcome:               "b708c2dc-5794-4468-a8bf-f798fe1c9187",
	types.KindExistingUserWelcome:          "321cbaa6-2a19-4980-87c6-fe90516db59b",
	types.KindAdminAccountCreated:          "5609152b-9f53-4d80-9ec3-6caa6fa90d1e",
	types.KindMediaVerification:            "1b01d4b3-bdbb-448c-bea4-f765b59296e6",
	types.KindMediaRejection:               "1988bbdc-b9bb-4e27-a96a-64bd386f82e6",
	types.KindInactiveUserSignIn:           "8f1e82a9-7016-4b28-8473-20c70f9f11ba",
	types.KindRawDataSubscription:          "d508d432-e1e4-4a71-b6d1-46ceb2d59a45",
	types.KindFlatFileSubscription:         "d235a8fe-54e9-4b6b-91cc-9f8c3fca5d7e",
	types.KindMediaApplicationReporting:    "c59c90a1-0551-4304-83cc-fd9a26291f14",
	types.KindUnidentifiedBlob:             "e27d5862-8a06-4c1e-b2fc-7ba446fd9e3e",
	types.KindMIDataReporting:              "f93c1766-9e72-4a9f-8e14-6ad3cf16b40c",
	types.KindSystemAdminUpdate:            "0a8ab792-dc0f-4b96-9b6c-41f32c8a33c9",
	types.KindLocationSubscriptionDeletion: "66c1b4c5-9d58-4931-af27-2a4d4bca4f91",
}

// Registry is the immutable association between notification kinds and
// provider template ids, with a reverse index for id lookups. Safe for
// unsynchronized concurrent reads.
type Registry struct {
	byKind map[types.EmailKind]string
	byID   map[string]types.EmailKind
}

// NewRegistry builds the registry from the compiled-in catalog.
func NewRegistry() *Registry {
	byKind := make(map[types.EmailKind]string, len(templateCatalog))
	byID := make(map[string]types.EmailKind, len(templateCatalog))
	for kind, id := range templateCatalog {
		byKind[kind] = id
		byID[id] = kind
	}
	return &Registry{byKind: byKind, byID: byID}
}

// Resolve returns the provider template id for the given kind. The catalog
// covers the full EmailKind enumeration, so a failure here means the caller
// passed a kind outside the closed set.
func (r *Registry) Resolve(kind types.EmailKind) (string, error) {
	if id, ok := r.byKind[kind]; ok {
		return id, nil
	}
	return "", types.NewAppError(
		types.ErrCodeTemplateNotFound,
		fmt.Sprintf("no template registered for notification kind %q", kind),
		nil,
	)
}

// ByID reverse-looks-up the notification kind for a raw provider template id.
// Unknown ids fail explicitly; callers must not silently default.
func (r *Registry) ByID(id string) (types.EmailKind, error) {
	if kind, ok := r.byID[id]; ok {
		return kind, nil
	}
	return "", types.NewAppError(
		types.ErrCodeTemplateNotFound,
		fmt.Sprintf("no notification kind registered for template id %q", id),
		nil,
	)
}
