package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Artefact is a single publication unit received from data-management. It is
// immutable once constructed and owned exclusively by the request carrying
// it; this service never persists artefacts.
type Artefact struct {
	ID            string           `json:"artefactId"`
	Provenance    string           `json:"provenance"`
	SourceID      string           `json:"sourceArtefactId"`
	Type          ArtefactType     `json:"type"`
	Sensitivity   Sensitivity      `json:"sensitivity"`
	Language      Language         `json:"language"`
	Search        map[string][]any `json:"search"`
	DisplayFrom   time.Time        `json:"displayFrom"`
	DisplayTo     time.Time        `json:"displayTo"`
	ListType      ListType         `json:"listType"`
	LocationID    string           `json:"locationId"`
	ContentDate   time.Time        `json:"contentDate"`
	IsFlatFile    bool             `json:"isFlatFile"`
	PayloadURL    string           `json:"payloadUrl"`
}

// CaseSearch is one entry of an artefact's embedded case-search metadata,
// decoded from Search["cases"].
type CaseSearch struct {
	CaseNumber string `json:"caseNumber"`
	CaseName   string `json:"caseName"`
	CaseURN    string `json:"caseUrn"`
}

// CaseSearches decodes the artefact's "cases" search entry into typed
// records, preserving source order. The second return is false when the
// artefact carries no "cases" key at all. Entries that fail to decode are
// skipped rather than failing the whole lookup; case names are an
// enrichment, not a requirement.
func (a *Artefact) CaseSearches() ([]CaseSearch, bool) {
	raw, ok := a.Search["cases"]
	if !ok {
		return nil, false
	}

	out := make([]CaseSearch, 0, len(raw))
	for _, entry := range raw {
		// Entries arrive as generic JSON objects; round-trip through
		// encoding/json to map them onto the typed struct.
		b, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		var cs CaseSearch
		if err := json.Unmarshal(b, &cs); err != nil {
			continue
		}
		out = append(out, cs)
	}
	return out, true
}

// Location is court/tribunal venue metadata resolved by data-management.
type Location struct {
	ID     string `json:"locationId"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// MediaApplication is one row of the media-account application report.
type MediaApplication struct {
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Employer    string    `json:"employer"`
	RequestDate time.Time `json:"requestDate"`
	Status      string    `json:"status"`
	StatusDate  time.Time `json:"statusDate"`
}

// RetentionPeriod is the number of whole weeks an attachment download link
// remains valid at the delivery provider.
type RetentionPeriod int

// Validate enforces the non-negative invariant.
func (r RetentionPeriod) Validate() error {
	if r < 0 {
		return fmt.Errorf("%s: retention period must not be negative, got %d", ErrCodeValidationMissingField, int(r))
	}
	return nil
}

// String renders the provider wire form, e.g. "78 weeks". A single week is
// still pluralized by the provider's contract.
func (r RetentionPeriod) String() string {
	return fmt.Sprintf("%d weeks", int(r))
}

// NormalizeAttachment guarantees downstream serialization never sees a nil
// payload: absent attachments become zero-length byte slices.
func NormalizeAttachment(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
