package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"courtnotify/internal/core"
	"courtnotify/internal/notify"
	"courtnotify/internal/types"
)

// mockSubscriptionNotifier implements SubscriptionNotifier with overridable
// functions.
type mockSubscriptionNotifier struct {
	sendRawDataFn   func(ctx context.Context, e types.RawDataSubscriptionEmail, courtHouses []notify.CourtHouse) (*notify.Receipt, error)
	sendFlatFileFn  func(ctx context.Context, e types.FlatFileSubscriptionEmail) (*notify.Receipt, error)
	sendLocDeleteFn func(ctx context.Context, e types.LocationSubscriptionDeletionEmail, recipients []string) ([]*notify.Receipt, error)
}

func (m *mockSubscriptionNotifier) SendRawDataSubscriptionEmail(ctx context.Context, e types.RawDataSubscriptionEmail, courtHouses []notify.CourtHouse) (*notify.Receipt, error) {
	return m.sendRawDataFn(ctx, e, courtHouses)
}

func (m *mockSubscriptionNotifier) SendFlatFileSubscriptionEmail(ctx context.Context, e types.FlatFileSubscriptionEmail) (*notify.Receipt, error) {
	return m.sendFlatFileFn(ctx, e)
}

func (m *mockSubscriptionNotifier) SendLocationSubscriptionDeletionEmail(ctx context.Context, e types.LocationSubscriptionDeletionEmail, recipients []string) ([]*notify.Receipt, error) {
	return m.sendLocDeleteFn(ctx, e, recipients)
}

// mockSubscriptionData implements SubscriptionData with overridable functions.
type mockSubscriptionData struct {
	getLocationFn func(ctx context.Context, locationID string) (*types.Location, error)
	getPayloadFn  func(ctx context.Context, artefactID string) ([]byte, error)
}

func (m *mockSubscriptionData) GetLocation(ctx context.Context, locationID string) (*types.Location, error) {
	return m.getLocationFn(ctx, locationID)
}

func (m *mockSubscriptionData) GetArtefactPayload(ctx context.Context, artefactID string) ([]byte, error) {
	return m.getPayloadFn(ctx, artefactID)
}

func serveSubscription(t *testing.T, n *mockSubscriptionNotifier, d *mockSubscriptionData, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewSubscriptionHandler(n, d, types.RetentionPeriod(78), core.NewValidator(), nil)
	r := chi.NewRouter()
	h.Routes(r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

const listPayload = `{"courtHouses":[{"courtHouseName":"Leeds Crown Court","courtRooms":[{"courtRoomName":"Court 1","sittings":[{"sittingStart":"10:00","hearings":[{"caseNumber":"T20240001","caseName":"Rex v Doe","hearingType":"Trial"}]}]}]}]}`

func subscriptionBody(isFlatFile bool) string {
	flat := "false"
	if isFlatFile {
		flat = "true"
	}
	return `{
		"email":"subscriber@example.com",
		"subscriptions":{"CASE_NUMBER":["T20240001"],"LOCATION_ID":["9"]},
		"artefact":{
			"artefactId":"art-1","locationId":"9","isFlatFile":` + flat + `,
			"listType":"CIVIL_DAILY_CAUSE_LIST","provenance":"MANUAL_UPLOAD",
			"sourceArtefactId":"list.pdf","type":"LIST","sensitivity":"PUBLIC",
			"language":"ENGLISH","search":{},"displayFrom":"2024-01-13T09:00:00Z",
			"displayTo":"2024-01-14T09:00:00Z","contentDate":"2024-01-13T00:00:00Z",
			"payloadUrl":""
		}
	}`
}

func TestSubscription_RawDataPath(t *testing.T) {
	var capturedEmail types.RawDataSubscriptionEmail
	var capturedHouses []notify.CourtHouse
	n := &mockSubscriptionNotifier{
		sendRawDataFn: func(ctx context.Context, e types.RawDataSubscriptionEmail, courtHouses []notify.CourtHouse) (*notify.Receipt, error) {
			capturedEmail = e
			capturedHouses = courtHouses
			return okReceipt(), nil
		},
	}
	d := &mockSubscriptionData{
		getLocationFn: func(ctx context.Context, locationID string) (*types.Location, error) {
			return &types.Location{ID: locationID, Name: "Leeds Crown Court"}, nil
		},
		getPayloadFn: func(ctx context.Context, artefactID string) ([]byte, error) {
			return []byte(listPayload), nil
		},
	}

	rec := serveSubscription(t, n, d, "/subscription", subscriptionBody(false))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if capturedEmail.LocationName != "Leeds Crown Court" {
		t.Errorf("locationName = %q", capturedEmail.LocationName)
	}
	if string(capturedEmail.RawData) != listPayload {
		t.Error("raw payload not forwarded")
	}
	if len(capturedHouses) != 1 || capturedHouses[0].Name != "Leeds Crown Court" {
		t.Errorf("courtHouses = %+v", capturedHouses)
	}
	if got := capturedEmail.Subscriptions[types.SubscriptionCaseNumber]; len(got) != 1 || got[0] != "T20240001" {
		t.Errorf("subscriptions = %v", capturedEmail.Subscriptions)
	}
}

func TestSubscription_FlatFilePath(t *testing.T) {
	var captured types.FlatFileSubscriptionEmail
	n := &mockSubscriptionNotifier{
		sendFlatFileFn: func(ctx context.Context, e types.FlatFileSubscriptionEmail) (*notify.Receipt, error) {
			captured = e
			return okReceipt(), nil
		},
	}
	d := &mockSubscriptionData{
		getLocationFn: func(ctx context.Context, locationID string) (*types.Location, error) {
			return &types.Location{ID: locationID, Name: "Leeds Crown Court"}, nil
		},
		getPayloadFn: func(ctx context.Context, artefactID string) ([]byte, error) {
			return []byte("%PDF-1.7 fake"), nil
		},
	}

	rec := serveSubscription(t, n, d, "/subscription", subscriptionBody(true))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if string(captured.FlatFile) != "%PDF-1.7 fake" {
		t.Error("flat file payload not forwarded")
	}
	if captured.Retention != 78 {
		t.Errorf("retention = %d", int(captured.Retention))
	}
}

func TestSubscription_EmptySubscriptionsRejected(t *testing.T) {
	n := &mockSubscriptionNotifier{}
	d := &mockSubscriptionData{}

	body := `{"email":"subscriber@example.com","subscriptions":{"CASE_NUMBER":[]},"artefact":{"artefactId":"art-1"}}`
	rec := serveSubscription(t, n, d, "/subscription", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeValidationEmptySubs) {
		t.Errorf("code = %q", got)
	}
}

func TestSubscription_UnknownTypeRejected(t *testing.T) {
	n := &mockSubscriptionNotifier{}
	d := &mockSubscriptionData{}

	body := `{"email":"subscriber@example.com","subscriptions":{"POSTCODE":["LS1"]},"artefact":{"artefactId":"art-1"}}`
	rec := serveSubscription(t, n, d, "/subscription", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeValidationBadPayload) {
		t.Errorf("code = %q", got)
	}
}

func TestSubscription_UpstreamFailureIs502(t *testing.T) {
	n := &mockSubscriptionNotifier{}
	d := &mockSubscriptionData{
		getLocationFn: func(ctx context.Context, locationID string) (*types.Location, error) {
			return nil, types.NewAppError(types.ErrCodeUpstreamData, "data-management returned 500", nil)
		},
	}

	rec := serveSubscription(t, n, d, "/subscription", subscriptionBody(false))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeUpstreamData) {
		t.Errorf("code = %q", got)
	}
}

func TestLocationDeletion_FansOut(t *testing.T) {
	var capturedRecipients []string
	n := &mockSubscriptionNotifier{
		sendLocDeleteFn: func(ctx context.Context, e types.LocationSubscriptionDeletionEmail, recipients []string) ([]*notify.Receipt, error) {
			capturedRecipients = recipients
			receipts := make([]*notify.Receipt, len(recipients))
			for i := range recipients {
				receipts[i] = &notify.Receipt{ReferenceID: "ref-" + recipients[i]}
			}
			return receipts, nil
		},
	}
	d := &mockSubscriptionData{}

	body := `{"locationName":"Leeds Crown Court","subscriberEmails":["a@example.com","b@example.com"],"systemAdminEmails":["admin1@justice.gov.uk","admin2@justice.gov.uk"]}`
	rec := serveSubscription(t, n, d, "/location-subscription-delete", body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(capturedRecipients) != 2 {
		t.Errorf("recipients = %v", capturedRecipients)
	}

	var resp struct {
		Data struct {
			Receipts []notify.Receipt `json:"receipts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(resp.Data.Receipts) != 2 {
		t.Errorf("receipts = %+v", resp.Data.Receipts)
	}
}

func TestLocationDeletion_RequiresRecipients(t *testing.T) {
	n := &mockSubscriptionNotifier{}
	d := &mockSubscriptionData{}

	body := `{"locationName":"Leeds Crown Court","subscriberEmails":["a@example.com"],"systemAdminEmails":[]}`
	rec := serveSubscription(t, n, d, "/location-subscription-delete", body)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
