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

// mockAccountNotifier implements AccountNotifier with overridable functions.
type mockAccountNotifier struct {
	sendWelcomeFn           func(ctx context.Context, e types.WelcomeEmail) (*notify.Receipt, error)
	sendAdminCreatedFn      func(ctx context.Context, e types.AdminAccountCreatedEmail) (*notify.Receipt, error)
	sendMediaVerificationFn func(ctx context.Context, e types.MediaVerificationEmail) (*notify.Receipt, error)
	sendMediaRejectionFn    func(ctx context.Context, e types.MediaRejectionEmail) (*notify.Receipt, error)
	sendInactiveUserFn      func(ctx context.Context, e types.InactiveUserEmail) (*notify.Receipt, error)
	sendSystemAdminFn       func(ctx context.Context, e types.SystemAdminUpdateEmail) (*notify.Receipt, error)
}

func (m *mockAccountNotifier) SendWelcomeEmail(ctx context.Context, e types.WelcomeEmail) (*notify.Receipt, error) {
	return m.sendWelcomeFn(ctx, e)
}

func (m *mockAccountNotifier) SendAdminAccountCreatedEmail(ctx context.Context, e types.AdminAccountCreatedEmail) (*notify.Receipt, error) {
	return m.sendAdminCreatedFn(ctx, e)
}

func (m *mockAccountNotifier) SendMediaVerificationEmail(ctx context.Context, e types.MediaVerificationEmail) (*notify.Receipt, error) {
	return m.sendMediaVerificationFn(ctx, e)
}

func (m *mockAccountNotifier) SendMediaRejectionEmail(ctx context.Context, e types.MediaRejectionEmail) (*notify.Receipt, error) {
	return m.sendMediaRejectionFn(ctx, e)
}

func (m *mockAccountNotifier) SendInactiveUserEmail(ctx context.Context, e types.InactiveUserEmail) (*notify.Receipt, error) {
	return m.sendInactiveUserFn(ctx, e)
}

func (m *mockAccountNotifier) SendSystemAdminUpdateEmail(ctx context.Context, e types.SystemAdminUpdateEmail) (*notify.Receipt, error) {
	return m.sendSystemAdminFn(ctx, e)
}

func okReceipt() *notify.Receipt {
	return &notify.Receipt{ReferenceID: "ref-123", ProviderID: "prov-456"}
}

// serveAccount mounts an AccountHandler and performs one request against it.
func serveAccount(t *testing.T, mock *mockAccountNotifier, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewAccountHandler(mock, core.NewValidator(), nil)
	r := chi.NewRouter()
	h.Routes(r)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp core.APIErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error body: %v (body: %s)", err, rec.Body.String())
	}
	return resp.Error.Code
}

func referenceID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Data struct {
			ReferenceID string `json:"referenceId"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding success body: %v (body: %s)", err, rec.Body.String())
	}
	return resp.Data.ReferenceID
}

func TestWelcome_Success(t *testing.T) {
	var captured types.WelcomeEmail
	mock := &mockAccountNotifier{
		sendWelcomeFn: func(ctx context.Context, e types.WelcomeEmail) (*notify.Receipt, error) {
			captured = e
			return okReceipt(), nil
		},
	}

	rec := serveAccount(t, mock, http.MethodPost, "/welcome-email",
		`{"email":"test@email.com","isExisting":true,"fullName":"Test User"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if referenceID(t, rec) == "" {
		t.Error("referenceId missing from response")
	}
	if !captured.Existing || captured.Email != "test@email.com" {
		t.Errorf("dispatched payload = %+v", captured)
	}
}

func TestWelcome_InvalidEmail(t *testing.T) {
	mock := &mockAccountNotifier{
		sendWelcomeFn: func(ctx context.Context, e types.WelcomeEmail) (*notify.Receipt, error) {
			t.Fatal("dispatcher must not be called for invalid input")
			return nil, nil
		},
	}

	rec := serveAccount(t, mock, http.MethodPost, "/welcome-email",
		`{"email":"not-an-email","isExisting":false}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeValidationInvalidEmail) {
		t.Errorf("code = %q", got)
	}
}

func TestWelcome_MalformedJSON(t *testing.T) {
	mock := &mockAccountNotifier{}

	rec := serveAccount(t, mock, http.MethodPost, "/welcome-email", `{"email":`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeValidationBadPayload) {
		t.Errorf("code = %q", got)
	}
}

func TestAdminCreated_MissingForename(t *testing.T) {
	mock := &mockAccountNotifier{}

	rec := serveAccount(t, mock, http.MethodPost, "/created/admin",
		`{"email":"admin@justice.gov.uk","surname":"Smith"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeValidationMissingField) {
		t.Errorf("code = %q", got)
	}
	if !strings.Contains(rec.Body.String(), "forename") {
		t.Errorf("error details missing field name: %s", rec.Body.String())
	}
}

func TestMediaReject_Success(t *testing.T) {
	var captured types.MediaRejectionEmail
	mock := &mockAccountNotifier{
		sendMediaRejectionFn: func(ctx context.Context, e types.MediaRejectionEmail) (*notify.Receipt, error) {
			captured = e
			return okReceipt(), nil
		},
	}

	rec := serveAccount(t, mock, http.MethodPost, "/media/reject",
		`{"email":"reporter@press.co.uk","fullName":"A Reporter","reasons":{"ID check":["Photo unclear"]}}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := captured.Reasons["ID check"]; len(got) != 1 || got[0] != "Photo unclear" {
		t.Errorf("reasons = %v", captured.Reasons)
	}
}

func TestSystemAdminUpdate_RejectsUnknownResult(t *testing.T) {
	mock := &mockAccountNotifier{}

	rec := serveAccount(t, mock, http.MethodPost, "/sysadmin/update",
		`{"email":"admins@justice.gov.uk","requesterEmail":"ops@justice.gov.uk","actionResult":"MAYBE","changeType":"DELETE_LOCATION"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSystemAdminUpdate_Success(t *testing.T) {
	var captured types.SystemAdminUpdateEmail
	mock := &mockAccountNotifier{
		sendSystemAdminFn: func(ctx context.Context, e types.SystemAdminUpdateEmail) (*notify.Receipt, error) {
			captured = e
			return okReceipt(), nil
		},
	}

	rec := serveAccount(t, mock, http.MethodPost, "/sysadmin/update",
		`{"email":"admins@justice.gov.uk","requesterEmail":"ops@justice.gov.uk","actionResult":"SUCCEEDED","changeType":"DELETE_LOCATION","detail":"Removed closed court"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if captured.ActionResult != types.ActionSucceeded {
		t.Errorf("actionResult = %q", captured.ActionResult)
	}
	if captured.ChangeType != types.ChangeDeleteLocation {
		t.Errorf("changeType = %q", captured.ChangeType)
	}
}

func TestInactiveUser_DispatchFailurePropagates(t *testing.T) {
	mock := &mockAccountNotifier{
		sendInactiveUserFn: func(ctx context.Context, e types.InactiveUserEmail) (*notify.Receipt, error) {
			return nil, types.NewAppError(types.ErrCodeUpstreamRateLimited, "provider throttling", nil)
		},
	}

	rec := serveAccount(t, mock, http.MethodPost, "/user/sign-in",
		`{"email":"user@example.com","fullName":"Dormant User"}`)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if got := errorCode(t, rec); got != string(types.ErrCodeUpstreamRateLimited) {
		t.Errorf("code = %q", got)
	}
}
