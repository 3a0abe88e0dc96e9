package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"courtnotify/internal/types"
)

// SendEmailInput is the request handed to the delivery capability.
type SendEmailInput struct {
	TemplateID      string
	Address         string
	Personalisation Personalisation
	Reference       string
}

// SendEmailResponse is what the delivery capability reports for an accepted
// send. Reference echoes the dispatcher-generated reference id.
type SendEmailResponse struct {
	ID        string
	Reference string
	URI       string
}

// EmailClient is the delivery capability: an opaque provider that accepts a
// template, an address, personalisation, and a reference id. Its transport
// is out of the dispatcher's hands.
type EmailClient interface {
	SendEmail(ctx context.Context, input SendEmailInput) (*SendEmailResponse, error)
}

// Receipt is returned to the caller of every dispatch operation. The
// reference id is the correlation key for later status queries against the
// provider.
type Receipt struct {
	ReferenceID string `json:"referenceId"`
	ProviderID  string `json:"providerId,omitempty"`
}

// Dispatcher orchestrates a single send: build personalisation, resolve the
// template, generate a fresh reference id, invoke the delivery capability,
// and map provider failures into the service's error taxonomy. It holds no
// cross-call state, so concurrent dispatches need no coordination.
//
// Reference ids are random per call and never derived from content: two
// identical requests produce two distinct sends. The dispatcher performs no
// deduplication and no retries; a provider failure is surfaced synchronously
// with the provider's message preserved.
type Dispatcher struct {
	registry *Registry
	builder  *Builder
	client   EmailClient
	logger   *slog.Logger

	// newReference is swappable in tests; production uses uuid.NewString.
	newReference func() string
}

// NewDispatcher wires a Dispatcher from its collaborators.
func NewDispatcher(registry *Registry, builder *Builder, client EmailClient, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		registry:     registry,
		builder:      builder,
		client:       client,
		logger:       logger,
		newReference: uuid.NewString,
	}
}

// dispatch runs the per-call state machine shared by every notification
// kind: RESOLVE_TEMPLATE -> GENERATE_REFERENCE_ID -> SEND.
func (d *Dispatcher) dispatch(ctx context.Context, kind types.EmailKind, address string, p Personalisation) (*Receipt, error) {
	templateID, err := d.registry.Resolve(kind)
	if err != nil {
		return nil, err
	}

	reference := d.newReference()

	d.logger.Info("dispatching email",
		"kind", string(kind),
		"recipient", MaskEmail(address),
		"reference_id", reference,
	)

	resp, err := d.client.SendEmail(ctx, SendEmailInput{
		TemplateID:      templateID,
		Address:         address,
		Personalisation: p,
		Reference:       reference,
	})
	if err != nil {
		return nil, wrapSendError(kind, err)
	}

	return &Receipt{ReferenceID: reference, ProviderID: resp.ID}, nil
}

// wrapSendError folds provider failures into the notify_send_failed code,
// keeping the provider's own message verbatim so operators can correlate
// logs. Upstream transport errors (rate limit, outage) already carry their
// own codes and pass through untouched.
func wrapSendError(kind types.EmailKind, err error) error {
	var appErr *types.AppError
	if errors.As(err, &appErr) && appErr.HTTPStatus() >= 500 {
		return err
	}
	return types.NewAppError(
		types.ErrCodeNotifyFailed,
		fmt.Sprintf("sending %s email: %v", kind, err),
		err,
	)
}

// SendWelcomeEmail dispatches the new-user or existing-user welcome email,
// selected by the Existing flag.
func (d *Dispatcher) SendWelcomeEmail(ctx context.Context, e types.WelcomeEmail) (*Receipt, error) {
	kind := types.KindNewUserWelcome
	if e.Existing {
		kind = types.KindExistingUserWelcome
	}
	return d.dispatch(ctx, kind, e.Email, d.builder.BuildWelcome(e))
}

// SendAdminAccountCreatedEmail dispatches the admin provisioning email.
func (d *Dispatcher) SendAdminAccountCreatedEmail(ctx context.Context, e types.AdminAccountCreatedEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindAdminAccountCreated, e.Email, d.builder.BuildAdminAccountCreated(e))
}

// SendMediaVerificationEmail dispatches the media re-verification email.
func (d *Dispatcher) SendMediaVerificationEmail(ctx context.Context, e types.MediaVerificationEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindMediaVerification, e.Email, d.builder.BuildMediaVerification(e))
}

// SendMediaRejectionEmail dispatches the application-declined email.
func (d *Dispatcher) SendMediaRejectionEmail(ctx context.Context, e types.MediaRejectionEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindMediaRejection, e.Email, d.builder.BuildMediaRejection(e))
}

// SendInactiveUserEmail dispatches the dormant-account reminder.
func (d *Dispatcher) SendInactiveUserEmail(ctx context.Context, e types.InactiveUserEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindInactiveUserSignIn, e.Email, d.builder.BuildInactiveUser(e))
}

// SendRawDataSubscriptionEmail dispatches the JSON-subscription notification,
// generating the summary workbook from the artefact's list data when rows
// are supplied.
func (d *Dispatcher) SendRawDataSubscriptionEmail(ctx context.Context, e types.RawDataSubscriptionEmail, courtHouses []CourtHouse) (*Receipt, error) {
	if len(courtHouses) > 0 {
		workbook, err := generateListWorkbook(courtHouses)
		if err != nil {
			return nil, err
		}
		e.SummarySheet = workbook
		if e.Summary == "" {
			e.Summary = BuildListSummary(courtHouses)
		}
	}

	p, err := d.builder.BuildRawDataSubscription(e)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, types.KindRawDataSubscription, e.Email, p)
}

// SendFlatFileSubscriptionEmail dispatches the flat-file subscription
// notification. The payload bytes must already be fetched by the caller.
func (d *Dispatcher) SendFlatFileSubscriptionEmail(ctx context.Context, e types.FlatFileSubscriptionEmail) (*Receipt, error) {
	p, err := d.builder.BuildFlatFileSubscription(e)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, types.KindFlatFileSubscription, e.Email, p)
}

// SendMediaApplicationReportingEmail generates the applications workbook and
// dispatches the reporting email.
func (d *Dispatcher) SendMediaApplicationReportingEmail(ctx context.Context, e types.MediaApplicationReportingEmail) (*Receipt, error) {
	if len(e.Workbook) == 0 {
		workbook, err := generateMediaApplicationWorkbook(e.Applications)
		if err != nil {
			return nil, err
		}
		e.Workbook = workbook
	}

	p, err := d.builder.BuildMediaApplicationReporting(e)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, types.KindMediaApplicationReporting, e.Email, p)
}

// SendUnidentifiedBlobEmail dispatches the unmatched-location triage email.
func (d *Dispatcher) SendUnidentifiedBlobEmail(ctx context.Context, e types.UnidentifiedBlobEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindUnidentifiedBlob, e.Email, d.builder.BuildUnidentifiedBlob(e))
}

// SendMIDataReportingEmail dispatches the management-information email.
func (d *Dispatcher) SendMIDataReportingEmail(ctx context.Context, e types.MIDataReportingEmail) (*Receipt, error) {
	p, err := d.builder.BuildMIDataReporting(e)
	if err != nil {
		return nil, err
	}
	return d.dispatch(ctx, types.KindMIDataReporting, e.Email, p)
}

// SendSystemAdminUpdateEmail dispatches the admin action audit email.
func (d *Dispatcher) SendSystemAdminUpdateEmail(ctx context.Context, e types.SystemAdminUpdateEmail) (*Receipt, error) {
	return d.dispatch(ctx, types.KindSystemAdminUpdate, e.Email, d.builder.BuildSystemAdminUpdate(e))
}

// SendLocationSubscriptionDeletionEmail fans the deletion notice out to each
// system-admin recipient concurrently. Recipients are isolated: one failing
// send does not suppress the others, and the first error observed is
// reported after every send has settled. Each recipient gets its own
// reference id; the returned receipts are in recipient order.
func (d *Dispatcher) SendLocationSubscriptionDeletionEmail(ctx context.Context, e types.LocationSubscriptionDeletionEmail, recipients []string) ([]*Receipt, error) {
	receipts := make([]*Receipt, len(recipients))

	// A bare Group rather than WithContext: a failed recipient must not
	// cancel the sends still in flight.
	var g errgroup.Group
	for i, recipient := range recipients {
		i, recipient := i, recipient
		g.Go(func() error {
			target := e
			target.Email = recipient
			receipt, err := d.dispatch(ctx, types.KindLocationSubscriptionDeletion, recipient, d.builder.BuildLocationSubscriptionDeletion(target))
			if err != nil {
				d.logger.Error("location deletion notice failed",
					"recipient", MaskEmail(recipient),
					"error", err.Error(),
				)
				return err
			}
			receipts[i] = receipt
			return nil
		})
	}

	err := g.Wait()
	return receipts, err
}
