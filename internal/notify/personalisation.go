package notify

import (
	"sort"
	"strings"

	"courtnotify/internal/types"
)

// Personalisation is the flat placeholder-name to value map substituted into
// a template by the delivery provider. Every placeholder a template declares
// must be present; missing optional inputs map to the empty string, never to
// a missing key. Values are always pre-formatted strings.
type Personalisation map[string]string

// Links holds the service page URLs substituted into account emails. They
// come from configuration and never vary per request.
type Links struct {
	StartPage        string
	SubscriptionPage string
	GovGuidancePage  string
	AadSignInPage    string
	CftSignInPage    string
	ResetPassword    string
	Verification     string
}

// Builder constructs per-kind personalisation maps. It is stateless apart
// from compiled-in link and environment configuration, so a single instance
// serves concurrent dispatches.
type Builder struct {
	links   Links
	envName string
}

// NewBuilder returns a Builder carrying the configured service links and
// environment name.
func NewBuilder(links Links, envName string) *Builder {
	return &Builder{links: links, envName: envName}
}

// BuildWelcome covers both the new-user and existing-user welcome templates;
// the two share a placeholder set.
func (b *Builder) BuildWelcome(e types.WelcomeEmail) Personalisation {
	return Personalisation{
		"full_name":              e.FullName,
		"start_page_link":        b.links.StartPage,
		"subscription_page_link": b.links.SubscriptionPage,
		"gov_guidance_page_link": b.links.GovGuidancePage,
	}
}

// BuildAdminAccountCreated builds the AAD admin provisioning email.
func (b *Builder) BuildAdminAccountCreated(e types.AdminAccountCreatedEmail) Personalisation {
	resetLink := e.ResetLink
	if resetLink == "" {
		resetLink = b.links.ResetPassword
	}
	return Personalisation{
		"first_name":          e.Forename,
		"surname":             e.Surname,
		"reset_password_link": resetLink,
		"sign_in_page_link":   b.links.AadSignInPage,
	}
}

// BuildMediaVerification builds the periodic media re-verification email.
func (b *Builder) BuildMediaVerification(e types.MediaVerificationEmail) Personalisation {
	return Personalisation{
		"full_name":              e.FullName,
		"verification_page_link": b.links.Verification,
	}
}

// BuildMediaRejection builds the application-declined email. Rejection
// reasons are flattened into one bulleted block; categories are sorted so
// the rendered block is deterministic, while sentences within a category
// keep their source order.
func (b *Builder) BuildMediaRejection(e types.MediaRejectionEmail) Personalisation {
	categories := make([]string, 0, len(e.Reasons))
	for category := range e.Reasons {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var lines []string
	for _, category := range categories {
		lines = append(lines, category)
		for _, sentence := range e.Reasons[category] {
			lines = append(lines, "• "+sentence)
		}
	}

	return Personalisation{
		"full_name":       e.FullName,
		"reject_reasons":  strings.Join(lines, "\n"),
		"link_to_service": b.links.StartPage,
	}
}

// BuildInactiveUser builds the dormant-account reminder. The sign-in link
// follows the identity provider the account lives in.
func (b *Builder) BuildInactiveUser(e types.InactiveUserEmail) Personalisation {
	signIn := b.links.CftSignInPage
	if strings.EqualFold(e.UserProvenance, "PI_AAD") {
		signIn = b.links.AadSignInPage
	}
	return Personalisation{
		"full_name":           e.FullName,
		"last_signed_in_date": e.LastSignIn,
		"sign_in_page_link":   signIn,
	}
}

// BuildRawDataSubscription builds the JSON-subscription notification.
// Case-number lines are enriched against the artefact's search metadata
// before insertion; attachments are embedded as provider upload objects.
func (b *Builder) BuildRawDataSubscription(e types.RawDataSubscriptionEmail) (Personalisation, error) {
	caseNumbers := EnrichCaseNumbers(e.Artefact, e.Subscriptions[types.SubscriptionCaseNumber])

	summaryUpload, err := PrepareUpload(e.SummarySheet, "publication-summary.xlsx", e.Retention)
	if err != nil {
		return nil, err
	}
	rawUpload, err := PrepareUpload(e.RawData, "publication.json", e.Retention)
	if err != nil {
		return nil, err
	}

	return Personalisation{
		"list_type":              e.Artefact.ListType.FriendlyName(),
		"content_date":           FormatDate(e.Artefact.ContentDate),
		"display_from":           FormatInstant(e.Artefact.DisplayFrom),
		"display_to":             FormatInstant(e.Artefact.DisplayTo),
		"location_name":          e.LocationName,
		"case_numbers":           strings.Join(caseNumbers, "\n"),
		"case_urns":              strings.Join(e.Subscriptions[types.SubscriptionCaseURN], "\n"),
		"summary":                e.Summary,
		"link_to_file":           summaryUpload,
		"raw_data_file":          rawUpload,
		"start_page_link":        b.links.StartPage,
		"subscription_page_link": b.links.SubscriptionPage,
	}, nil
}

// BuildFlatFileSubscription builds the flat-file subscription notification
// carrying the fetched publication as a single attachment.
func (b *Builder) BuildFlatFileSubscription(e types.FlatFileSubscriptionEmail) (Personalisation, error) {
	upload, err := PrepareUpload(e.FlatFile, flatFileName(e.Artefact), e.Retention)
	if err != nil {
		return nil, err
	}
	return Personalisation{
		"list_type":              e.Artefact.ListType.FriendlyName(),
		"content_date":           FormatDate(e.Artefact.ContentDate),
		"location_name":          e.LocationName,
		"link_to_file":           upload,
		"start_page_link":        b.links.StartPage,
		"subscription_page_link": b.links.SubscriptionPage,
	}, nil
}

// flatFileName derives the attachment filename from the artefact's source
// id, falling back to a generic name when the source id carries none.
func flatFileName(a types.Artefact) string {
	if a.SourceID != "" {
		return a.SourceID
	}
	return "publication.pdf"
}

// BuildMediaApplicationReporting builds the admin reporting email around the
// generated applications workbook.
func (b *Builder) BuildMediaApplicationReporting(e types.MediaApplicationReportingEmail) (Personalisation, error) {
	upload, err := PrepareUpload(e.Workbook, "media-applications.xlsx", e.Retention)
	if err != nil {
		return nil, err
	}
	return Personalisation{
		"link_to_file": upload,
		"env_name":     b.envName,
	}, nil
}

// BuildUnidentifiedBlob builds the triage email for an artefact whose
// location could not be matched.
func (b *Builder) BuildUnidentifiedBlob(e types.UnidentifiedBlobEmail) Personalisation {
	return Personalisation{
		"artefact_id":        e.Artefact.ID,
		"provenance":         e.Artefact.Provenance,
		"source_artefact_id": e.Artefact.SourceID,
		"display_from":       FormatInstant(e.Artefact.DisplayFrom),
		"display_to":         FormatInstant(e.Artefact.DisplayTo),
		"env_name":           b.envName,
	}
}

// BuildMIDataReporting builds the management-information reporting email.
func (b *Builder) BuildMIDataReporting(e types.MIDataReportingEmail) (Personalisation, error) {
	upload, err := PrepareUpload(e.Workbook, "mi-report.xlsx", e.Retention)
	if err != nil {
		return nil, err
	}
	envName := e.Environment
	if envName == "" {
		envName = b.envName
	}
	return Personalisation{
		"link_to_file": upload,
		"env_name":     envName,
	}, nil
}

// BuildSystemAdminUpdate builds the audit notification for a system-admin
// action. The requester address appears for audit display only, so it is
// masked; the delivery address on the email itself never is.
func (b *Builder) BuildSystemAdminUpdate(e types.SystemAdminUpdateEmail) Personalisation {
	envName := e.Environment
	if envName == "" {
		envName = b.envName
	}
	return Personalisation{
		"requester_email": MaskEmail(e.RequesterEmail),
		"action_result":   string(e.ActionResult),
		"change_type":     string(e.ChangeType),
		"action_details":  e.Detail,
		"env_name":        envName,
	}
}

// BuildLocationSubscriptionDeletion builds the admin notification listing
// the subscribers attached to a deleted location. Subscriber order is
// preserved as received.
func (b *Builder) BuildLocationSubscriptionDeletion(e types.LocationSubscriptionDeletionEmail) Personalisation {
	return Personalisation{
		"location_name":     e.LocationName,
		"subscriber_emails": strings.Join(e.SubscriberEmails, "\n"),
	}
}
