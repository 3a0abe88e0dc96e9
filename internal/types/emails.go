package types

// Email payload structs. One struct per EmailKind, carrying only the fields
// that kind needs; the dispatcher switches over the kind rather than
// downcasting a shared base type. Each value lives for a single dispatch
// call and is discarded after the send.

// WelcomeEmail covers both the new-user and existing-user (migrated account)
// welcome flows; Existing selects the template kind.
type WelcomeEmail struct {
	Email    string
	FullName string
	Existing bool
}

// AdminAccountCreatedEmail is sent when an admin account is provisioned.
type AdminAccountCreatedEmail struct {
	Email     string
	Forename  string
	Surname   string
	ResetLink string
}

// MediaVerificationEmail asks a media user to re-verify a dormant account.
type MediaVerificationEmail struct {
	Email    string
	FullName string
}

// MediaRejectionEmail tells an applicant why their application was declined.
type MediaRejectionEmail struct {
	Email    string
	FullName string
	// Reasons maps a rejection category to its explanatory sentences,
	// rendered as a bulleted block in the template.
	Reasons map[string][]string
}

// InactiveUserEmail reminds a dormant user to sign in before suspension.
type InactiveUserEmail struct {
	Email          string
	FullName       string
	LastSignIn     string
	UserProvenance string
}

// RawDataSubscriptionEmail is the JSON-subscription notification for one
// subscriber: summary text plus up to three generated attachments.
type RawDataSubscriptionEmail struct {
	Email         string
	Subscriptions map[SubscriptionType][]string
	Artefact      Artefact
	LocationName  string
	Summary       string
	// Attachments are normalized (never nil) binary payloads uploaded
	// inline with the personalisation.
	SummarySheet []byte
	RawData      []byte
	Retention    RetentionPeriod
}

// FlatFileSubscriptionEmail carries the fetched flat-file publication as a
// single attachment.
type FlatFileSubscriptionEmail struct {
	Email        string
	Artefact     Artefact
	LocationName string
	FlatFile     []byte
	Retention    RetentionPeriod
}

// MediaApplicationReportingEmail carries the generated applications
// spreadsheet for the admin reporting run.
type MediaApplicationReportingEmail struct {
	Email        string
	Applications []MediaApplication
	Workbook     []byte
	Retention    RetentionPeriod
}

// UnidentifiedBlobEmail flags an artefact whose location could not be
// matched so a human can triage it.
type UnidentifiedBlobEmail struct {
	Email    string
	Artefact Artefact
}

// MIDataReportingEmail carries the management-information spreadsheet.
type MIDataReportingEmail struct {
	Email       string
	Workbook    []byte
	Retention   RetentionPeriod
	Environment string
}

// SystemAdminUpdateEmail is the audit notification for a system-admin action.
type SystemAdminUpdateEmail struct {
	Email          string
	RequesterEmail string
	ActionResult   ActionResult
	ChangeType     ChangeType
	Detail         string
	Environment    string
}

// LocationSubscriptionDeletionEmail informs system admins that a location
// was deleted while subscribers were still attached.
type LocationSubscriptionDeletionEmail struct {
	Email            string
	LocationName     string
	SubscriberEmails []string
}
