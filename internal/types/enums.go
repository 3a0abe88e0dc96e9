package types

import (
	"fmt"
	"strings"
)

// ArtefactType identifies the kind of publication an artefact carries.
type ArtefactType string

const (
	ArtefactList               ArtefactType = "LIST"
	ArtefactJudgement          ArtefactType = "JUDGEMENT"
	ArtefactOutcome            ArtefactType = "OUTCOME"
	ArtefactGeneralPublication ArtefactType = "GENERAL_PUBLICATION"
)

// Sensitivity classifies who may see an artefact.
type Sensitivity string

const (
	SensitivityPublic     Sensitivity = "PUBLIC"
	SensitivityClassified Sensitivity = "CLASSIFIED"
	SensitivityInternal   Sensitivity = "INTERNAL"
	SensitivityPrivate    Sensitivity = "PRIVATE"
)

// Language is the language an artefact is published in.
type Language string

const (
	LanguageEnglish   Language = "ENGLISH"
	LanguageWelsh     Language = "WELSH"
	LanguageBilingual Language = "BI_LINGUAL"
)

// ListType is the closed enumeration of court-list categories an artefact
// can belong to. It drives template wording and the shape of generated
// summary/attachment data.
type ListType string

const (
	ListCivilDailyCause          ListType = "CIVIL_DAILY_CAUSE_LIST"
	ListFamilyDailyCause         ListType = "FAMILY_DAILY_CAUSE_LIST"
	ListCivilAndFamilyDailyCause ListType = "CIVIL_AND_FAMILY_DAILY_CAUSE_LIST"
	ListCrownDaily               ListType = "CROWN_DAILY_LIST"
	ListCrownFirm                ListType = "CROWN_FIRM_LIST"
	ListCrownWarned              ListType = "CROWN_WARNED_LIST"
	ListMagistratesPublic        ListType = "MAGISTRATES_PUBLIC_LIST"
	ListMagistratesStandard      ListType = "MAGISTRATES_STANDARD_LIST"
	ListSJPPublic                ListType = "SJP_PUBLIC_LIST"
	ListSJPPress                 ListType = "SJP_PRESS_LIST"
	ListSSCSDaily                ListType = "SSCS_DAILY_LIST"
	ListSSCSDailyAdditional      ListType = "SSCS_DAILY_LIST_ADDITIONAL_HEARINGS"
	ListCOPDailyCause            ListType = "COP_DAILY_CAUSE_LIST"
	ListETDaily                  ListType = "ET_DAILY_LIST"
	ListETFortnightlyPress       ListType = "ET_FORTNIGHTLY_PRESS_LIST"
	ListIACDaily                 ListType = "IAC_DAILY_LIST"
	ListPrimaryHealth            ListType = "PRIMARY_HEALTH_LIST"
	ListCareStandards            ListType = "CARE_STANDARDS_LIST"
	ListAdministrativeCourtDaily ListType = "ADMINISTRATIVE_COURT_DAILY_CAUSE_LIST"
)

// listTypeNames is the immutable display-name side table, built once at
// process start. Lookup happens through FriendlyName, never by mutation.
var listTypeNames = map[ListType]string{
	ListCivilDailyCause:          "Civil Daily Cause List",
	ListFamilyDailyCause:         "Family Daily Cause List",
	ListCivilAndFamilyDailyCause: "Civil and Family Daily Cause List",
	ListCrownDaily:               "Crown Daily List",
	ListCrownFirm:                "Crown Firm List",
	ListCrownWarned:              "Crown Warned List",
	ListMagistratesPublic:        "Magistrates Public List",
	ListMagistratesStandard:      "Magistrates Standard List",
	ListSJPPublic:                "Single Justice Procedure Public List",
	ListSJPPress:                 "Single Justice Procedure Press List",
	ListSSCSDaily:                "SSCS Daily List",
	ListSSCSDailyAdditional:      "SSCS Daily List - Additional Hearings",
	ListCOPDailyCause:            "Court of Protection Daily Cause List",
	ListETDaily:                  "Employment Tribunal Daily List",
	ListETFortnightlyPress:       "Employment Tribunal Fortnightly Press List",
	ListIACDaily:                 "First-tier Tribunal (Immigration and Asylum Chamber) Daily List",
	ListPrimaryHealth:            "Primary Health Tribunal Hearing List",
	ListCareStandards:            "Care Standards Tribunal Hearing List",
	ListAdministrativeCourtDaily: "Administrative Court Daily Cause List",
}

// listTypeByNormalized is the reverse lookup table keyed by the normalized
// (trimmed, lowercased) enumeration value.
var listTypeByNormalized = func() map[string]ListType {
	m := make(map[string]ListType, len(listTypeNames))
	for lt := range listTypeNames {
		m[strings.ToLower(string(lt))] = lt
	}
	return m
}()

// FriendlyName returns the human-readable name for the list type, or the raw
// enumeration value when no display name is registered.
func (lt ListType) FriendlyName() string {
	if name, ok := listTypeNames[lt]; ok {
		return name
	}
	return string(lt)
}

// IsValid reports whether the list type is part of the closed enumeration.
func (lt ListType) IsValid() bool {
	_, ok := listTypeNames[lt]
	return ok
}

// AllListTypes returns every enumerated list type. Order is not significant.
func AllListTypes() []ListType {
	out := make([]ListType, 0, len(listTypeNames))
	for lt := range listTypeNames {
		out = append(out, lt)
	}
	return out
}

// ParseListType normalizes the input (trim + lowercase) before table lookup,
// tolerating the casing and padding seen in upstream CSV feeds.
func ParseListType(s string) (ListType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if lt, ok := listTypeByNormalized[normalized]; ok {
		return lt, nil
	}
	return "", fmt.Errorf("%s: unknown list type %q", ErrCodeValidationListType, s)
}

// EmailKind identifies a notification kind. Each kind has exactly one
// registry entry, one personalisation builder, and one typed payload.
type EmailKind string

const (
	KindNewUserWelcome               EmailKind = "new_user_welcome"
	KindExistingUserWelcome          EmailKind = "existing_user_welcome"
	KindAdminAccountCreated          EmailKind = "admin_account_created"
	KindMediaVerification            EmailKind = "media_verification"
	KindMediaRejection               EmailKind = "media_rejection"
	KindInactiveUserSignIn           EmailKind = "inactive_user_sign_in"
	KindRawDataSubscription          EmailKind = "raw_data_subscription"
	KindFlatFileSubscription         EmailKind = "flat_file_subscription"
	KindMediaApplicationReporting    EmailKind = "media_application_reporting"
	KindUnidentifiedBlob             EmailKind = "unidentified_blob"
	KindMIDataReporting              EmailKind = "mi_data_reporting"
	KindSystemAdminUpdate            EmailKind = "system_admin_update"
	KindLocationSubscriptionDeletion EmailKind = "location_subscription_deletion"
)

// AllEmailKinds returns every notification kind in a stable order. Used by
// exhaustiveness checks over the template catalog.
func AllEmailKinds() []EmailKind {
	return []EmailKind{
		KindNewUserWelcome,
		KindExistingUserWelcome,
		KindAdminAccountCreated,
		KindMediaVerification,
		KindMediaRejection,
		KindInactiveUserSignIn,
		KindRawDataSubscription,
		KindFlatFileSubscription,
		KindMediaApplicationReporting,
		KindUnidentifiedBlob,
		KindMIDataReporting,
		KindSystemAdminUpdate,
		KindLocationSubscriptionDeletion,
	}
}

// SubscriptionType identifies how a subscriber matched an artefact.
type SubscriptionType string

const (
	SubscriptionCaseURN    SubscriptionType = "CASE_URN"
	SubscriptionCaseNumber SubscriptionType = "CASE_NUMBER"
	SubscriptionLocationID SubscriptionType = "LOCATION_ID"
)

// ActionResult records the outcome of a system-admin action for audit emails.
type ActionResult string

const (
	ActionSucceeded ActionResult = "SUCCEEDED"
	ActionAttempted ActionResult = "ATTEMPTED"
	ActionErrored   ActionResult = "ERRORED"
)

// ChangeType categorizes the system-admin action being reported.
type ChangeType string

const (
	ChangeDeleteLocation         ChangeType = "DELETE_LOCATION"
	ChangeDeleteLocationArtefact ChangeType = "DELETE_LOCATION_ARTEFACT"
	ChangeDeleteThirdPartyUser   ChangeType = "DELETE_THIRD_PARTY_USER"
	ChangeCreateThirdPartyUser   ChangeType = "CREATE_THIRD_PARTY_USER"
	ChangeUpdateThirdPartyUser   ChangeType = "UPDATE_THIRD_PARTY_USER"
)
