package notify

import (
	"fmt"
	"time"

	// Court publication timestamps render in the Europe/London civil
	// calendar; embed the tzdata so containers without a zoneinfo
	// directory still resolve it.
	_ "time/tzdata"
)

const (
	zonedLayout = "02 January 2006 at 15:04"
	dateLayout  = "02 January 2006"
)

// londonZone is loaded once at init. LoadLocation cannot fail for
// Europe/London with tzdata embedded.
var londonZone = func() *time.Location {
	loc, err := time.LoadLocation("Europe/London")
	if err != nil {
		panic(fmt.Sprintf("loading Europe/London zone: %v", err))
	}
	return loc
}()

// FormatZonedDateTime parses an ISO-8601 UTC instant and renders it in the
// Europe/London civil calendar, applying the daylight-saving offset, e.g.
// "2021-08-31T08:45:52.123Z" -> "31 August 2021 at 09:45".
func FormatZonedDateTime(iso string) (string, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return "", fmt.Errorf("parsing timestamp %q: %w", iso, err)
	}
	return t.In(londonZone).Format(zonedLayout), nil
}

// FormatInstant renders an already-parsed instant the same way as
// FormatZonedDateTime.
func FormatInstant(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(londonZone).Format(zonedLayout)
}

// FormatDate renders a bare calendar date, e.g. "13 January 2022". Zero
// times render as the empty string so optional dates collapse to the
// missing-optional convention.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
