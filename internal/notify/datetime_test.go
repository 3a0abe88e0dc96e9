package notify

import (
	"testing"
	"time"
)

func TestFormatZonedDateTimeGMT(t *testing.T) {
	// January: Europe/London is on GMT, no offset from UTC.
	got, err := FormatZonedDateTime("2022-01-13T23:30:52.123Z")
	if err != nil {
		t.Fatalf("FormatZonedDateTime error: %v", err)
	}
	if got != "13 January 2022 at 23:30" {
		t.Errorf("got %q, want %q", got, "13 January 2022 at 23:30")
	}
}

func TestFormatZonedDateTimeBST(t *testing.T) {
	// August: British Summer Time, +1 hour applied.
	got, err := FormatZonedDateTime("2021-08-31T08:45:52.123Z")
	if err != nil {
		t.Fatalf("FormatZonedDateTime error: %v", err)
	}
	if got != "31 August 2021 at 09:45" {
		t.Errorf("got %q, want %q", got, "31 August 2021 at 09:45")
	}
}

func TestFormatZonedDateTimeRejectsGarbage(t *testing.T) {
	if _, err := FormatZonedDateTime("13/01/2022 11pm"); err == nil {
		t.Error("expected parse error for non-ISO input")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2022, time.January, 13, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "13 January 2022" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "" {
		t.Errorf("zero time should render empty, got %q", got)
	}
}

func TestFormatInstantCrossesMidnight(t *testing.T) {
	// 23:30 UTC in BST lands on the next civil day in London.
	instant := time.Date(2021, time.August, 31, 23, 30, 0, 0, time.UTC)
	if got := FormatInstant(instant); got != "01 September 2021 at 00:30" {
		t.Errorf("FormatInstant = %q", got)
	}
}
