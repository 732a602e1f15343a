package app_test

import (
	"strings"
	"testing"

	"smileaudit/internal/app"
	"smileaudit/internal/domain"
)

func fullRecord() *domain.ListingRecord {
	rating := 4.8
	count := 612
	return &domain.ListingRecord{
		Name:             "Bright Smiles Dental",
		FormattedAddress: "1 Main St, Springfield, IL",
		Phone:            "+1 555-0100",
		Website:          "https://brightsmiles.example",
		WeekdayHours:     []string{"Monday: 9-5", "Tuesday: 9-5"},
		PhotoCount:       12,
		Rating:           &rating,
		RatingCount:      &count,
		Types:            []string{"dentist", "point_of_interest"},
		Accessibility:    []string{"wheelchair accessible entrance"},
	}
}

func TestListingExtractors_NilRecord(t *testing.T) {
	if v, checks := app.Completeness(nil); v.Present() || checks.Present() {
		t.Error("Completeness should be sentinel")
	}
	if v := app.Hours(nil); v.Present() {
		t.Error("Hours should be sentinel")
	}
	if v := app.PhotoCount(nil); v.Present() {
		t.Error("PhotoCount should be sentinel")
	}
	if r, c := app.RatingAndCount(nil); r.Present() || c.Present() {
		t.Error("RatingAndCount should be sentinel")
	}
	if v := app.Accessibility(nil); v.Present() {
		t.Error("Accessibility should be sentinel")
	}
}

func TestCompleteness_AllSignalsScore100(t *testing.T) {
	score, checks := app.Completeness(fullRecord())
	if score.Text() != "100/100" {
		t.Fatalf("score = %q", score.Text())
	}
	if strings.Contains(checks.Text(), "❌") {
		t.Fatalf("expected all checks passing, got %q", checks.Text())
	}
	if !strings.Contains(checks.Text(), "Photos ✅ (12)") {
		t.Fatalf("photo count missing from checklist: %q", checks.Text())
	}
}

func TestCompleteness_EmptyRecordScoresZero(t *testing.T) {
	score, checks := app.Completeness(&domain.ListingRecord{})
	if score.Text() != "0/100" {
		t.Fatalf("score = %q", score.Text())
	}
	if strings.Contains(checks.Text(), "✅") {
		t.Fatalf("expected all checks failing, got %q", checks.Text())
	}
}

func TestCompleteness_CategoryRequiresDentalType(t *testing.T) {
	rec := fullRecord()
	rec.Types = []string{"doctor"}
	score, checks := app.Completeness(rec)
	if score.Text() != "90/100" {
		t.Fatalf("score = %q", score.Text())
	}
	if !strings.Contains(checks.Text(), "Category ❌") {
		t.Fatalf("checks = %q", checks.Text())
	}
}

func TestHoursAndPhotoCount(t *testing.T) {
	rec := fullRecord()
	if got := app.Hours(rec); got.Text() != "Monday: 9-5; Tuesday: 9-5" {
		t.Fatalf("hours = %q", got.Text())
	}
	if got := app.PhotoCount(rec); got.Text() != "12" {
		t.Fatalf("photos = %q", got.Text())
	}
	if got := app.Hours(&domain.ListingRecord{}); got.Present() {
		t.Fatal("no hours should be sentinel")
	}
}

func TestRatingAndCount(t *testing.T) {
	rating, count := app.RatingAndCount(fullRecord())
	if rating.Text() != "4.8/5" {
		t.Fatalf("rating = %q", rating.Text())
	}
	if count.Text() != "612" {
		t.Fatalf("count = %q", count.Text())
	}

	// Each side degrades independently.
	rec := &domain.ListingRecord{}
	r2, c2 := app.RatingAndCount(rec)
	if r2.Present() || c2.Present() {
		t.Fatalf("expected sentinels, got (%v, %v)", r2, c2)
	}
}
