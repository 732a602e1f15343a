package app_test

import (
	"testing"

	"smileaudit/internal/app"
	"smileaudit/internal/domain"
)

func TestAnalyzeReviews_Empty(t *testing.T) {
	got := app.AnalyzeReviews(nil)
	if got.Sentiment.Present() || got.TopPositive.Present() || got.TopNegative.Present() {
		t.Fatalf("expected sentinels for empty input: %+v", got)
	}
}

func TestAnalyzeReviews_ThemesAndSentiment(t *testing.T) {
	reviews := []domain.Review{
		{Text: "Staff were very friendly and the clinic was clean"},
		{Text: "Had to wait a long time at reception"},
	}
	got := app.AnalyzeReviews(reviews)

	if got.Sentiment.Text() != "Mostly positive mentions (2 vs 2)" {
		t.Fatalf("sentiment = %q", got.Sentiment.Text())
	}
	if got.TopPositive.Text() != "friendly staff (1); cleanliness (1)" {
		t.Fatalf("top positive = %q", got.TopPositive.Text())
	}
	if got.TopNegative.Text() != "long wait (1); front desk experience (1)" {
		t.Fatalf("top negative = %q", got.TopNegative.Text())
	}
}

func TestAnalyzeReviews_SubstringCountingIsNotBoundaryAware(t *testing.T) {
	// "wait" matches inside "waiting" twice over: once for the "wait" keyword
	// and once for "waiting" itself. Intentional, long-standing behavior.
	got := app.AnalyzeReviews([]domain.Review{{Text: "waiting and waiting"}})
	if len(got.Negative) != 1 || got.Negative[0].Theme != "long wait" {
		t.Fatalf("negative = %+v", got.Negative)
	}
	if got.Negative[0].Count != 4 {
		t.Fatalf("count = %d, want 4 (2x wait + 2x waiting)", got.Negative[0].Count)
	}
}

func TestAnalyzeReviews_NegativeDominant(t *testing.T) {
	got := app.AnalyzeReviews([]domain.Review{
		{Text: "Billing was a mess, rude reception, painful and rough visit"},
	})
	// billing (1) + reception/rude (2) + painful/rough (2)
	if got.Sentiment.Text() != "Mixed with notable concerns (5 negatives vs 0 positives)" {
		t.Fatalf("sentiment = %q", got.Sentiment.Text())
	}
	if got.TopPositive.Text() != "None detected" {
		t.Fatalf("top positive = %q", got.TopPositive.Text())
	}
}

func TestAnalyzeReviews_NoThemes(t *testing.T) {
	got := app.AnalyzeReviews([]domain.Review{{Text: "It happened"}})
	if got.Sentiment.Text() != "Mixed/neutral (few obvious themes)" {
		t.Fatalf("sentiment = %q", got.Sentiment.Text())
	}
	if got.TopPositive.Text() != "None detected" || got.TopNegative.Text() != "None detected" {
		t.Fatalf("themes = (%q, %q)", got.TopPositive.Text(), got.TopNegative.Text())
	}
}

func TestAnalyzeReviews_TopThreeOnly(t *testing.T) {
	got := app.AnalyzeReviews([]domain.Review{
		{Text: "friendly clean gentle professional explained everything"},
	})
	// "explained" feeds communication twice (it also contains "explain");
	// ties keep table order. Only the top three render.
	if got.TopPositive.Text() != "communication (2); friendly staff (1); cleanliness (1)" {
		t.Fatalf("top positive = %q", got.TopPositive.Text())
	}
	if len(got.Positive) != 5 {
		t.Fatalf("expected all 5 tallies retained, got %d", len(got.Positive))
	}
}
