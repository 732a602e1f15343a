package app

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"smileaudit/internal/domain"
)

// Fixed-text rows the report always carries. These are data-source notes,
// not probe results, so they bypass the extractors entirely.
const (
	noteSocialDetails   = "Follower counts & activity require platform APIs/login"
	noteResponseRate    = "Not available via Places API (GBP needed)"
	visibilityYes       = "Yes (Page 1)"
	visibilityNo        = "No (Not on Page 1)"
	searchVisibilityKey = "Search Visibility (Page 1 for 'dentist near <city>')"
)

// assembleReport runs every extractor over the frozen inputs and builds the
// six display sections plus the Smile Score. It is pure: identical inputs
// produce identical reports.
func assembleReport(q domain.ClinicQuery, page domain.Page, rec *domain.ListingRecord,
	visibility, competitive domain.Value, now time.Time) domain.Report {

	healthScore, healthChecks, healthPct := WebsiteHealth(q.Website, page)
	social, socialTier := SocialPresence(page)
	booking, bookingPath := Booking(page)
	insurance, insuranceOK := Insurance(page)

	completeness, completenessChecks := Completeness(rec)
	hours := Hours(rec)
	photoCount := PhotoCount(rec)
	rating, ratingCount := RatingAndCount(rec)
	accessibility := Accessibility(rec)

	var reviews []domain.Review
	if rec != nil {
		reviews = rec.Reviews
	}
	analysis := AnalyzeReviews(reviews)

	overview := section("1) Practice Overview",
		metric("Practice Name", orAbsent(q.Name)),
		metric("Address", orAbsent(q.Address)),
		metric("Phone", orAbsent(q.Phone)),
		metric("Website", orAbsent(q.Website)),
		metric("Years in Operation", OperatingSince(page)),
		metric("Specialties Highlighted", Specialties(page)),
	)
	visibilitySec := section("2) Online Presence & Visibility",
		metric("GBP Completeness (estimate)", completeness),
		metric("GBP Signals", completenessChecks),
		metric(searchVisibilityKey, visibility),
		metric("Website Health Score", healthScore),
		metric("Website Health Checks", healthChecks),
		metric("Social Media Presence", social),
		metric("Social Media Details", domain.SomeText(noteSocialDetails)),
	)
	reputation := section("3) Patient Reputation & Feedback",
		metric("Google Reviews (Avg)", rating),
		metric("Total Google Reviews", ratingCount),
		metric("Sentiment Highlights", analysis.Sentiment),
		metric("Yelp / Healthgrades / Zocdoc", domain.Absent()),
		metric("Top Positive Themes", analysis.TopPositive),
		metric("Top Negative Themes", analysis.TopNegative),
		metric("Review Response Rate", domain.SomeText(noteResponseRate)),
	)
	marketing := section("4) Marketing Signals",
		metric("Local SEO (NAP consistency)", domain.Absent()),
		metric("Photos/Videos on Website", MediaCount(page)),
		metric("Photos count in Google", photoCount),
		metric("Advertising Scripts Detected", AdSignals(page)),
		metric("Social Proof (media/mentions)", domain.Absent()),
	)
	experience := section("5) Patient Experience & Accessibility",
		metric("Appointment Booking", booking),
		metric("Office Hours", hours),
		metric("Insurance Acceptance", insurance),
		metric("Accessibility Signals", accessibility),
	)
	competitiveSec := section("6) Competitive Benchmark",
		metric("Avg Rating of Top 3 Nearby", competitive),
	)

	var recRating *float64
	var recCount *int
	if rec != nil {
		recRating = rec.Rating
		recCount = rec.RatingCount
	}
	score := ComputeScore(ScoreInputs{
		HealthPct:     healthPct,
		Social:        socialTier,
		Rating:        recRating,
		ReviewCount:   recCount,
		Booking:       bookingPath,
		HoursPresent:  hours.Present(),
		InsuranceOK:   insuranceOK,
		AccessibleSet: accessibility.Present(),
	})

	return domain.Report{
		Clinic:      q,
		Sections:    []domain.Section{overview, visibilitySec, reputation, marketing, experience, competitiveSec},
		Score:       score,
		GeneratedAt: now,
	}
}

func section(title string, metrics ...domain.Metric) domain.Section {
	return domain.Section{Title: title, Metrics: metrics}
}

func metric(name string, v domain.Value) domain.Metric {
	return domain.Metric{Name: name, Value: v, Advice: Advise(name, v)}
}

func orAbsent(s string) domain.Value {
	if strings.TrimSpace(s) == "" {
		return domain.Absent()
	}
	return domain.SomeText(s)
}

// domainOf extracts the bare host of a URL, without the "www." prefix.
func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// cityFromAddress pulls the second-to-last comma-separated part of a free
// text address, a crude but serviceable city guess.
func cityFromAddress(addr string) string {
	if !strings.Contains(addr, ",") {
		return ""
	}
	parts := strings.Split(addr, ",")
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[len(parts)-2])
}

// formatAvgRating renders a two-decimal competitor average.
func formatAvgRating(avg float64) domain.Value {
	return domain.SomeText(fmt.Sprintf("%.2f", avg))
}
