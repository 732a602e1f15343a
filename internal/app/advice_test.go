package app_test

import (
	"testing"

	"smileaudit/internal/app"
	"smileaudit/internal/domain"
)

func TestAdvise_SentinelAndMarkersSuppressed(t *testing.T) {
	if got := app.Advise("Website Health Score", domain.Absent()); got != "" {
		t.Fatalf("sentinel must yield no advice, got %q", got)
	}
	markers := []string{
		"Search limited",
		"Not available via Places API (GBP needed)",
		"REQUEST_DENIED",
		"zero_results",
	}
	for _, m := range markers {
		if got := app.Advise("Google Reviews (Avg)", domain.SomeText(m)); got != "" {
			t.Errorf("marker %q must yield no advice, got %q", m, got)
		}
	}
}

func TestAdvise_Rules(t *testing.T) {
	cases := []struct {
		metric string
		value  string
		want   string
	}{
		{"Website Health Score", "95/100", "You nailed it"},
		{"Website Health Score", "66/100", "Improve HTTPS/mobile/speed"},
		{"GBP Completeness (estimate)", "100/100", "You nailed it"},
		{"GBP Completeness (estimate)", "45/100", "Add hours, photos, website, phone on GBP"},
		{"Search Visibility (Page 1 for 'dentist near <city>')", "Yes (Page 1)", "You nailed it"},
		{"Search Visibility (Page 1 for 'dentist near <city>')", "No (Not on Page 1)", "Improve local SEO & citations"},
		{"Social Media Presence", "Facebook, Instagram", "You nailed it"},
		{"Social Media Presence", "Facebook", "Add the other platform & post weekly"},
		{"Social Media Presence", "None", "Add FB/IG links; post 2-3x/week"},
		{"Google Reviews (Avg)", "4.8/5", "You nailed it"},
		{"Google Reviews (Avg)", "4.2/5", "Ask happy patients for reviews to reach 4.6+"},
		{"Google Reviews (Avg)", "3.1/5", "Address negatives & request fresh 5-star reviews"},
		{"Total Google Reviews", "612", "You nailed it"},
		{"Total Google Reviews", "150", "Run a monthly review drive to hit 300"},
		{"Total Google Reviews", "12", "Launch QR/SMS review ask at checkout"},
		{"Appointment Booking", "Online booking (link/form)", "You nailed it"},
		{"Appointment Booking", "Phone-only or unclear", "Add an online booking link/button"},
		{"Office Hours", "Monday: 9-5", "Offer evenings/weekends to boost conversions"},
		{"Insurance Acceptance", "Unclear", "Publish accepted plans on site & GBP"},
		{"Insurance Acceptance", "we accept most ppo insurance plans", "You nailed it"},
		{"Sentiment Highlights", "Mostly positive mentions (4 vs 1)", "You nailed it"},
		{"Sentiment Highlights", "Mixed with notable concerns (3 negatives vs 1 positives)", "Fix top negatives & reply to reviews"},
		{"Top Positive Themes", "friendly staff (3)", "Amplify these themes on website & ads"},
		{"Top Positive Themes", "None detected", ""},
		{"Top Negative Themes", "None detected", "You nailed it"},
		{"Top Negative Themes", "long wait (2)", "Stagger scheduling & add SMS reminders"},
		{"Top Negative Themes", "billing issues (2)", "Clarify estimates & billing SOP"},
		{"Top Negative Themes", "front desk experience (1)", "Train front desk on empathy scripts"},
		{"Top Negative Themes", "upselling (1)", "Tackle top 1-2 negative themes this month"},
		{"Photos count in Google", "14", "You nailed it"},
		{"Photos count in Google", "0", "Upload 10-20 clinic & team photos"},
		{"Advertising Scripts Detected", "Google tag", "You nailed it"},
		{"Advertising Scripts Detected", "None detected", "Add GA4/Ads pixel for conversion tracking"},
		{"Some Unknown Metric", "anything", ""},
	}
	for _, tc := range cases {
		if got := app.Advise(tc.metric, domain.SomeText(tc.value)); got != tc.want {
			t.Errorf("Advise(%q, %q) = %q, want %q", tc.metric, tc.value, got, tc.want)
		}
	}
}
