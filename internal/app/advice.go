package app

import (
	"strconv"
	"strings"

	"smileaudit/internal/domain"
)

// Advisory rule engine: maps a metric name and value to a short
// recommendation, or "" when there is nothing useful to say. Pure
// lookup/classification, no side effects.

// errorMarkers are upstream failure phrases that can leak into displayed
// values; they suppress advice the same way the typed sentinel does.
var errorMarkers = []string{
	"search limited",
	"not available via places api",
	"request_denied",
	"invalid request",
	"permission denied",
	"zero_results",
}

// Advise returns the recommendation for one metric. Sentinel values and
// error-marker text yield no advice; so do metric names with no rule.
func Advise(metricName string, v domain.Value) string {
	if !v.Present() {
		return ""
	}
	s := strings.ToLower(strings.TrimSpace(v.Text()))
	for _, marker := range errorMarkers {
		if strings.Contains(s, marker) {
			return ""
		}
	}

	name := strings.ToLower(metricName)
	switch {
	case strings.Contains(name, "website health score"):
		if pct, ok := pctFromScore(s); ok && pct >= 90 {
			return "You nailed it"
		}
		return "Improve HTTPS/mobile/speed"

	case strings.Contains(name, "gbp completeness"):
		if pct, ok := pctFromScore(s); ok && pct >= 90 {
			return "You nailed it"
		}
		return "Add hours, photos, website, phone on GBP"

	case strings.Contains(name, "search visibility"):
		if strings.Contains(s, "yes") {
			return "You nailed it"
		}
		return "Improve local SEO & citations"

	case strings.Contains(name, "social media presence"):
		if strings.Contains(s, "facebook, instagram") {
			return "You nailed it"
		}
		if strings.Contains(s, "facebook") || strings.Contains(s, "instagram") {
			return "Add the other platform & post weekly"
		}
		return "Add FB/IG links; post 2-3x/week"

	case strings.Contains(name, "google reviews (avg)"):
		rating, err := strconv.ParseFloat(strings.TrimSuffix(s, "/5"), 64)
		if err != nil {
			return ""
		}
		switch {
		case rating >= 4.6:
			return "You nailed it"
		case rating >= 4.0:
			return "Ask happy patients for reviews to reach 4.6+"
		default:
			return "Address negatives & request fresh 5-star reviews"
		}

	case strings.Contains(name, "total google reviews"):
		n, err := strconv.Atoi(s)
		if err != nil {
			return ""
		}
		switch {
		case n >= 300:
			return "You nailed it"
		case n >= 100:
			return "Run a monthly review drive to hit 300"
		default:
			return "Launch QR/SMS review ask at checkout"
		}

	case strings.Contains(name, "appointment booking"):
		if strings.Contains(s, "online booking") {
			return "You nailed it"
		}
		return "Add an online booking link/button"

	case strings.Contains(name, "office hours"):
		return "Offer evenings/weekends to boost conversions"

	case strings.Contains(name, "insurance acceptance"):
		if strings.Contains(s, "unclear") {
			return "Publish accepted plans on site & GBP"
		}
		return "You nailed it"

	case strings.Contains(name, "sentiment highlights"):
		if strings.Contains(s, "mostly positive") {
			return "You nailed it"
		}
		if strings.Contains(s, "mixed") {
			return "Fix top negatives & reply to reviews"
		}
		return "Reply to negative themes with solutions"

	case strings.Contains(name, "top positive themes"):
		if strings.Contains(s, "none detected") {
			return ""
		}
		return "Amplify these themes on website & ads"

	case strings.Contains(name, "top negative themes"):
		switch {
		case strings.Contains(s, "none detected"):
			return "You nailed it"
		case strings.Contains(s, "long wait"):
			return "Stagger scheduling & add SMS reminders"
		case strings.Contains(s, "billing"):
			return "Clarify estimates & billing SOP"
		case strings.Contains(s, "front desk"):
			return "Train front desk on empathy scripts"
		default:
			return "Tackle top 1-2 negative themes this month"
		}

	case strings.Contains(name, "photos"):
		if !strings.Contains(s, "none") && !strings.Contains(s, "0") {
			return "You nailed it"
		}
		return "Upload 10-20 clinic & team photos"

	case strings.Contains(name, "advertising scripts"):
		if strings.Contains(s, "none") {
			return "Add GA4/Ads pixel for conversion tracking"
		}
		return "You nailed it"
	}

	return ""
}

// pctFromScore parses the leading integer of an "N/100" style value.
func pctFromScore(s string) (int, bool) {
	head, _, ok := strings.Cut(s, "/")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, false
	}
	return n, true
}
