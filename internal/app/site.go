package app

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"smileaudit/internal/domain"
)

// Site signal extractors. Every function here is pure over the fetched page
// (plus URL/latency where relevant) and degrades to the sentinel on an
// absent page.

var sincePattern = regexp.MustCompile(`(?i)(established|since|serving since|founded)\D*((19|20)\d{2})`)
var yearPattern = regexp.MustCompile(`(19|20)\d{2}`)

// OperatingSince looks for an explicit "established/since/founded <year>"
// phrase, then falls back to the earliest 4-digit year anywhere on the page.
// The fallback is a knowingly fragile proxy (copyright years match too).
func OperatingSince(p domain.Page) domain.Value {
	text := pageText(p)
	if text == "" {
		return domain.Absent()
	}
	if m := sincePattern.FindStringSubmatch(text); m != nil {
		return domain.SomeText(m[2])
	}
	years := yearPattern.FindAllString(text, -1)
	if len(years) == 0 {
		return domain.Absent()
	}
	min := years[0]
	for _, y := range years[1:] {
		if y < min {
			min = y
		}
	}
	return domain.SomeText(min)
}

var specialtyVocabulary = []string{
	"general dentistry", "orthodontics", "braces", "implants", "implant", "cosmetic",
	"veneers", "whitening", "endodontics", "root canal", "periodontics", "gum",
	"pediatric", "children", "oral surgery", "tmj", "sleep apnea", "invisalign",
	"prosthodontics", "crowns", "bridges", "dental implants",
}

// Specialties matches the page text against the fixed dental-specialty
// vocabulary and returns the sorted, deduplicated, comma-joined hits.
func Specialties(p domain.Page) domain.Value {
	text := strings.ToLower(pageText(p))
	if text == "" {
		return domain.Absent()
	}
	seen := map[string]bool{}
	var found []string
	for _, k := range specialtyVocabulary {
		if !seen[k] && strings.Contains(text, k) {
			seen[k] = true
			found = append(found, k)
		}
	}
	if len(found) == 0 {
		return domain.Absent()
	}
	sort.Strings(found)
	return domain.SomeText(strings.Join(found, ", "))
}

// WebsiteHealth scores three independent checks (HTTPS scheme, a mobile
// viewport tag, and load-speed tiers) to at most 100. It returns the
// "N/100" score, the human-readable checklist, and the numeric percentage
// for the aggregator (nil when there is no URL to check).
func WebsiteHealth(rawURL string, p domain.Page) (domain.Value, domain.Value, *int) {
	if strings.TrimSpace(rawURL) == "" {
		return domain.Absent(), domain.SomeText("No URL"), nil
	}
	score := 0
	var checks []string

	if strings.HasPrefix(strings.ToLower(rawURL), "https") {
		score += 34
		checks = append(checks, "HTTPS ✅")
	} else {
		checks = append(checks, "HTTPS ❌")
	}

	if p.OK && p.Doc.Find(`meta[name="viewport"]`).Length() > 0 {
		score += 33
		checks = append(checks, "Mobile-friendly ✅")
	} else {
		checks = append(checks, "Mobile-friendly ❌")
	}

	if p.OK {
		secs := p.Latency.Seconds()
		switch {
		case secs < 2:
			score += 33
			checks = append(checks, fmt.Sprintf("Load speed ✅ (%.2fs)", secs))
		case secs < 5:
			score += 16
			checks = append(checks, fmt.Sprintf("Load speed ⚠️ (%.2fs)", secs))
		default:
			checks = append(checks, fmt.Sprintf("Load speed ❌ (%.2fs)", secs))
		}
	} else {
		checks = append(checks, "Load speed ❓")
	}

	if score > 100 {
		score = 100
	}
	pct := score
	return domain.SomeText(fmt.Sprintf("%d/100", score)), domain.SomeText(strings.Join(checks, " | ")), &pct
}

// SocialTier classifies the clinic's social-link footprint.
type SocialTier int

const (
	SocialUnknown SocialTier = iota
	SocialNone
	SocialOne
	SocialBoth
)

// SocialPresence scans anchor hrefs for Facebook/Instagram links.
func SocialPresence(p domain.Page) (domain.Value, SocialTier) {
	if !p.OK {
		return domain.Absent(), SocialUnknown
	}
	var fb, ig bool
	p.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.Contains(href, "facebook.com") {
			fb = true
		}
		if strings.Contains(href, "instagram.com") {
			ig = true
		}
	})
	switch {
	case fb && ig:
		return domain.SomeText("Facebook, Instagram"), SocialBoth
	case fb:
		return domain.SomeText("Facebook"), SocialOne
	case ig:
		return domain.SomeText("Instagram"), SocialOne
	default:
		return domain.SomeText("None"), SocialNone
	}
}

// BookingPath classifies how patients can book an appointment.
type BookingPath int

const (
	BookingUnknown BookingPath = iota
	BookingPhoneOnly
	BookingLinkForm
	BookingEmbedded
)

func (b BookingPath) Label() string {
	switch b {
	case BookingPhoneOnly:
		return "Phone-only or unclear"
	case BookingLinkForm:
		return "Online booking (link/form)"
	case BookingEmbedded:
		return "Online booking (embedded)"
	default:
		return ""
	}
}

var bookingWords = []string{"book", "appointment", "schedule", "reserve"}
var bookingWidgets = []string{"calendly", "zocdoc", "square appointments"}

// Booking detects online-booking intent in the page text and whether a known
// third-party widget is embedded.
func Booking(p domain.Page) (domain.Value, BookingPath) {
	text := strings.ToLower(pageText(p))
	if text == "" {
		return domain.Absent(), BookingUnknown
	}
	if containsAny(text, bookingWords) {
		if containsAny(text, bookingWidgets) {
			return domain.SomeText(BookingEmbedded.Label()), BookingEmbedded
		}
		return domain.SomeText(BookingLinkForm.Label()), BookingLinkForm
	}
	return domain.SomeText(BookingPhoneOnly.Label()), BookingPhoneOnly
}

var insuranceTriggers = []string{"insurance", "we accept", "ppo", "delta dental"}

// Insurance reports whether the site addresses insurance and, when it does,
// tries to isolate the first sentence mentioning it. The boolean is true
// when acceptance is stated clearly enough to count toward the experience
// bucket.
func Insurance(p domain.Page) (domain.Value, bool) {
	text := strings.ToLower(pageText(p))
	if text == "" {
		return domain.Absent(), false
	}
	if containsAny(text, insuranceTriggers) {
		for _, frag := range strings.Split(text, ".") {
			if strings.Contains(frag, "insurance") {
				if t := strings.TrimSpace(frag); t != "" {
					return domain.SomeText(t), true
				}
			}
		}
		return domain.SomeText("Mentioned on site"), true
	}
	return domain.SomeText("Unclear"), false
}

// MediaCount counts images and video/source elements on the page.
func MediaCount(p domain.Page) domain.Value {
	if !p.OK {
		return domain.Absent()
	}
	imgs := p.Doc.Find("img").Length()
	vids := p.Doc.Find("video, source").Length()
	return domain.SomeText(fmt.Sprintf("%d photos, %d videos", imgs, vids))
}

// AdSignals scans the raw markup for known analytics/pixel markers.
func AdSignals(p domain.Page) domain.Value {
	if !p.OK {
		return domain.Absent()
	}
	html, err := p.Doc.Html()
	if err != nil {
		return domain.Absent()
	}
	var signals []string
	if strings.Contains(html, "gtag(") || strings.Contains(html, "gtag.js") ||
		strings.Contains(html, "www.googletagmanager.com") {
		signals = append(signals, "Google tag")
	}
	if strings.Contains(html, "fbq(") {
		signals = append(signals, "Facebook Pixel")
	}
	if len(signals) == 0 {
		return domain.SomeText("None detected")
	}
	return domain.SomeText(strings.Join(signals, ", "))
}

// pageText flattens the document to whitespace-normalized text; empty for an
// absent page.
func pageText(p domain.Page) string {
	if !p.OK {
		return ""
	}
	return strings.Join(strings.Fields(p.Doc.Text()), " ")
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
