package app

import (
	"fmt"
	"sort"
	"strings"

	"smileaudit/internal/domain"
)

// Review text analyzer: keyword-frequency theme detection over the listing's
// review excerpts. Counting is plain substring counting, not word-boundary
// aware ("wait" matches inside other words); that matches the scoring the
// report has always shown, so tightening it would silently shift counts.

type theme struct {
	name     string
	keywords []string
}

var positiveThemes = []theme{
	{"friendly staff", []string{"friendly", "kind", "caring", "nice", "welcoming", "courteous"}},
	{"cleanliness", []string{"clean", "hygienic", "spotless"}},
	{"pain-free experience", []string{"painless", "no pain", "gentle", "pain free", "comfortable"}},
	{"professionalism", []string{"professional", "expert", "knowledgeable"}},
	{"communication", []string{"explained", "explain", "transparent", "informative"}},
}

var negativeThemes = []theme{
	{"long wait", []string{"wait", "waiting", "late", "delay", "overbooked"}},
	{"billing issues", []string{"billing", "charges", "overcharged", "insurance problem", "invoice"}},
	{"front desk experience", []string{"front desk", "reception", "rude", "unhelpful"}},
	{"pain/discomfort", []string{"painful", "hurt", "rough", "uncomfortable"}},
	{"upselling", []string{"upsell", "salesy", "sold me", "pushy"}},
}

// ReviewAnalysis is the analyzer's output. All three Values are sentinel
// when there are no reviews to analyze.
type ReviewAnalysis struct {
	Sentiment   domain.Value
	TopPositive domain.Value
	TopNegative domain.Value
	Positive    []domain.ThemeTally
	Negative    []domain.ThemeTally
}

// AnalyzeReviews concatenates all review texts and tallies the fixed
// positive and negative theme tables.
func AnalyzeReviews(reviews []domain.Review) ReviewAnalysis {
	if len(reviews) == 0 {
		return ReviewAnalysis{
			Sentiment:   domain.Absent(),
			TopPositive: domain.Absent(),
			TopNegative: domain.Absent(),
		}
	}

	var b strings.Builder
	for i, rv := range reviews {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(rv.Text)
	}
	text := strings.ToLower(b.String())

	pos := tallyThemes(text, positiveThemes)
	neg := tallyThemes(text, negativeThemes)

	posTotal, negTotal := totalHits(pos), totalHits(neg)
	var sentiment string
	switch {
	case posTotal == 0 && negTotal == 0:
		sentiment = "Mixed/neutral (few obvious themes)"
	case posTotal >= negTotal:
		sentiment = fmt.Sprintf("Mostly positive mentions (%d vs %d)", posTotal, negTotal)
	default:
		sentiment = fmt.Sprintf("Mixed with notable concerns (%d negatives vs %d positives)", negTotal, posTotal)
	}

	return ReviewAnalysis{
		Sentiment:   domain.SomeText(sentiment),
		TopPositive: domain.SomeText(topThemes(pos)),
		TopNegative: domain.SomeText(topThemes(neg)),
		Positive:    pos,
		Negative:    neg,
	}
}

// tallyThemes counts keyword occurrences per theme, keeps themes with at
// least one hit, and sorts descending by count (table order breaks ties).
func tallyThemes(text string, themes []theme) []domain.ThemeTally {
	var out []domain.ThemeTally
	for _, th := range themes {
		c := 0
		for _, kw := range th.keywords {
			c += strings.Count(text, kw)
		}
		if c > 0 {
			out = append(out, domain.ThemeTally{Theme: th.name, Count: c})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func totalHits(tallies []domain.ThemeTally) int {
	n := 0
	for _, t := range tallies {
		n += t.Count
	}
	return n
}

// topThemes renders the top 3 tallies as "name (count); name (count)".
func topThemes(tallies []domain.ThemeTally) string {
	if len(tallies) == 0 {
		return "None detected"
	}
	if len(tallies) > 3 {
		tallies = tallies[:3]
	}
	parts := make([]string, 0, len(tallies))
	for _, t := range tallies {
		parts = append(parts, fmt.Sprintf("%s (%d)", t.Theme, t.Count))
	}
	return strings.Join(parts, "; ")
}
