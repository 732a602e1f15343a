package app

import (
	"math"

	"smileaudit/internal/domain"
)

// ScoreInputs are the normalized signals the aggregator consumes. Nil
// pointers and zero enums mean "no data": the signal simply contributes
// nothing to its bucket's average.
type ScoreInputs struct {
	HealthPct     *int
	Social        SocialTier
	Rating        *float64
	ReviewCount   *int
	Booking       BookingPath
	HoursPresent  bool
	InsuranceOK   bool
	AccessibleSet bool
}

// ComputeScore combines the signals into the three weighted buckets
// (Visibility 30, Reputation 40, Experience 30) and the 0-100 composite.
// Deterministic, no I/O; an empty contributing set for any bucket averages
// to 0 rather than erroring, so a sparse audit still scores.
func ComputeScore(in ScoreInputs) domain.Score {
	// Visibility: website health plus social footprint. Social always
	// contributes (0 when absent/none), matching the report's long-standing
	// behavior.
	var vis []float64
	if in.HealthPct != nil {
		vis = append(vis, float64(*in.HealthPct))
	}
	switch in.Social {
	case SocialBoth:
		vis = append(vis, 100)
	case SocialOne:
		vis = append(vis, 60)
	default:
		vis = append(vis, 0)
	}
	visScore := avg(vis) / 100 * 30

	// Reputation: star rating plus review volume capped at 500.
	var rep []float64
	if in.Rating != nil {
		rep = append(rep, *in.Rating/5.0*100)
	}
	if in.ReviewCount != nil {
		rep = append(rep, math.Min(1, float64(*in.ReviewCount)/500)*100)
	}
	repScore := avg(rep) / 100 * 40

	// Experience: booking path, published hours, clear insurance policy,
	// accessibility flags. Each indicator only joins the average when known.
	var exp []float64
	switch in.Booking {
	case BookingLinkForm, BookingEmbedded:
		exp = append(exp, 80)
	case BookingPhoneOnly:
		exp = append(exp, 40)
	}
	if in.HoursPresent {
		exp = append(exp, 70)
	}
	if in.InsuranceOK {
		exp = append(exp, 80)
	}
	if in.AccessibleSet {
		exp = append(exp, 70)
	}
	expScore := avg(exp) / 100 * 30

	v, r, e := round1(visScore), round1(repScore), round1(expScore)
	// Composite is the sum of the displayed buckets by construction, so the
	// breakdown always adds up to the headline number.
	return domain.Score{
		Composite:  round1(v + r + e),
		Visibility: v,
		Reputation: r,
		Experience: e,
	}
}

func avg(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
