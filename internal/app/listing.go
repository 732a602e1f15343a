package app

import (
	"fmt"
	"strconv"
	"strings"

	"smileaudit/internal/domain"
)

// Listing signal extractors: pure functions over the resolved listing
// record. A nil record means the listing could not be resolved and every
// extractor returns the sentinel.

var dentalCategories = map[string]bool{"dentist": true, "dental_clinic": true}

// Completeness estimates how fully the business listing is filled out, as an
// additive checklist capped at 100, with the same pass/fail checklist format
// as the website health score.
func Completeness(rec *domain.ListingRecord) (domain.Value, domain.Value) {
	if rec == nil {
		return domain.Absent(), domain.Absent()
	}
	score := 0
	var checks []string

	if len(rec.WeekdayHours) > 0 {
		score += 20
		checks = append(checks, "Hours ✅")
	} else {
		checks = append(checks, "Hours ❌")
	}
	if rec.PhotoCount > 0 {
		score += 20
		checks = append(checks, fmt.Sprintf("Photos ✅ (%d)", rec.PhotoCount))
	} else {
		checks = append(checks, "Photos ❌ (0)")
	}
	if rec.Website != "" {
		score += 15
		checks = append(checks, "Website ✅")
	} else {
		checks = append(checks, "Website ❌")
	}
	if rec.Phone != "" {
		score += 15
		checks = append(checks, "Phone ✅")
	} else {
		checks = append(checks, "Phone ❌")
	}
	if rec.Rating != nil && rec.RatingCount != nil && *rec.RatingCount > 0 {
		score += 10
		checks = append(checks, "Reviews ✅")
	} else {
		checks = append(checks, "Reviews ❌")
	}
	if hasDentalCategory(rec.Types) {
		score += 10
		checks = append(checks, "Category ✅")
	} else {
		checks = append(checks, "Category ❌")
	}
	if rec.FormattedAddress != "" {
		score += 10
		checks = append(checks, "Address ✅")
	} else {
		checks = append(checks, "Address ❌")
	}

	if score > 100 {
		score = 100
	}
	return domain.SomeText(fmt.Sprintf("%d/100", score)), domain.SomeText(strings.Join(checks, " | "))
}

func hasDentalCategory(types []string) bool {
	for _, t := range types {
		if dentalCategories[t] {
			return true
		}
	}
	return false
}

// Hours joins the weekday-text list for display.
func Hours(rec *domain.ListingRecord) domain.Value {
	if rec == nil || len(rec.WeekdayHours) == 0 {
		return domain.Absent()
	}
	return domain.SomeText(strings.Join(rec.WeekdayHours, "; "))
}

// PhotoCount reports how many photo references the listing carries.
func PhotoCount(rec *domain.ListingRecord) domain.Value {
	if rec == nil {
		return domain.Absent()
	}
	return domain.SomeInt(rec.PhotoCount)
}

// RatingAndCount formats the star rating and raw review count; each side is
// independently sentinel when missing.
func RatingAndCount(rec *domain.ListingRecord) (domain.Value, domain.Value) {
	if rec == nil {
		return domain.Absent(), domain.Absent()
	}
	rating := domain.Absent()
	if rec.Rating != nil {
		rating = domain.SomeText(strconv.FormatFloat(*rec.Rating, 'f', -1, 64) + "/5")
	}
	count := domain.Absent()
	if rec.RatingCount != nil {
		count = domain.SomeInt(*rec.RatingCount)
	}
	return rating, count
}

// Accessibility joins the listing's accessibility flags for display.
func Accessibility(rec *domain.ListingRecord) domain.Value {
	if rec == nil || len(rec.Accessibility) == 0 {
		return domain.Absent()
	}
	return domain.SomeText(strings.Join(rec.Accessibility, ", "))
}
