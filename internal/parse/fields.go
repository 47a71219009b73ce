package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bedsRe  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:bed(?:room)?s?|br)\b`)
	bathsRe = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:bath(?:room)?s?|ba)\b`)
	sqftRe  = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*(?:sq\.?\s*ft|sqft|sf)\b`)
)

// ParseBeds extracts a bedroom count. "Studio" yields 0.0, which is distinct
// from nil (unknown).
func ParseBeds(text string) *float64 {
	if text == "" {
		return nil
	}
	if strings.Contains(strings.ToLower(text), "studio") {
		zero := 0.0
		return &zero
	}
	m := bedsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseBaths extracts a bathroom count. Half-baths are preserved (e.g. 1.5).
func ParseBaths(text string) *float64 {
	if text == "" {
		return nil
	}
	m := bathsRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &n
}

// ParseSqft extracts a square footage, stripping thousands separators.
func ParseSqft(text string) *int {
	if text == "" {
		return nil
	}
	m := sqftRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &n
}
