package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/umn-housing/listings-cli/internal/model"
)

// PriceInfo is the structured result of parsing a rent fragment.
// RentMin/RentMax are nil when no currency number could be extracted.
// IsPerBed/IsSharedBedroom are nil only when the price text itself was
// unparseable; once a number is found they are concretely true or false.
type PriceInfo struct {
	RentMin         *float64
	RentMax         *float64
	PriceType       model.PriceType
	IsPerBed        *bool
	IsSharedBedroom *bool
}

var (
	// Currency-formatted decimal, tolerant of thousands separators.
	currencyRe = regexp.MustCompile(`\$?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)

	// The rent fragment inside a unit row: "$1,200" or "$900 - $1,300".
	rentFragmentRe = regexp.MustCompile(`\$[\d,]+(?:\s*-\s*\$[\d,]+)?`)

	// "to" counts as a range separator only as a standalone word.
	toSeparatorRe = regexp.MustCompile(`(?i)\bto\b`)
)

// ParsePrice classifies a raw price fragment. contextText is the surrounding
// page text used only for per-bed and shared-bedroom keyword disambiguation;
// currency numbers are extracted from priceText alone.
func ParsePrice(priceText, contextText string, kw *Keywords) PriceInfo {
	info := PriceInfo{PriceType: model.PriceTypeUnknown}
	if priceText == "" {
		return info
	}

	combined := strings.ToLower(priceText + " " + contextText)

	for _, re := range kw.PerBed {
		if re.MatchString(combined) {
			info.IsPerBed = model.Bool(true)
			info.PriceType = model.PriceTypePerBed
			break
		}
	}
	for _, re := range kw.SharedBedroom {
		if re.MatchString(combined) {
			info.IsSharedBedroom = model.Bool(true)
			break
		}
	}

	var numbers []float64
	for _, m := range currencyRe.FindAllStringSubmatch(priceText, -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		numbers = append(numbers, n)
	}
	if len(numbers) == 0 {
		return info
	}

	lower := strings.ToLower(priceText)
	switch {
	case strings.Contains(lower, "from"):
		info.RentMin = model.Float(numbers[0])
		info.RentMax = model.Float(numbers[0])
		info.setType(model.PriceTypeFromPrice)
	case len(numbers) == 2 && hasRangeSeparator(priceText):
		lo, hi := numbers[0], numbers[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		info.RentMin = model.Float(lo)
		info.RentMax = model.Float(hi)
		info.setType(model.PriceTypeRange)
	case len(numbers) == 1:
		info.RentMin = model.Float(numbers[0])
		info.RentMax = model.Float(numbers[0])
		info.setType(model.PriceTypePerUnit)
	default:
		lo, hi := numbers[0], numbers[0]
		for _, n := range numbers[1:] {
			if n < lo {
				lo = n
			}
			if n > hi {
				hi = n
			}
		}
		info.RentMin = model.Float(lo)
		info.RentMax = model.Float(hi)
		info.setType(model.PriceTypeRange)
	}

	// A numeric price was found, so the keyword checks are now conclusive:
	// absence of a match means "checked, not per-bed", not "unknown".
	if info.IsPerBed == nil {
		info.IsPerBed = model.Bool(false)
	}
	if info.IsSharedBedroom == nil {
		info.IsSharedBedroom = model.Bool(false)
	}
	return info
}

// setType assigns a price type only if one has not been set already. A type
// assigned by the per-bed keyword scan is never overwritten by numeric cues.
func (p *PriceInfo) setType(t model.PriceType) {
	if p.PriceType == model.PriceTypeUnknown {
		p.PriceType = t
	}
}

func hasRangeSeparator(text string) bool {
	return strings.Contains(text, "-") ||
		strings.Contains(text, "–") || // en dash
		toSeparatorRe.MatchString(text)
}

// ExtractRentRaw finds the rent fragment inside a unit row's text. Rows with
// no dollar figure or "Call for Rent" placeholders yield "".
func ExtractRentRaw(rowText string) string {
	frag := rentFragmentRe.FindString(rowText)
	if frag == "" || strings.Contains(strings.ToLower(frag), "call") {
		return ""
	}
	return frag
}
