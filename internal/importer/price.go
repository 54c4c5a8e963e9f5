package importer

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"inmobiliaria/internal/domain/models"
)

var (
	// "$ 310.000.000", "$1,500,000", "$450000"
	currencyRe = regexp.MustCompile(`\$\s*(\d{1,3}(?:[.,]\d{3})+|\d+)`)
	// "350 millones", "1,5 millones", "1.200 millones", "un millón"
	millionsRe = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?|\bun)\s*mill(?:ones|[oó]n)(?:\P{L}|$)`)
	// a trailing ",00" or ".5" decimal part on a column value
	decimalTailRe = regexp.MustCompile(`[.,]\d{1,2}$`)
	thousandsRe   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
)

// inferPrice prefers a plausible column value, then amounts found in the
// description, then the title.
func (n *Normalizer) inferPrice(raw rawRecord, description, title string) models.Inferred[int64] {
	if v, ok := parseColumnPrice(raw.Price); ok && n.plausiblePrice(v, raw.ID) {
		return models.Explicit(v)
	}

	for _, text := range []string{description, title} {
		if v, ok := n.priceFromText(text); ok {
			return models.Guessed(v)
		}
	}

	return models.Defaulted(int64(0))
}

// plausiblePrice rejects small values and values that are the row id.
func (n *Normalizer) plausiblePrice(v int64, rowID string) bool {
	if v < n.opts.MinPlausiblePrice {
		return false
	}
	return strconv.FormatInt(v, 10) != strings.TrimSpace(rowID)
}

func parseColumnPrice(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}

	if !thousandsRe.MatchString(s) {
		s = decimalTailRe.ReplaceAllString(s, "")
	}
	s = strings.NewReplacer(".", "", ",", "").Replace(s)

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}

	return v, true
}

type priceCandidate struct {
	pos   int
	value int64
}

// priceFromText returns the earliest plausible amount in text.
func (n *Normalizer) priceFromText(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}

	var candidates []priceCandidate

	for _, m := range currencyRe.FindAllStringSubmatchIndex(text, -1) {
		digits := strings.NewReplacer(".", "", ",", "").Replace(text[m[2]:m[3]])
		if v, err := strconv.ParseInt(digits, 10, 64); err == nil {
			candidates = append(candidates, priceCandidate{pos: m[0], value: v})
		}
	}

	for _, m := range millionsRe.FindAllStringSubmatchIndex(text, -1) {
		amount, ok := parseMillionsAmount(text[m[2]:m[3]])
		if !ok {
			continue
		}
		candidates = append(candidates, priceCandidate{pos: m[0], value: int64(math.Round(amount * 1_000_000))})
	}

	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].pos < candidates[j].pos })

	for _, c := range candidates {
		if c.value >= n.opts.MinPlausiblePrice {
			return c.value, true
		}
	}

	return 0, false
}

// parseMillionsAmount reads "un", "350", "1,5", "1.5" or "1.200". A dot followed
// by exactly three digits is a thousands separator.
func parseMillionsAmount(s string) (float64, bool) {
	if strings.EqualFold(s, "un") {
		return 1, true
	}
	if thousandsRe.MatchString(s) {
		s = strings.ReplaceAll(s, ".", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
