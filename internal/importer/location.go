package importer

import (
	"regexp"
	"strings"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/slug"
)

var (
	digitsOnlyRe = regexp.MustCompile(`^\d+$`)
	// "Barrio Santa Bárbara", "barrio el Chicó"; continuation words must be capitalized.
	barrioRe = regexp.MustCompile(`[Bb]arrio\s+([\p{L}\d]+(?:\s[\p{Lu}\d][\p{L}\d]*){0,3})`)
)

// usableLocation is false for empty cells and the numeric term ids some
// exports leave in the location columns.
func usableLocation(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !digitsOnlyRe.MatchString(s)
}

func (n *Normalizer) inferBarrio(raw rawRecord, description string) models.Inferred[string] {
	if usableLocation(raw.Neighborhood) {
		return models.Explicit(CleanHTML(raw.Neighborhood))
	}

	for _, text := range []string{description, raw.Address} {
		if m := barrioRe.FindStringSubmatch(text); m != nil {
			return models.Guessed(strings.TrimSpace(m[1]))
		}
	}

	return models.Defaulted(n.opts.FallbackCity)
}

func (n *Normalizer) inferCity(raw rawRecord, description string) models.Inferred[string] {
	if usableLocation(raw.City) {
		return models.Explicit(CleanHTML(raw.City))
	}

	for _, text := range []string{raw.Address, description} {
		if city, ok := n.knownCityIn(text); ok {
			return models.Guessed(city)
		}
	}

	return models.Defaulted(n.opts.FallbackCity)
}

// knownCityIn matches whole words ignoring case and accents.
func (n *Normalizer) knownCityIn(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	haystack := "-" + slug.Make(text) + "-"
	for _, city := range n.opts.KnownCities {
		needle := slug.Make(city)
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, "-"+needle+"-") {
			return city, true
		}
	}

	return "", false
}
