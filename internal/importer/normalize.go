package importer

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/slug"
)

const excerptLength = 160

var (
	countRe = regexp.MustCompile(`^\d+`)
	areaRe  = regexp.MustCompile(`^\d+(?:[.,]\d+)?`)
)

type Options struct {
	FallbackCity      string
	KnownCities       []string
	MinPlausiblePrice int64
}

// Normalizer maps heterogeneous export rows onto properties. It holds no
// state between calls and is safe for concurrent use.
type Normalizer struct {
	opts Options
}

func NewNormalizer(opts Options) *Normalizer {
	if opts.MinPlausiblePrice <= 0 {
		opts.MinPlausiblePrice = 100000
	}
	return &Normalizer{opts: opts}
}

type Result struct {
	Records []models.ImportRecord
	// Report.Inserted counts the records, not rows written to storage.
	Report models.ImportReport
}

// Normalize converts rows in order. Rows without a slug are omitted, the
// first readable row of a slug wins and later ones count as duplicates, and
// rows whose fields cannot be read are reported and skipped without claiming
// their slug.
func (n *Normalizer) Normalize(rows []Row) Result {
	res := Result{
		Records: make([]models.ImportRecord, 0, len(rows)),
		Report:  models.ImportReport{Errors: []models.ImportError{}},
	}
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		rowNum := i + 1
		raw := row.record()

		s := normalizeSlug(raw.Slug)
		if s == "" {
			res.Report.Omitted++
			continue
		}

		if _, dup := seen[s]; dup {
			res.Report.Duplicates++
			continue
		}

		rec, err := n.normalizeRow(raw, s)
		if err != nil {
			res.Report.Errors = append(res.Report.Errors, models.ImportError{
				Item:  fmt.Sprintf("row %d (%s)", rowNum, s),
				Error: err.Error(),
			})
			continue
		}
		seen[s] = struct{}{}
		rec.Row = rowNum

		res.Records = append(res.Records, rec)
	}

	res.Report.Inserted = len(res.Records)

	return res
}

func (n *Normalizer) normalizeRow(raw rawRecord, s string) (models.ImportRecord, error) {
	title := CleanHTML(raw.Title)
	description := CleanHTML(raw.Content)

	bedrooms, err := parseCount(raw.Bedrooms)
	if err != nil {
		return models.ImportRecord{}, fmt.Errorf("bedrooms: %w", err)
	}

	bathrooms, err := parseCount(raw.Bathrooms)
	if err != nil {
		return models.ImportRecord{}, fmt.Errorf("bathrooms: %w", err)
	}

	area, err := parseArea(raw.Area)
	if err != nil {
		return models.ImportRecord{}, fmt.Errorf("area: %w", err)
	}

	images := splitImages(raw.Images)

	excerpt := CleanHTML(raw.Excerpt)
	if excerpt == "" {
		excerpt = Excerpt(description, excerptLength)
	}

	price := n.inferPrice(raw, description, title)
	city := n.inferCity(raw, description)
	barrio := n.inferBarrio(raw, description)

	prop := models.Property{
		Slug:         s,
		Title:        title,
		Description:  description,
		Excerpt:      excerpt,
		PropertyType: inferType(raw.Type, title),
		Operation:    inferOperation(raw.Category, title, description),
		City:         city.Value,
		Neighborhood: barrio.Value,
		Address:      strings.TrimSpace(raw.Address),
		Price:        price.Value,
		Bedrooms:     bedrooms,
		Bathrooms:    bathrooms,
		AreaM2:       area,
		Gallery:      images,
		Estado:       parseEstado(raw.Estado),
		Featured:     parseBool(raw.Featured),
		Amenities:    splitList(raw.Amenities),
		Tags:         splitList(raw.Tags),
	}
	if len(images) > 0 {
		prop.MainImage = images[0]
	}
	if prop.Title == "" {
		prop.Title = s
	}

	return models.ImportRecord{
		Property: prop,
		Price:    price,
		City:     city,
		Barrio:   barrio,
	}, nil
}

// normalizeSlug accepts percent-encoded or accented export slugs.
func normalizeSlug(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		raw = unescaped
	}
	if slug.Valid(raw) {
		return raw
	}
	return slug.Make(raw)
}

func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	m := countRe.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("not a number: %q", s)
	}

	return strconv.Atoi(m)
}

func parseArea(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	m := areaRe.FindString(s)
	if m == "" {
		return 0, fmt.Errorf("not a number: %q", s)
	}

	return strconv.ParseFloat(strings.ReplaceAll(m, ",", "."), 64)
}

// splitImages keeps every non-empty reference in order. Relative paths such
// as /wp-content/uploads/... are kept as they are.
func splitImages(s string) []string {
	var images []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			images = append(images, part)
		}
	}
	return images
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func inferType(column, title string) models.PropertyType {
	for _, text := range []string{column, title} {
		t := slug.Make(text)
		switch {
		case t == "":
			continue
		case containsWord(t, "apartamento", "apto", "apartaestudio"):
			return models.PropertyTypeApartment
		case containsWord(t, "lote", "terreno", "finca"):
			return models.PropertyTypeLot
		case containsWord(t, "local", "oficina", "bodega", "comercial"):
			return models.PropertyTypeCommercial
		case containsWord(t, "proyecto", "desarrollo"):
			return models.PropertyTypeDevelopment
		case containsWord(t, "casa"):
			return models.PropertyTypeHouse
		}
	}
	return models.PropertyTypeHouse
}

func inferOperation(category, title, description string) models.Operation {
	for _, text := range []string{category, title, description} {
		t := slug.Make(text)
		switch {
		case t == "":
			continue
		case containsWord(t, "arriendo", "arrienda", "alquiler", "renta"):
			return models.OperationRental
		case containsWord(t, "venta", "vende"):
			return models.OperationSale
		}
	}
	return models.OperationSale
}

func containsWord(slugText string, words ...string) bool {
	haystack := "-" + slugText + "-"
	for _, w := range words {
		if strings.Contains(haystack, "-"+w+"-") {
			return true
		}
	}
	return false
}

func parseEstado(s string) models.Availability {
	switch slug.Make(s) {
	case "reservado":
		return models.AvailabilityReserved
	case "vendido", "arrendado":
		return models.AvailabilitySold
	}
	return models.AvailabilityAvailable
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "si", "sí", "on":
		return true
	}
	return false
}
