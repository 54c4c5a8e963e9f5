package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/qri-io/jsonschema"
)

// Schema names a recognized export layout.
type Schema string

const (
	SchemaWordPress Schema = "wordpress"
	SchemaNative    Schema = "native"
)

var (
	ErrUnknownSchema = errors.New("unrecognized import columns")
	ErrEmptyInput    = errors.New("import input has no rows")
	ErrInvalidJSON   = errors.New("invalid json import payload")
)

// Columns of the WordPress real-estate plugin export.
const (
	wpID           = "ID"
	wpTitle        = "Title"
	wpContent      = "Content"
	wpExcerpt      = "Excerpt"
	wpSlug         = "Slug"
	wpPrice        = "es_property_price"
	wpCity         = "es_property_city"
	wpNeighborhood = "es_property_neighborhood"
	wpAddress      = "es_property_address"
	wpBedrooms     = "es_property_bedrooms"
	wpBathrooms    = "es_property_bathrooms"
	wpArea         = "es_property_area"
	wpType         = "es_property_type"
	wpCategory     = "es_property_category"
	wpStatus       = "es_property_status"
	wpFeatured     = "es_property_featured"
	wpAmenities    = "es_property_amenities"
	wpTags         = "Tags"
	wpImages       = "Image URL"
)

var schemaColumns = map[Schema][]string{
	SchemaWordPress: {wpSlug, wpTitle, wpContent},
	SchemaNative:    {"slug", "title"},
}

// Row is one source record of a recognized schema.
type Row interface {
	Schema() Schema
	record() rawRecord
}

type rawRecord struct {
	ID           string
	Slug         string
	Title        string
	Content      string
	Excerpt      string
	Price        string
	City         string
	Neighborhood string
	Address      string
	Bedrooms     string
	Bathrooms    string
	Area         string
	Type         string
	Category     string
	Estado       string
	Featured     string
	Amenities    string
	Tags         string
	Images       string
}

type WordPressRow map[string]string

func (WordPressRow) Schema() Schema { return SchemaWordPress }

func (r WordPressRow) record() rawRecord {
	return rawRecord{
		ID:           r[wpID],
		Slug:         r[wpSlug],
		Title:        r[wpTitle],
		Content:      r[wpContent],
		Excerpt:      r[wpExcerpt],
		Price:        r[wpPrice],
		City:         r[wpCity],
		Neighborhood: r[wpNeighborhood],
		Address:      r[wpAddress],
		Bedrooms:     r[wpBedrooms],
		Bathrooms:    r[wpBathrooms],
		Area:         r[wpArea],
		Type:         r[wpType],
		Category:     r[wpCategory],
		Estado:       r[wpStatus],
		Featured:     r[wpFeatured],
		Amenities:    r[wpAmenities],
		Tags:         r[wpTags],
		Images:       r[wpImages],
	}
}

// NativeRow uses this service's own lowercase column names.
type NativeRow map[string]string

func (NativeRow) Schema() Schema { return SchemaNative }

func (r NativeRow) record() rawRecord {
	return rawRecord{
		ID:           r["id"],
		Slug:         r["slug"],
		Title:        r["title"],
		Content:      r["description"],
		Excerpt:      r["excerpt"],
		Price:        r["price"],
		City:         r["city"],
		Neighborhood: r["barrio"],
		Address:      r["address"],
		Bedrooms:     r["bedrooms"],
		Bathrooms:    r["bathrooms"],
		Area:         r["area_m2"],
		Type:         r["type"],
		Category:     r["operation"],
		Estado:       r["estado"],
		Featured:     r["featured"],
		Amenities:    r["amenities"],
		Tags:         r["tags"],
		Images:       r["images"],
	}
}

// DetectSchema checks the header set against the known layouts.
func DetectSchema(header []string) (Schema, error) {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	for _, schema := range []Schema{SchemaWordPress, SchemaNative} {
		ok := true
		for _, col := range schemaColumns[schema] {
			if !present[col] {
				ok = false
				break
			}
		}
		if ok {
			return schema, nil
		}
	}

	return "", fmt.Errorf("%w: need %v or %v", ErrUnknownSchema, schemaColumns[SchemaWordPress], schemaColumns[SchemaNative])
}

// FromRecords builds rows from a header line followed by data lines.
func FromRecords(records [][]string) ([]Row, error) {
	if len(records) < 2 {
		return nil, ErrEmptyInput
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	schema, err := DetectSchema(header)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				values[col] = rec[i]
			}
		}
		rows = append(rows, newRow(schema, values))
	}

	return rows, nil
}

// DecodeCSV reads a CSV export with a header row.
func DecodeCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return FromRecords(records)
}

const rowsJSONSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"additionalProperties": {
			"type": ["string", "number", "boolean", "null"]
		}
	}
}`

// DecodeJSON reads an array of flat objects. Nested values fail validation.
func DecodeJSON(ctx context.Context, r io.Reader) ([]Row, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	rs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(rowsJSONSchema), rs); err != nil {
		return nil, fmt.Errorf("compile row schema: %w", err)
	}

	keyErrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(keyErrs) > 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidJSON, keyErrs[0].PropertyPath, keyErrs[0].Message)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var objects []map[string]any
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if len(objects) == 0 {
		return nil, ErrEmptyInput
	}

	keys := make(map[string]bool)
	for _, obj := range objects {
		for k := range obj {
			keys[k] = true
		}
	}
	header := make([]string, 0, len(keys))
	for k := range keys {
		header = append(header, k)
	}
	sort.Strings(header)

	schema, err := DetectSchema(header)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(objects))
	for _, obj := range objects {
		values := make(map[string]string, len(obj))
		for k, v := range obj {
			values[k] = stringify(v)
		}
		rows = append(rows, newRow(schema, values))
	}

	return rows, nil
}

func newRow(schema Schema, values map[string]string) Row {
	if schema == SchemaWordPress {
		return WordPressRow(values)
	}
	return NativeRow(values)
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}
