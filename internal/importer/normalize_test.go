package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inmobiliaria/internal/domain/models"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(Options{
		FallbackCity:      "Bogotá",
		KnownCities:       []string{"Bogotá", "Chía", "Cajicá", "La Calera"},
		MinPlausiblePrice: 100000,
	})
}

func TestNormalize_DuplicatesAndOmitted(t *testing.T) {
	rows := []Row{
		NativeRow{"slug": "casa-1", "title": "Primera", "price": "200000000"},
		NativeRow{"slug": "", "title": "Sin slug"},
		NativeRow{"slug": "casa-1", "title": "Segunda", "price": "999000000"},
		NativeRow{"slug": "casa-2", "title": "Otra"},
		NativeRow{"slug": "  ", "title": "Blanco"},
	}

	res := newTestNormalizer().Normalize(rows)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Primera", res.Records[0].Property.Title)
	assert.Equal(t, int64(200000000), res.Records[0].Property.Price)
	assert.Equal(t, 1, res.Records[0].Row)
	assert.Equal(t, 4, res.Records[1].Row)

	assert.Equal(t, 2, res.Report.Inserted)
	assert.Equal(t, 2, res.Report.Omitted)
	assert.Equal(t, 1, res.Report.Duplicates)
	assert.Empty(t, res.Report.Errors)
}

func TestNormalize_RowErrors(t *testing.T) {
	rows := []Row{
		NativeRow{"slug": "mala", "title": "X", "bedrooms": "tres"},
		NativeRow{"slug": "area-mala", "title": "Y", "area_m2": "grande"},
		NativeRow{"slug": "buena", "title": "Z", "bedrooms": "3 habitaciones", "area_m2": "85,5 m2"},
	}

	res := newTestNormalizer().Normalize(rows)

	require.Len(t, res.Records, 1)
	assert.Equal(t, 3, res.Records[0].Property.Bedrooms)
	assert.Equal(t, 85.5, res.Records[0].Property.AreaM2)

	require.Len(t, res.Report.Errors, 2)
	assert.Equal(t, "row 1 (mala)", res.Report.Errors[0].Item)
	assert.Contains(t, res.Report.Errors[0].Error, "bedrooms")
	assert.Equal(t, "row 2 (area-mala)", res.Report.Errors[1].Item)
	assert.Contains(t, res.Report.Errors[1].Error, "area")
}

func TestNormalize_KeepsRelativeImageReferences(t *testing.T) {
	res := newTestNormalizer().Normalize([]Row{
		NativeRow{"slug": "casa-rel", "title": "Casa", "images": " /wp-content/uploads/a.jpg | |https://cdn.example.com/b.jpg|"},
	})

	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Report.Errors)

	p := res.Records[0].Property
	assert.Equal(t, "/wp-content/uploads/a.jpg", p.MainImage)
	assert.Equal(t, []string{"/wp-content/uploads/a.jpg", "https://cdn.example.com/b.jpg"}, p.Gallery)
}

func TestNormalize_FailedRowDoesNotClaimSlug(t *testing.T) {
	res := newTestNormalizer().Normalize([]Row{
		NativeRow{"slug": "casa-1", "title": "Rota", "bedrooms": "tres"},
		NativeRow{"slug": "casa-1", "title": "Buena", "bedrooms": "3"},
		NativeRow{"slug": "casa-1", "title": "Tardía", "bedrooms": "4"},
	})

	require.Len(t, res.Records, 1)
	assert.Equal(t, "Buena", res.Records[0].Property.Title)
	assert.Equal(t, 2, res.Records[0].Row)
	require.Len(t, res.Report.Errors, 1)
	assert.Equal(t, "row 1 (casa-1)", res.Report.Errors[0].Item)
	assert.Equal(t, 1, res.Report.Duplicates)
}

func TestNormalize_WordPressRow(t *testing.T) {
	rows := []Row{WordPressRow{
		"ID":                       "1234",
		"Title":                    "Casa campestre en arriendo",
		"Content":                  "<p>Vende en $310.000.000</p><p>Ubicada en el Barrio Santa Bárbara, cerca al parque.</p>",
		"Slug":                     "casa-campestre",
		"es_property_price":        "1234",
		"es_property_city":         "",
		"es_property_neighborhood": "57",
		"es_property_address":      "Km 3 vía Chía",
		"es_property_bedrooms":     "4",
		"es_property_bathrooms":    "3",
		"es_property_area":         "320",
		"es_property_type":         "Casa",
		"es_property_category":     "Arriendo",
		"Tags":                     "Campestre|Piscina",
		"Image URL":                "https://cdn.example.com/1.jpg|https://cdn.example.com/2.jpg",
	}}

	res := newTestNormalizer().Normalize(rows)
	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	p := rec.Property

	assert.Equal(t, models.Inferred[int64]{Value: 310000000, Confidence: models.ConfidenceInferred}, rec.Price)
	assert.Equal(t, int64(310000000), p.Price)

	assert.Equal(t, models.Guessed("Santa Bárbara"), rec.Barrio)
	assert.Equal(t, models.Guessed("Chía"), rec.City)
	assert.Equal(t, "Santa Bárbara", p.Neighborhood)
	assert.Equal(t, "Chía", p.City)

	assert.Equal(t, models.PropertyTypeHouse, p.PropertyType)
	assert.Equal(t, models.OperationRental, p.Operation)
	assert.Equal(t, "https://cdn.example.com/1.jpg", p.MainImage)
	assert.Len(t, p.Gallery, 2)
	assert.Equal(t, []string{"Campestre", "Piscina"}, p.Tags)
	assert.Equal(t, models.AvailabilityAvailable, p.Estado)
	assert.NotContains(t, p.Description, "<p>")
	assert.Contains(t, p.Description, "\n\n")
	assert.NotEmpty(t, p.Excerpt)
}

func TestNormalize_SlugCleanup(t *testing.T) {
	res := newTestNormalizer().Normalize([]Row{
		NativeRow{"slug": "casa-en-ch%C3%ADa", "title": "A"},
		NativeRow{"slug": "Casa en Chía", "title": "B"},
	})

	require.Len(t, res.Records, 1)
	assert.Equal(t, "casa-en-chia", res.Records[0].Property.Slug)
	assert.Equal(t, 1, res.Report.Duplicates)
}

func TestInferPrice(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name  string
		raw   rawRecord
		desc  string
		title string
		want  models.Inferred[int64]
	}{
		{
			name: "plausible column",
			raw:  rawRecord{ID: "7", Price: "450.000.000"},
			want: models.Explicit(int64(450000000)),
		},
		{
			name: "column with decimals",
			raw:  rawRecord{ID: "7", Price: "$ 450000000.00"},
			want: models.Explicit(int64(450000000)),
		},
		{
			name: "column equal to row id",
			raw:  rawRecord{ID: "250000", Price: "250000"},
			desc: "Precio $ 380.000.000 negociable",
			want: models.Guessed(int64(380000000)),
		},
		{
			name: "decimal millions",
			raw:  rawRecord{ID: "1", Price: "0"},
			desc: "Arriendo por 1,5 millones al mes",
			want: models.Guessed(int64(1500000)),
		},
		{
			name: "thousands of millions",
			raw:  rawRecord{ID: "1"},
			desc: "Valor: 1.200 millones",
			want: models.Guessed(int64(1200000000)),
		},
		{
			name: "earliest plausible amount wins",
			raw:  rawRecord{ID: "1"},
			desc: "Precio 450 millones. Administración $ 350.000",
			want: models.Guessed(int64(450000000)),
		},
		{
			name:  "title fallback",
			raw:   rawRecord{ID: "1"},
			desc:  "Sin precio",
			title: "Casa un millón",
			want:  models.Guessed(int64(1000000)),
		},
		{
			name: "small amounts are ignored",
			raw:  rawRecord{ID: "1", Price: "5"},
			desc: "Parqueadero $ 50.000",
			want: models.Defaulted(int64(0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.inferPrice(tt.raw, tt.desc, tt.title))
		})
	}
}

func TestInferLocation(t *testing.T) {
	n := newTestNormalizer()

	t.Run("explicit columns", func(t *testing.T) {
		raw := rawRecord{City: "Cajicá", Neighborhood: "Centro"}
		assert.Equal(t, models.Explicit("Cajicá"), n.inferCity(raw, ""))
		assert.Equal(t, models.Explicit("Centro"), n.inferBarrio(raw, ""))
	})

	t.Run("numeric columns are ignored", func(t *testing.T) {
		raw := rawRecord{City: "12", Neighborhood: "40", Address: "Calle 5, barrio el Chicó, Bogotá"}
		assert.Equal(t, models.Guessed("Bogotá"), n.inferCity(raw, ""))
		assert.Equal(t, models.Guessed("el Chicó"), n.inferBarrio(raw, ""))
	})

	t.Run("description fallback", func(t *testing.T) {
		raw := rawRecord{}
		desc := "Casa en La Calera, Barrio Los Pinos."
		assert.Equal(t, models.Guessed("La Calera"), n.inferCity(raw, desc))
		assert.Equal(t, models.Guessed("Los Pinos"), n.inferBarrio(raw, desc))
	})

	t.Run("default to configured city", func(t *testing.T) {
		raw := rawRecord{}
		assert.Equal(t, models.Defaulted("Bogotá"), n.inferCity(raw, "nada"))
		assert.Equal(t, models.Defaulted("Bogotá"), n.inferBarrio(raw, "nada"))
	})

	t.Run("city match needs a whole word", func(t *testing.T) {
		_, ok := n.knownCityIn("Chiamonte")
		assert.False(t, ok)
	})
}
