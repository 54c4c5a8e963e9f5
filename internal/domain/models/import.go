package models

// Confidence tells how an imported field value was obtained.
type Confidence string

const (
	ConfidenceExplicit Confidence = "explicit"
	ConfidenceInferred Confidence = "inferred"
	ConfidenceDefault  Confidence = "default"
)

type Inferred[T any] struct {
	Value      T          `json:"value"`
	Confidence Confidence `json:"confidence"`
}

func Explicit[T any](v T) Inferred[T] {
	return Inferred[T]{Value: v, Confidence: ConfidenceExplicit}
}

func Guessed[T any](v T) Inferred[T] {
	return Inferred[T]{Value: v, Confidence: ConfidenceInferred}
}

func Defaulted[T any](v T) Inferred[T] {
	return Inferred[T]{Value: v, Confidence: ConfidenceDefault}
}

// ImportRecord is a normalized property ready for insertion.
type ImportRecord struct {
	Property Property         `json:"property"`
	Price    Inferred[int64]  `json:"price"`
	City     Inferred[string] `json:"city"`
	Barrio   Inferred[string] `json:"barrio"`
	Row      int              `json:"row"`
}

type ImportError struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

type ImportReport struct {
	Inserted   int           `json:"inserted"`
	Omitted    int           `json:"omitted"`
	Duplicates int           `json:"duplicates"`
	Errors     []ImportError `json:"errors"`
}
