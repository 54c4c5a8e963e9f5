package models

import (
	"time"

	"github.com/google/uuid"
)

// Operation is the transaction type of a listing.
type Operation string

const (
	OperationSale   Operation = "venta"
	OperationRental Operation = "arriendo"
)

func (o Operation) Valid() bool {
	return o == OperationSale || o == OperationRental
}

type PropertyType string

const (
	PropertyTypeHouse       PropertyType = "casa"
	PropertyTypeApartment   PropertyType = "apartamento"
	PropertyTypeLot         PropertyType = "lote"
	PropertyTypeCommercial  PropertyType = "local"
	PropertyTypeDevelopment PropertyType = "proyecto"
)

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeLot, PropertyTypeCommercial, PropertyTypeDevelopment:
		return true
	}
	return false
}

// Availability is stored in the estado column.
type Availability string

const (
	AvailabilityAvailable Availability = "Disponible"
	AvailabilityReserved  Availability = "Reservado"
	AvailabilitySold      Availability = "Vendido"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityReserved, AvailabilitySold:
		return true
	}
	return false
}

type Property struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	Slug         string       `db:"slug" json:"slug"`
	Title        string       `db:"title" json:"title"`
	Description  string       `db:"description" json:"description"`
	Excerpt      string       `db:"excerpt" json:"excerpt,omitempty"`
	PropertyType PropertyType `db:"property_type" json:"tipo"`
	Operation    Operation    `db:"operation" json:"operacion"`
	City         string       `db:"city" json:"ciudad"`
	Neighborhood string       `db:"neighborhood" json:"barrio"`
	Address      string       `db:"address" json:"direccion,omitempty"`
	Price        int64        `db:"price" json:"precio"`
	Bedrooms     int          `db:"bedrooms" json:"habitaciones"`
	Bathrooms    int          `db:"bathrooms" json:"banos"`
	AreaM2       float64      `db:"area_m2" json:"area_m2"`
	MainImage    string       `db:"main_image" json:"imagen_principal"`
	Gallery      []string     `json:"galeria"`
	Estado       Availability `db:"estado" json:"estado"`
	Featured     bool         `db:"featured" json:"destacado"`
	Amenities    []string     `db:"amenities" json:"amenidades,omitempty"`
	Tags         []string     `json:"tags,omitempty"`
	AgentID      *uuid.UUID   `db:"agent_id" json:"agent_id,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// PropertyImage is a gallery row; Position keeps the import order.
type PropertyImage struct {
	ID         uuid.UUID `db:"id" json:"id"`
	PropertyID uuid.UUID `db:"property_id" json:"property_id"`
	URL        string    `db:"url" json:"url"`
	Position   int       `db:"position" json:"position"`
}

type Agent struct {
	ID    uuid.UUID `db:"id" json:"id"`
	Name  string    `db:"name" json:"name"`
	Phone string    `db:"phone" json:"phone,omitempty"`
	Email string    `db:"email" json:"email,omitempty"`
}

// SortOrder is the orden query token of the listing.
type SortOrder string

const (
	SortNewest    SortOrder = "recientes"
	SortPriceAsc  SortOrder = "precio-asc"
	SortPriceDesc SortOrder = "precio-desc"
)

// ParseSortOrder falls back to SortNewest for unknown tokens.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortPriceAsc, SortPriceDesc:
		return SortOrder(s)
	}
	return SortNewest
}

type PropertyFilter struct {
	Operation   Operation
	MinBedrooms int
	TagSlug     string
	// BarrioSlug matches every spelling of a neighborhood; City is a resolved name.
	BarrioSlug string
	City       string
	Featured   bool
	// Admin lifts the estado = Disponible restriction.
	Admin bool
}

type PropertyQuery struct {
	Filter PropertyFilter
	Sort   SortOrder
	Limit  int
	Offset int
}

type PropertyPage struct {
	Items      []Property `json:"properties"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	PageSize   int        `json:"pageSize"`
}
