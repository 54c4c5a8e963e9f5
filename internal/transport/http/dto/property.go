package dto

// ListPropertiesQuery binds the public listing query string. Page stays a
// string so a malformed value falls back to page 1 instead of failing.
type ListPropertiesQuery struct {
	Operacion    string `query:"operacion"`
	Habitaciones string `query:"habitaciones"`
	Orden        string `query:"orden"`
	Page         string `query:"page"`
}

type UpdatePropertyStatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=Disponible Reservado Vendido"`
}

type SetFeaturedRequest struct {
	Featured *bool `json:"destacado" validate:"required"`
}
