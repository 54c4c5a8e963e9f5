package response

import "inmobiliaria/internal/domain/models"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response wraps every JSON answer of the catalog API.
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: StatusSuccess,
		Data:   data,
	}
}

// EmptyListing is the page rendered when a public listing cannot be built.
// Items is never null so clients can iterate it unconditionally.
func EmptyListing(page, pageSize int) Response {
	return SuccessResponse(&models.PropertyPage{
		Items:    []models.Property{},
		Page:     page,
		PageSize: pageSize,
	})
}

// EmptyList renders a degraded collection endpoint as an empty array.
func EmptyList[T any]() Response {
	return SuccessResponse([]T{})
}

// Unhealthy reports per-dependency states alongside an error status.
func Unhealthy(states map[string]string) Response {
	return Response{
		Status: StatusError,
		Data:   states,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  StatusError,
		Error:   err,
		Details: details,
	}
}
