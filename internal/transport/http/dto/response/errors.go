package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  StatusError,
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: StatusError,
		Error:  "authentication_failed",
	}

	ErrNotFound = ErrorResponse{
		Status: StatusError,
		Error:  "not_found",
	}

	ErrSlugTaken = ErrorResponse{
		Status:  StatusError,
		Error:   "slug_taken",
		Details: "Another record already uses this slug",
	}

	ErrInternal = ErrorResponse{
		Status: StatusError,
		Error:  "internal_error",
	}
)
