package errors

import "net/http"

var (
	ErrSessionNotFound = New(
		"SESSION_NOT_FOUND",
		"Session not found",
		http.StatusNotFound,
	)

	ErrNoRoute = New(
		"NO_ROUTE",
		"Please plot a route on the map first",
		http.StatusConflict,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidThreshold = New(
		"INVALID_THRESHOLD",
		"Invalid distance threshold value",
		http.StatusBadRequest,
	)

	ErrLGANotFound = New(
		"LGA_NOT_FOUND",
		"Local Government Area not found",
		http.StatusNotFound,
	)

	ErrModelQuotaExceeded = New(
		"MODEL_QUOTA_EXCEEDED",
		"Conversational model quota exceeded",
		http.StatusServiceUnavailable,
	)

	ErrModelRateLimited = New(
		"MODEL_RATE_LIMITED",
		"Conversational model is rate limited",
		http.StatusTooManyRequests,
	)

	ErrModelUnavailable = New(
		"MODEL_UNAVAILABLE",
		"Conversational model call failed",
		http.StatusBadGateway,
	)

	ErrFacilitySearchFailed = New(
		"FACILITY_SEARCH_FAILED",
		"Facility search failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
