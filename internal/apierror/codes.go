package apierror

// Error type URIs following the urn:lifedash:error:* pattern.
// These are used as the "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:lifedash:error:validation"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:lifedash:error:not_found"

	// TypeConflict indicates a resource conflict (409)
	TypeConflict = "urn:lifedash:error:conflict"

	// TypeRateLimit indicates too many requests (429)
	TypeRateLimit = "urn:lifedash:error:rate_limit"

	// TypeUnauthorized indicates a missing or wrong API token (401)
	TypeUnauthorized = "urn:lifedash:error:unauthorized"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:lifedash:error:internal"

	// TypeInvalidID indicates a malformed record id in the path (400)
	TypeInvalidID = "urn:lifedash:error:invalid_id"

	// TypeInvalidDate indicates a date that is not YYYY-MM-DD (400)
	TypeInvalidDate = "urn:lifedash:error:invalid_date"

	// TypeInvalidLog indicates the stored signal log holds malformed rows (422)
	TypeInvalidLog = "urn:lifedash:error:invalid_log"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:lifedash:error:bad_request"
)

// Titles for each error type - human-readable summaries
const (
	TitleValidation   = "Validation Error"
	TitleNotFound     = "Resource Not Found"
	TitleConflict     = "Resource Conflict"
	TitleRateLimit    = "Rate Limit Exceeded"
	TitleUnauthorized = "Authentication Required"
	TitleInternal     = "Internal Server Error"
	TitleInvalidID    = "Invalid ID Format"
	TitleInvalidDate  = "Invalid Date"
	TitleInvalidLog   = "Malformed Signal Log"
	TitleBadRequest   = "Bad Request"
)
