package handlers

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/JonnyWalker81/lifedash/internal/apierror"
	"github.com/JonnyWalker81/lifedash/internal/insight"
	"github.com/JonnyWalker81/lifedash/internal/logger"
	"github.com/JonnyWalker81/lifedash/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerTagNames sync.Once

// useJSONFieldNames makes gin's validator report json names ("item")
// instead of Go field names ("Item").
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindJSON decodes the request body and writes a problem response on
// failure. It reports whether the handler should continue.
func bindJSON(c *gin.Context, req any) bool {
	useJSONFieldNames()

	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	requestID := apierror.GetRequestID(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// JSON syntax error (not field-level)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return false
	}

	fieldErrors := make([]apierror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   fe.Field(),
			Message: bindingMessage(fe),
			Code:    fe.Tag(),
		})
	}
	apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
	return false
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// logFieldErrors converts engine validation errors. Row indexes are only
// included for errors in the stored log.
func logFieldErrors(verrs insight.ValidationErrors, withIndex bool) []apierror.FieldError {
	out := make([]apierror.FieldError, 0, len(verrs))
	for _, ve := range verrs {
		fe := apierror.FieldError{
			Field:   ve.Field,
			Message: ve.Reason,
			Code:    "invalid_value",
		}
		if withIndex {
			index := ve.Index
			fe.Index = &index
		}
		out = append(out, fe)
	}
	return out
}

// writeError maps a service error to a problem response. resource and id
// name the record for 404s and malformed ids.
func writeError(c *gin.Context, err error, resource, id string) {
	requestID := apierror.GetRequestID(c)

	var dateErr *service.DateError
	var verrs insight.ValidationErrors
	switch {
	case errors.Is(err, service.ErrNotFound):
		apierror.WriteProblem(c, apierror.NewNotFoundError(requestID, resource, id))
	case errors.Is(err, service.ErrInvalidID):
		apierror.WriteProblem(c, apierror.NewInvalidIDError(requestID, "id", id))
	case errors.As(err, &dateErr):
		apierror.WriteProblem(c, apierror.NewInvalidDateError(requestID, dateErr.Field, dateErr.Value))
	case errors.Is(err, service.ErrAlreadyRouted):
		apierror.WriteProblem(c, apierror.NewConflictError(requestID, err.Error()))
	case errors.Is(err, service.ErrInvalidRoute):
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "This item cannot be routed that way"))
	case errors.As(err, &verrs):
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, logFieldErrors(verrs, false)))
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			logger.String("resource", resource),
			logger.Err(err),
		)
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
	}
}
