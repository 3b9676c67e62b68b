package insight

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/JonnyWalker81/lifedash/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json field names so errors match the CSV/API columns
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError describes one offending field of one log record
type ValidationError struct {
	Index  int
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("entry %d: %s %q %s", e.Index, e.Field, e.Value, e.Reason)
}

// ValidationErrors aggregates every invalid field found in a log
type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return "invalid metric log: " + strings.Join(msgs, "; ")
}

// Validate rejects malformed records before they reach the detectors.
// Every problem is reported, not just the first.
func Validate(entries []models.MetricEntry) error {
	var errs ValidationErrors
	for i, entry := range entries {
		if err := ValidateEntry(entry); err != nil {
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			for _, ve := range verrs {
				ve.Index = i
				errs = append(errs, ve)
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateEntry checks a single record. Index is left at zero.
func ValidateEntry(entry models.MetricEntry) error {
	err := validate.Struct(entry)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate entry: %w", err)
	}

	errs := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			Field:  fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: reasonFor(fe.Tag()),
		})
	}
	return errs
}

func reasonFor(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "datetime":
		return "must be a YYYY-MM-DD date"
	case "numeric":
		return "must be numeric"
	default:
		return "failed " + tag + " validation"
	}
}
