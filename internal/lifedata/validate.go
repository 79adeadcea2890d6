package lifedata

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidDataset wraps every validation failure returned by Validate.
var ErrInvalidDataset = errors.New("invalid dataset")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a dataset against the field rules in its struct tags.
func Validate(ds Dataset) error {
	if err := validate.Struct(ds); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDataset, formatValidationError(err))
	}
	return nil
}

// ValidateStruct checks any tagged struct, formatting failures the same way
// dataset errors are formatted.
func ValidateStruct(s any) error {
	if err := validate.Struct(s); err != nil {
		return errors.New(formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return strings.Join(msgs, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "latitude", "longitude":
		return fmt.Sprintf("%s must be a valid %s", field, fe.Tag())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// fieldPath drops the root struct name: "Dataset.Posts[0].Platform" becomes
// "posts[0].platform".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
