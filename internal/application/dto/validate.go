package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/killbill/killbill-moneris-plugin/internal/domain/model"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a request DTO's struct tags. Failures wrap
// model.ErrInvalidRequest and name every offending field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", model.ErrInvalidRequest, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", model.ErrInvalidRequest, strings.Join(fields, ", "))
}
