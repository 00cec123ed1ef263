package app

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cimillas/eventfinder/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs the struct tags of in and maps the first failure onto a
// sentinel. fieldErrs overrides the sentinel per struct field name.
func validateInput(in any, fieldErrs map[string]error) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}
	fe := verrs[0]
	if sentinel, ok := fieldErrs[fe.StructField()]; ok {
		return sentinel
	}
	return fmt.Errorf("%w: %s failed %s", domain.ErrInvalidInput, fe.Field(), fe.Tag())
}
