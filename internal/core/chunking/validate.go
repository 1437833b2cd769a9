package chunking

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/markdave123-py/Chunkwise/internal/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkSettings validates a resolved settings struct and reports the first
// violation as core.ErrInvalidParameter naming the offending field.
func checkSettings(settings any) error {
	err := validate.Struct(settings)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", core.ErrInvalidParameter, err)
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "gte":
		if fe.Param() == "0" {
			return fmt.Errorf("%w: %s must be non-negative", core.ErrInvalidParameter, field)
		}
		return fmt.Errorf("%w: %s must be at least %s", core.ErrInvalidParameter, field, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return fmt.Errorf("%w: %s must be positive", core.ErrInvalidParameter, field)
		}
		return fmt.Errorf("%w: %s must be greater than %s", core.ErrInvalidParameter, field, fe.Param())
	case "lte":
		return fmt.Errorf("%w: %s must be at most %s", core.ErrInvalidParameter, field, fe.Param())
	case "ltfield":
		return fmt.Errorf("%w: %s must be less than %s", core.ErrInvalidParameter, field, jsonName(settings, fe.Param()))
	default:
		return fmt.Errorf("%w: %s failed %q", core.ErrInvalidParameter, field, fe.Tag())
	}
}

func jsonName(settings any, goField string) string {
	t := reflect.TypeOf(settings)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(goField); ok {
		if name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]; name != "" {
			return name
		}
	}
	return goField
}
