package bitget

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bitget/pkg/core"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// checkParams validates an endpoint request struct. A missing required
// field is reported by its wire name before any request is built.
func checkParams(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &core.ConfigError{Code: core.ErrCodeInvalidConfig, Err: err}
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required", "required_if", "required_without", "min":
		return &core.ConfigError{
			Code:  core.ErrCodeMissingParam,
			Field: fe.Field(),
			Err:   fmt.Errorf("%w: %s", core.ErrMissingParam, fe.Field()),
		}
	default:
		return &core.ConfigError{
			Code:  core.ErrCodeInvalidConfig,
			Field: fe.Field(),
			Err:   fmt.Errorf("invalid parameter %s: failed %q", fe.Field(), fe.Tag()),
		}
	}
}
