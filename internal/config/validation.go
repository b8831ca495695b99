package config

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	ferrors "git.home.luguber.info/inful/blogbuilder/internal/foundation/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their YAML keys.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks the configuration against its field constraints.
func Validate(cfg *Config) error {
	err := structValidator().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "validate config").Build()
	}

	first := fieldErrs[0]
	field := strings.TrimPrefix(first.Namespace(), "Config.")
	b := ferrors.ConfigError("invalid configuration field " + field).
		WithCause(err).
		WithContext("field", field).
		WithContext("rule", first.Tag())
	if first.Param() != "" {
		b = b.WithContext("allowed", first.Param())
	}
	return b.Build()
}
