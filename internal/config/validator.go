package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/alexisbeaulieu97/sdui/internal/responsive"
	"github.com/alexisbeaulieu97/sdui/internal/ui/components"
	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the validator shared by the
// config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
			_, err := components.ThemeByName(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("breakpoint", func(fl validator.FieldLevel) bool {
			_, err := responsive.Parse(fl.Field().String())
			return err == nil
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks cfg and returns every problem found, each as a
// *errors.ConfigError naming the offending field.
func Validate(cfg *Config) error {
	if cfg == nil {
		return sduierrors.NewConfigError("", "config is nil", nil)
	}

	err := validatorInstance().Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return sduierrors.NewConfigError("", err.Error(), err)
	}

	var result *multierror.Error
	for _, fe := range verrs {
		result = multierror.Append(result, sduierrors.NewConfigError(fieldPath(fe), describe(fe), fe))
	}
	return result.ErrorOrNil()
}

// fieldPath drops the root struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fmt.Sprint(fe.Value()), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "theme":
		return fmt.Sprintf("unknown theme %q (available: %s)", fmt.Sprint(fe.Value()), strings.Join(components.ThemeNames(), ", "))
	case "breakpoint":
		return fmt.Sprintf("unknown breakpoint %q", fmt.Sprint(fe.Value()))
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "required":
		return "is required"
	}
	return fmt.Sprintf("failed %s validation", fe.Tag())
}
