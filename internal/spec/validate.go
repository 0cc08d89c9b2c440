package spec

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	sduierrors "github.com/alexisbeaulieu97/sdui/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator used for
// every typed prop shape.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("breakpoint_key", func(fl validator.FieldLevel) bool {
			switch fl.Field().String() {
			case "base", "sm", "md", "lg", "xl":
				return true
			}
			return false
		})

		validateInst = v
	})

	return validateInst
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validatorInstance()
}

// DecodeProps decodes the node's props onto out and validates the result.
// Failures come back as *errors.SchemaError rooted at path.
func DecodeProps(n *Node, path Path, out any) error {
	if err := Decode(n.Props, out); err != nil {
		return sduierrors.NewSchemaError(path.String(), n.Type, "", fmt.Sprintf("props do not match the %s shape: %v", n.Type, err), err)
	}
	if err := validatorInstance().Struct(out); err != nil {
		return convertValidationError(n, path, err)
	}
	return nil
}

func convertValidationError(n *Node, path Path, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := wireFieldName(ve)
		msg := fmt.Sprintf("failed validation for tag '%s'", ve.Tag())
		if ve.Tag() == "required" {
			msg = "is required"
		}
		if ve.Tag() == "unique" {
			msg = "must be unique"
			if ve.Param() != "" {
				msg = fmt.Sprintf("must have unique %s values", strings.ToLower(ve.Param()))
			}
		}
		return sduierrors.NewSchemaError(path.String(), n.Type, field, msg, err)
	}

	return sduierrors.NewSchemaError(path.String(), n.Type, "", err.Error(), err)
}

// wireFieldName strips the struct name from the namespace so the reported
// field reads like the wire shape, e.g. `columns[1].id`.
func wireFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
