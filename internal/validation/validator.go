package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/utility-service/internal/api/dto"
	"github.com/spec-kit/utility-service/pkg/util"
)

// Validator wraps go-playground/validator with json field naming and
// first-failure message reporting.
type Validator struct {
	validate *validator.Validate
}

// New creates and configures the validator.
func New() *Validator {
	v := validator.New()

	// Report fields by their json tag so messages match the wire names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerOptionalTypes(v)
	registerRules(v)

	return &Validator{validate: v}
}

// Validate checks the payload structure and returns a validation error
// naming the first failing field, or nil.
func (v *Validator) Validate(payload any) error {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		return util.NewValidationError(fieldMessage(fieldErrs[0]))
	}
	return util.NewValidationError("invalid payload")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		if fe.Param() == "0" {
			return fe.Field() + " must be a positive integer"
		}
		return fe.Field() + " must be greater than " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return fe.Field() + " is invalid"
	}
}

// registerOptionalTypes teaches the validator to look inside dto.OptionalInt
// so tags apply to the carried value when one is present.
func registerOptionalTypes(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if val, ok := field.Interface().(dto.OptionalInt); ok {
			if val.Present && val.Value.Valid {
				return val.Value.Int64
			}
		}
		return nil
	}, dto.OptionalInt{})
}

// registerRules wires struct-level rules that struct tags cannot express.
func registerRules(v *validator.Validate) {
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(dto.UpdateIssueRequest)
		// Absent or null assignee is fine; a concrete value must be positive.
		if req.AssigneeID.Present && req.AssigneeID.Value.Valid && req.AssigneeID.Value.Int64 <= 0 {
			sl.ReportError(req.AssigneeID, "assignee_id", "AssigneeID", "gt", "0")
		}
	}, dto.UpdateIssueRequest{})
}
