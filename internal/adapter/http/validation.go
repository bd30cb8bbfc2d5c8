package http

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Condition is one failed rule when a request trips several at once.
type Condition struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error      string       `json:"error"`
	Code       string       `json:"code,omitempty"`
	Details    []FieldError `json:"details,omitempty"`
	Conditions []Condition  `json:"conditions,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names in FieldError.Field
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})

	// decimal comparisons: dgt=0, dgte=0, dlte=1
	_ = v.RegisterValidation("dgt", decimalCmp(func(c int) bool { return c > 0 }))
	_ = v.RegisterValidation("dgte", decimalCmp(func(c int) bool { return c >= 0 }))
	_ = v.RegisterValidation("dlte", decimalCmp(func(c int) bool { return c <= 0 }))
	// max N decimal places
	_ = v.RegisterValidation("dplaces", func(fl validator.FieldLevel) bool {
		d, ok := asDecimal(fl)
		if !ok {
			return false
		}
		n, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return d.Equal(d.Truncate(int32(n.IntPart())))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

func asDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	d, ok := fl.Field().Interface().(decimal.Decimal)
	return d, ok
}

func decimalCmp(accept func(cmp int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, ok := asDecimal(fl)
		if !ok {
			return false
		}
		p, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return accept(d.Cmp(p))
	}
}

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "required_if":
			out = append(out, FieldError{Field: field, Message: "is required when " + strings.Replace(e.Param(), " ", " is ", 1)})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of " + strings.ReplaceAll(e.Param(), " ", ", ")})
		case "dgt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "dgte", "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "dlte", "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "dplaces":
			out = append(out, FieldError{Field: field, Message: "must have at most " + e.Param() + " decimal places"})
		case "max":
			out = append(out, FieldError{Field: field, Message: "must be at most " + e.Param() + " characters"})
		case "min":
			out = append(out, FieldError{Field: field, Message: "must have at least " + e.Param() + " entries"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email address"})
		case "url":
			out = append(out, FieldError{Field: field, Message: "must be a valid URL"})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
