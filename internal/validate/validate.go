// Package validate holds the struct validator shared by the local register
// route and the mission API.
package validate

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	global     *validator.Validate
	phoneRegex = regexp.MustCompile(`^[+\d][\d\s-]{6,14}$`)
)

func init() {
	SetValidator(New())
}

// New returns a validator that reports fields by their json name and knows
// the "phone" tag.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone", validatePhone)
	return v
}

func SetValidator(v *validator.Validate) {
	global = v
}

func Validator() *validator.Validate {
	return global
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// FieldError is the first failing rule of a struct.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	msg := e.Field + " failed " + e.Tag
	if e.Param != "" {
		msg += "=" + e.Param
	}
	return msg
}

// Struct validates s and returns a *FieldError for the first failing field in
// declaration order.
func Struct(ctx context.Context, s any) error {
	err := Validator().StructCtx(ctx, s)
	if err == nil {
		return nil
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return err
	}
	fe := vErrs[0]
	return &FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()}
}
