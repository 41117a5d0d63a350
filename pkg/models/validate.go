package models

import (
	"errors"
	"reflect"
	"strings"

	custom_error "assetdesk/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// validate reads the same `binding` tags gin checks, so requests built outside HTTP get identical rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func Validate(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		fields := make(map[string]string, len(fieldErrors))
		for _, fe := range fieldErrors {
			fields[fe.Field()] = fe.Tag()
		}
		return &custom_error.ValidationError{Fields: fields}
	}

	return err
}
