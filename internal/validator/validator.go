package validator

import (
	"encoding/base64"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator with json tag naming and the captcha specific rules registered
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// Validate a single value against a rule such as "url" or "gte=0.1,lte=0.9"
func (cv *CustomValidator) Var(field any, tag string) error {
	return cv.validator.Var(field, tag)
}

func Create() CustomValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		jsonName := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if jsonName == "-" {
			return ""
		}
		if jsonName == "-," {
			return "-"
		}
		return jsonName
	})

	// registration only fails on empty tags or nil funcs
	_ = validate.RegisterValidation("captcha_image", func(fl validator.FieldLevel) bool {
		return validateImage(fl.Field().String())
	})
	_ = validate.RegisterValidation("captcha_audio", func(fl validator.FieldLevel) bool {
		return validateAudio(fl.Field().String())
	})

	return CustomValidator{validator: validate}
}

func validateImage(s string) bool {
	if !ValidateImageSize(len(s)) {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}

func validateAudio(s string) bool {
	if s == "" || !ValidateAudioSize(len(s)) {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}
