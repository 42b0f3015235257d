// Package validation wraps go-playground/validator with English messages.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once     sync.Once
	validate *validator.Validate
	trans    ut.Translator
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// report json field names instead of Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		eng := en.New()
		uni := ut.New(eng, eng)
		trans, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, trans)
	})
	return validate
}

// Struct validates s against its `validate` tags.
func Struct(s any) error {
	return toAppError(instance().Struct(s))
}

// Var validates a single value against tag, reporting failures under field.
func Var(field string, value any, tag string) error {
	err := instance().Var(value, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, e := range verrs {
			msgs = append(msgs, strings.TrimSpace(field+" "+strings.TrimSpace(e.Translate(trans))))
		}
		return apperrors.NewValidationFailedError(strings.Join(msgs, ", "))
	}
	return apperrors.NewValidationFailedError(err.Error())
}

// GetErrorMessages joins the translated messages of a validator error.
func GetErrorMessages(err error) string {
	instance()
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, ", ")
}

func toAppError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.NewValidationFailedError(GetErrorMessages(err))
}
