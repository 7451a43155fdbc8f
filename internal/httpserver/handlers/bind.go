package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/MrSnakeDoc/spellshare/internal/domain"
)

const maxBodyBytes = 1 << 20

var (
	validateOnce sync.Once
	validate     *validator.Validate
	translator   ut.Translator
)

// validatorInstance returns the shared validator, reporting fields by their
// json names.
func validatorInstance() (*validator.Validate, ut.Translator) {
	validateOnce.Do(func() {
		enLoc := en.New()
		trans, _ := ut.New(enLoc, enLoc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		validate, translator = v, trans
	})
	return validate, translator
}

// decodeJSON reads one JSON object into T and validates it. Every failure
// wraps domain.ErrInvalidInput.
func decodeJSON[T any](r *http.Request) (T, error) {
	var dst T

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, fmt.Errorf("%w: empty body", domain.ErrInvalidInput)
		}
		return dst, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidInput, err)
	}
	if dec.More() {
		return dst, fmt.Errorf("%w: unexpected trailing data", domain.ErrInvalidInput)
	}

	if err := validateStruct(dst); err != nil {
		return dst, err
	}
	return dst, nil
}

func validateStruct(v any) error {
	val, trans := validatorInstance()

	err := val.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, verrs[0].Translate(trans))
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
}
