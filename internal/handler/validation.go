package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/AdamBeresnev/tournament-registration/internal/httputil"
	"github.com/go-playground/validator/v10"
)

// Offsets are optional; a datetime without one is read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

func parseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid datetime %q", value)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("iso_datetime", func(fl validator.FieldLevel) bool {
		_, err := parseDateTime(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// decodeAndValidate reads a JSON body into dst and runs its struct-tag rules. On
// failure it has already written the 422 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			httputil.UnprocessableEntity(w, []httputil.FieldError{{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("must be of type %s", typeErr.Type),
			}})
			return false
		}
		httputil.UnprocessableEntity(w, []httputil.FieldError{{Field: "body", Message: msg}})
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			httputil.UnprocessableEntity(w, []httputil.FieldError{{Field: "body", Message: err.Error()}})
			return false
		}
		fields := make([]httputil.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, httputil.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		httputil.UnprocessableEntity(w, fields)
		return false
	}
	return true
}

func fieldMessage(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "field required"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "email":
		return "value is not a valid email address"
	case "iso_datetime":
		return "must be an ISO 8601 datetime"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
