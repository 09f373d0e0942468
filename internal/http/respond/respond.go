// Package respond holds the JSON encoding and error mapping shared by every
// handler.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

const maxBody = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Message writes {"message": ...}.
func Message(w http.ResponseWriter, status int, format string, args ...any) {
	JSON(w, status, map[string]string{"message": fmt.Sprintf(format, args...)})
}

// Decode reads a JSON body into dst and runs its validate tags.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.Validation("request body is required")
		}

		return apperror.Validation("invalid request body: %v", err)
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return validationError(verrs)
		}

		return apperror.Validation("invalid request body: %v", err)
	}

	return nil
}

func validationError(verrs validator.ValidationErrors) error {
	msgs := make([]string, len(verrs))

	for i, fe := range verrs {
		field := fe.Field()

		switch fe.Tag() {
		case "required":
			msgs[i] = field + " is required"
		case "oneof":
			msgs[i] = fmt.Sprintf("%s must be one of %s", field, fe.Param())
		case "min", "gte":
			msgs[i] = fmt.Sprintf("%s must be at least %s", field, fe.Param())
		case "max", "lte":
			msgs[i] = fmt.Sprintf("%s must be at most %s", field, fe.Param())
		default:
			msgs[i] = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
		}
	}

	return apperror.Validation("%s", strings.Join(msgs, "; "))
}

type conflictBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorBody struct {
	Error     string         `json:"error"`
	Kind      apperror.Kind  `json:"kind"`
	IDs       []string       `json:"ids,omitempty"`
	Conflicts []conflictBody `json:"conflicts,omitempty"`
	Found     []string       `json:"found,omitempty"`
	Missing   []string       `json:"missing,omitempty"`
}

// Status maps an error kind to its HTTP status.
func Status(err error) int {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindStateConflict, apperror.KindInvalidReference:
		return http.StatusBadRequest
	case apperror.KindNotFound:
		if appErr.Batch {
			return http.StatusBadRequest
		}

		return http.StatusNotFound
	case apperror.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperror.KindForbidden:
		return http.StatusForbidden
	}

	if appErr.Retryable {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

// Error writes err as a JSON error body. Store failures are logged with
// their cause and reported to the client without it.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Store("request", err)
	}

	status := Status(appErr)
	body := errorBody{
		Error:   appErr.Message,
		Kind:    appErr.Kind,
		IDs:     appErr.IDs,
		Found:   appErr.Found,
		Missing: appErr.Missing,
	}

	for _, c := range appErr.Conflicts {
		body.Conflicts = append(body.Conflicts, conflictBody{ID: c.ID, Status: c.Status})
	}

	if appErr.Kind == apperror.KindStore {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "op", appErr.Message, "error", appErr.Err)

		body.Error = appErr.Message + " failed"
		if appErr.Retryable {
			body.Error += ", please retry"
			w.Header().Set("Retry-After", "1")
		}
	}

	JSON(w, status, body)
}
