package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

const (
	maxBodyBytes = 1 << 20
	dateLayout   = "2006-01-02"

	reasonRequired   = "this field is required"
	reasonDateFormat = "date has wrong format, use YYYY-MM-DD"
)

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// decodeBody reads one JSON object into dst. Unknown fields are ignored so
// clients may send back the nested detail fields they received. A value of
// the wrong JSON type is reported as a validation error on that field.
func decodeBody(r *http.Request, w http.ResponseWriter, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("%w: empty body", errInvalidBody)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.NewValidationError(typeErr.Field, "expected a "+jsonKind(typeErr.Type.Kind().String()))
		}
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data", errInvalidBody)
	}
	return nil
}

func jsonKind(kind string) string {
	switch kind {
	case "int", "int64":
		return "number"
	case "bool":
		return "boolean"
	case "slice":
		return "list"
	default:
		return kind
	}
}

// writeDecodeError answers a request whose body could not be decoded.
func (h *handler) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrValidation) {
		h.writeError(w, err)
		return
	}
	writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
}

// nullableString distinguishes an absent field from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func parseDate(p domain.Problems, field string, value *string, dst *time.Time) {
	if value == nil {
		return
	}
	if *value == "" {
		p.Add(field, reasonRequired)
		return
	}
	t, err := time.Parse(dateLayout, *value)
	if err != nil {
		p.Add(field, reasonDateFormat)
		return
	}
	*dst = t
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// merge adds the fields of a validation error to p. Other errors are
// returned unchanged.
func merge(p domain.Problems, err error) error {
	if err == nil {
		return nil
	}
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		return err
	}
	for field, reason := range vErr.Fields {
		p.Add(field, reason)
	}
	return nil
}

func requirePresent(p domain.Problems, field string, present bool) {
	if !present {
		p.Add(field, reasonRequired)
	}
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// checked folds the validation error of a candidate entity into the
// request problems and returns the combined error, if any.
func checked(p domain.Problems, validateErr error) error {
	if err := merge(p, validateErr); err != nil {
		return err
	}
	return p.Err()
}
