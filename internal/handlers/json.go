package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	problem "schneider.vip/problem"
)

const maxBodyBytes = 1 << 16

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads and validates the request body into dst. On failure the
// problem response has already been written.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		h.writeError(w, r, problem.Of(http.StatusBadRequest).
			Append(problem.Title("Malformed request body")).
			Append(problem.Detail(err.Error())).
			Append(problem.Instance(r.URL.Path)))
		return err
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		fields := map[string]string{}
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fe.Field()] = fmt.Sprintf("failed %q", fe.Tag())
			}
		}
		h.writeError(w, r, problem.Of(http.StatusBadRequest).
			Append(problem.Title("Request validation failed")).
			Append(problem.Custom("fields", fields)).
			Append(problem.Instance(r.URL.Path)))
		return err
	}
	return nil
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var p *problem.Problem
	if !errors.As(err, &p) {
		h.log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "err", err)
		p = problem.Of(http.StatusInternalServerError).
			Append(problem.Instance(r.URL.Path))
	}
	if _, werr := p.WriteTo(w); werr != nil {
		h.log.ErrorContext(r.Context(), "failed to write problem", "err", werr)
	}
}
