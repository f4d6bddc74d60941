package handlers

import (
	"net/http"

	"github.com/cheetahbyte/keyforge/internal/handlers/dto"
)

func (h *Handlers) CreateSerials(w http.ResponseWriter, r *http.Request) {
	var data dto.SerialIssueRequest
	if err := h.decodeJSON(w, r, &data); err != nil {
		return
	}

	result, err := h.Services.Serial().Issue(r.Context(), data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
