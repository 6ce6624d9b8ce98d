package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/storage"
)

// CharacterListResponse is the body of GET /characters.
type CharacterListResponse struct {
	Characters []string `json:"characters"`
}

// CharacterHandler serves the legend cards.
type CharacterHandler struct {
	log     *slog.Logger
	storage storage.Storage
}

func NewCharacterHandler(log *slog.Logger, storage storage.Storage) *CharacterHandler {
	return &CharacterHandler{
		log:     log,
		storage: storage,
	}
}

func (h *CharacterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, h.log, r, http.MethodGet)
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/characters"), "/")
	if id == "" {
		h.list(w, r)
		return
	}
	h.get(w, r, id)
}

func (h *CharacterHandler) list(w http.ResponseWriter, r *http.Request) {
	ids, err := h.storage.ListLegends(r.Context())
	if err != nil {
		h.log.Error("Failed to list characters", "error", err)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to list characters")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, h.log, http.StatusOK, CharacterListResponse{Characters: ids})
}

func (h *CharacterHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	if strings.Contains(id, "..") || strings.Contains(id, "/") {
		writeError(w, h.log, http.StatusBadRequest, "Invalid character ID")
		return
	}

	l, err := h.storage.GetLegend(r.Context(), id)
	if err != nil {
		if errors.Is(err, legend.ErrNotFound) {
			writeError(w, h.log, http.StatusNotFound, "Character "+id+" not found")
			return
		}
		h.log.Error("Failed to load character", "error", err, "id", id)
		writeError(w, h.log, http.StatusInternalServerError, "Failed to load character")
		return
	}
	writeJSON(w, h.log, http.StatusOK, l)
}
