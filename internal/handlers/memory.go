package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/storage"
)

// ResetMemoryHandler clears every stored conversation.
type ResetMemoryHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewResetMemoryHandler(storage storage.Storage, logger *slog.Logger) *ResetMemoryHandler {
	return &ResetMemoryHandler{storage: storage, logger: logger}
}

func (h *ResetMemoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, r, http.MethodPost)
		return
	}

	cleared, err := h.storage.ResetConversations(r.Context())
	if err != nil {
		h.logger.Error("Failed to reset memory", "error", err, "cleared", cleared)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to reset memory")
		return
	}

	h.logger.Info("Memory reset", "cleared", cleared)
	writeJSON(w, h.logger, http.StatusOK, chat.ResetResponse{Status: "success", Cleared: cleared})
}

// ConversationDeleted is the body of DELETE /conversations/{id}.
type ConversationDeleted struct {
	Status         string    `json:"status"`
	ConversationID uuid.UUID `json:"conversation_id"`
}

// ConversationHandler reads and deletes single conversations.
type ConversationHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewConversationHandler(storage storage.Storage, logger *slog.Logger) *ConversationHandler {
	return &ConversationHandler{storage: storage, logger: logger}
}

func (h *ConversationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/conversations"), "/")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Conversation ID must be a UUID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		methodNotAllowed(w, h.logger, r, "GET, DELETE")
	}
}

func (h *ConversationHandler) get(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	conv, err := h.storage.LoadConversation(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load conversation", "error", err, "conversation_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load conversation")
		return
	}
	if conv == nil {
		writeError(w, h.logger, http.StatusNotFound, "Conversation not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, conv)
}

func (h *ConversationHandler) delete(w http.ResponseWriter, r *http.Request, id uuid.UUID) {
	conv, err := h.storage.LoadConversation(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load conversation", "error", err, "conversation_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load conversation")
		return
	}
	if conv == nil {
		writeError(w, h.logger, http.StatusNotFound, "Conversation not found")
		return
	}
	if err := h.storage.DeleteConversation(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete conversation", "error", err, "conversation_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete conversation")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, ConversationDeleted{Status: "deleted", ConversationID: id})
}
