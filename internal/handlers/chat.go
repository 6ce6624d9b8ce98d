package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/footagents/internal/services"
	"github.com/jwebster45206/footagents/pkg/chat"
	"github.com/jwebster45206/footagents/pkg/legend"
	"github.com/jwebster45206/footagents/pkg/prompts"
	"github.com/jwebster45206/footagents/pkg/state"
	"github.com/jwebster45206/footagents/pkg/storage"
	"github.com/jwebster45206/footagents/pkg/textfilter"
)

const chatTimeout = 30 * time.Second

// ChatHandler answers a fan's message in the voice of one legend, keeping
// the conversation in storage between requests.
type ChatHandler struct {
	llmService   services.LLMService
	storage      storage.Storage
	historyLimit int
	filter       *textfilter.Filter
	logger       *slog.Logger
}

func NewChatHandler(llmService services.LLMService, storage storage.Storage, historyLimit int, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{
		llmService:   llmService,
		storage:      storage,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// WithFilter cleans every reply with f before it is stored and returned.
func (h *ChatHandler) WithFilter(f *textfilter.Filter) *ChatHandler {
	h.filter = f
	return h
}

func (h *ChatHandler) fail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, h.logger, status, chat.ChatResponse{Error: msg})
}

func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, h.logger, r, http.MethodPost)
		return
	}

	var request chat.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.logger.Warn("Invalid request body", "error", err)
		h.fail(w, http.StatusBadRequest, "Invalid request body. Expected JSON with 'message' and 'character_id' fields.")
		return
	}
	if err := request.Validate(); err != nil {
		h.logger.Warn("Invalid chat request", "error", err)
		h.fail(w, http.StatusBadRequest, err.Error())
		return
	}

	log := h.logger.With("character_id", request.CharacterID)

	l, err := h.storage.GetLegend(r.Context(), request.CharacterID)
	if err != nil {
		if errors.Is(err, legend.ErrNotFound) {
			h.fail(w, http.StatusNotFound, "Character "+request.CharacterID+" not found")
			return
		}
		log.Error("Failed to load character", "error", err)
		h.fail(w, http.StatusInternalServerError, "Failed to load character.")
		return
	}

	conversationID := request.ConversationID
	if conversationID == uuid.Nil {
		conversationID = state.DefaultConversationID(l.ID)
	}
	log = log.With("conversation_id", conversationID)

	conv, err := h.storage.LoadConversation(r.Context(), conversationID)
	if err != nil {
		log.Error("Failed to load conversation", "error", err)
		h.fail(w, http.StatusInternalServerError, "Failed to load conversation.")
		return
	}
	if conv == nil {
		conv = state.NewConversation(conversationID, l.ID, l.Name)
		log.Info("Starting new conversation")
	} else if conv.CharacterID != l.ID {
		h.fail(w, http.StatusConflict, "Conversation belongs to another character.")
		return
	}

	messages, err := prompts.New().
		WithLegend(l).
		WithHistory(conv.ChatHistory).
		WithUserMessage(request.Message).
		WithHistoryLimit(h.historyLimit).
		Build()
	if err != nil {
		log.Error("Failed to build prompt", "error", err)
		h.fail(w, http.StatusInternalServerError, "Failed to build prompt.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	reply, err := h.llmService.Chat(ctx, messages)
	if err != nil {
		log.Error("Error generating chat response", "error", err)
		h.fail(w, http.StatusInternalServerError, "Failed to generate response. Please try again.")
		return
	}
	if h.filter != nil {
		reply = h.filter.Clean(reply, l.Name)
	}
	if reply == "" {
		log.Error("Empty chat response")
		h.fail(w, http.StatusInternalServerError, "Failed to generate response. Please try again.")
		return
	}

	conv.AddTurn(request.Message, reply)
	if err := h.storage.SaveConversation(r.Context(), conv); err != nil {
		// The fan still gets the reply; only the memory of it is lost.
		log.Warn("Failed to save conversation", "error", err)
	}

	log.Info("Chat response generated", "history", len(conv.ChatHistory))
	writeJSON(w, h.logger, http.StatusOK, chat.ChatResponse{
		Response:       reply,
		CharacterID:    request.CharacterID,
		ConversationID: conversationID,
		Timestamp:      time.Now(),
	})
}
