package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rensmac/chat-summarizer/internal/api/response"
	"github.com/rensmac/chat-summarizer/internal/domain"
	"github.com/rensmac/chat-summarizer/internal/service"
)

var validate = validator.New()

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ChatMessage is the request body for creating a conversation or appending
// to one
type ChatMessage struct {
	UserID  string `json:"user_id" validate:"required,max=50"`
	Message string `json:"message" validate:"required"`
}

// SummarizeRequest is the request body for the summarize endpoint
type SummarizeRequest struct {
	ConversationID string `json:"conversation_id" validate:"required"`
}

// SummaryResponse is the response body for the summarize endpoint
type SummaryResponse struct {
	ConversationID string `json:"conversation_id"`
	Summary        string `json:"summary"`
}

// ChatHandler handles conversation endpoints
type ChatHandler struct {
	conversations *service.ConversationService
	summaries     *service.SummaryService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversations *service.ConversationService, summaries *service.SummaryService) *ChatHandler {
	return &ChatHandler{conversations: conversations, summaries: summaries}
}

// Store creates a new conversation seeded with one message
func (h *ChatHandler) Store(w http.ResponseWriter, r *http.Request) {
	var input ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	conv, err := h.conversations.CreateConversation(r.Context(), input.UserID, input.Message)
	if err != nil {
		response.InternalError(w, "Database error")
		return
	}

	response.Created(w, conv)
}

// Get returns a conversation by id
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	conv, err := h.conversations.FetchConversation(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			response.NotFound(w, "Conversation not found")
			return
		}
		response.InternalError(w, "Database error")
		return
	}

	response.OK(w, conv)
}

// AddMessage appends a message to an existing conversation
func (h *ChatHandler) AddMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var input ChatMessage
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	err := h.conversations.AppendMessage(r.Context(), conversationID, input.UserID, input.Message)
	switch {
	case errors.Is(err, domain.ErrConversationNotFound):
		response.NotFound(w, "Conversation not found")
	case errors.Is(err, domain.ErrOwnershipMismatch):
		response.BadRequest(w, "User mismatch")
	case err != nil:
		response.InternalError(w, "Database error")
	default:
		response.Message(w, "Message added successfully")
	}
}

// Summarize produces an LLM summary of a conversation
func (h *ChatHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var input SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	summary, err := h.summaries.Summarize(r.Context(), input.ConversationID)
	if err != nil {
		if errors.Is(err, domain.ErrConversationNotFound) {
			response.NotFound(w, "Conversation not found")
			return
		}
		response.InternalError(w, "Database error")
		return
	}

	response.OK(w, SummaryResponse{
		ConversationID: input.ConversationID,
		Summary:        summary,
	})
}

// ListByUser returns one page of a user's conversations
func (h *ChatHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	page := defaultPage
	limit := defaultLimit

	if p := r.URL.Query().Get("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v >= 1 {
			page = v
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v >= 1 {
			limit = v
		}
	}

	conversations, err := h.conversations.ListUserConversations(r.Context(), userID, page, limit)
	if err != nil {
		response.InternalError(w, "Database error")
		return
	}

	response.OK(w, conversations)
}

// Delete removes a conversation permanently
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	err := h.conversations.DeleteConversation(r.Context(), conversationID)
	switch {
	case errors.Is(err, domain.ErrConversationNotFound):
		response.NotFound(w, "Conversation not found")
	case err != nil:
		response.InternalError(w, "Database error")
	default:
		response.Message(w, "Conversation deleted successfully")
	}
}
