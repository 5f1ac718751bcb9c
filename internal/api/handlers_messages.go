package api

import (
	"encoding/json"
	"net/http"

	"github.com/campustrade/campustrade/internal/api/respond"
	"github.com/campustrade/campustrade/internal/services"
)

type MessageHandler struct {
	svc *services.MessageService
}

func NewMessageHandler(svc *services.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

// ListByConversation GET /api/messages?conversationId=
func (h *MessageHandler) ListByConversation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("conversationId")
	if key == "" {
		respond.WriteBadRequest(w, "conversationId required")
		return
	}
	msgs, err := h.svc.ListByConversation(r.Context(), key)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs})
}

// Send POST /api/messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ConversationID string `json:"conversationId"`
		SenderID       string `json:"senderId"`
		ItemID         string `json:"itemId"`
		Content        string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	m, err := h.svc.Send(r.Context(), in.ConversationID, in.SenderID, in.ItemID, in.Content)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"message": m})
}

// ListConversations GET /api/conversations?userId=
func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respond.WriteBadRequest(w, "userId required")
		return
	}
	convs, err := h.svc.ListConversations(r.Context(), userID)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"conversations": convs})
}
