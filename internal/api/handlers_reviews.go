package api

import (
	"encoding/json"
	"net/http"

	"github.com/campustrade/campustrade/internal/api/respond"
	"github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/services"
)

type ReviewHandler struct {
	svc *services.ReviewService
}

func NewReviewHandler(svc *services.ReviewService) *ReviewHandler { return &ReviewHandler{svc: svc} }

// Create POST /api/reviews
//
// The acting user comes from the session token; without one the request is
// unauthorized.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ReviewedUserID string `json:"reviewedUserId"`
		Rating         int    `json:"rating"`
		Comment        string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	var reviewerID, reviewerName string
	if actor, ok := auth.ActorFrom(r.Context()); ok {
		reviewerID, reviewerName = actor.UserID, actor.Name
	}
	rv, err := h.svc.Create(r.Context(), reviewerID, reviewerName, in.ReviewedUserID, in.Rating, in.Comment)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"review": rv, "success": true})
}
