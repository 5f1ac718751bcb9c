package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campustrade/campustrade/internal/api/respond"
	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/services"
)

type ProfileHandler struct {
	svc *services.ProfileService
}

func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Get GET /api/profile/{id}
//
// Always 200: reputation data is advisory, so missing users degrade to a
// default profile shell rather than an error.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"profile": p})
}

// Update PATCH /api/profile/{id}
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name *string `json:"name"`
		Bio  *string `json:"bio"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	u, err := h.svc.Update(r.Context(), mux.Vars(r)["id"], model.UserPatch{Name: in.Name, Bio: in.Bio})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": u})
}
