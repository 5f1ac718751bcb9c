package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campustrade/campustrade/internal/api/respond"
	"github.com/campustrade/campustrade/internal/model"
	"github.com/campustrade/campustrade/internal/services"
)

type ItemHandler struct {
	svc *services.ItemService
}

func NewItemHandler(svc *services.ItemService) *ItemHandler { return &ItemHandler{svc: svc} }

// List GET /api/items?userId=&category=&search=&type=
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.List(r.Context(), services.ListItemsQuery{
		UserID:   q.Get("userId"),
		Category: q.Get("category"),
		Type:     q.Get("type"),
		Search:   q.Get("search"),
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items, "count": len(items)})
}

// Get GET /api/items/{id}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"item": it})
}

// Create POST /api/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Price       float64  `json:"price"`
		Category    string   `json:"category"`
		Type        string   `json:"type"`
		Condition   string   `json:"condition"`
		Images      []string `json:"images"`
		UserID      string   `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	it, err := h.svc.Create(r.Context(), &model.Item{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Type:        in.Type,
		Condition:   in.Condition,
		Images:      in.Images,
		UserID:      in.UserID,
	})
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"item":    it,
		"message": "Item created successfully",
	})
}

// UpdateStatus PATCH /api/items/{id}
func (h *ItemHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	it, err := h.svc.UpdateStatus(r.Context(), mux.Vars(r)["id"], in.Status)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"item":    it,
		"message": "Item updated successfully",
	})
}
