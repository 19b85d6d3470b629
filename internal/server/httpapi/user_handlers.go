package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/services"
)

type updateUserRequest struct {
	Name *string      `json:"name"`
	Role *models.Role `json:"role"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	actor, _ := identityFrom(r.Context())

	list, err := h.users.ListUsers(r.Context(), actor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	actor, _ := identityFrom(r.Context())

	var req updateUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), actor, chi.URLParam(r, "id"), services.ProfileUpdate{
		Name: req.Name,
		Role: req.Role,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
