package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mutix31/Sharebin/internal/server/services"
)

type shortenRequest struct {
	URL string `json:"url"`
}

func (h *Handler) shortenURL(w http.ResponseWriter, r *http.Request) {
	owner, _ := identityFrom(r.Context())

	var req shortenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	u, err := h.shortURLs.Shorten(r.Context(), owner, req.URL)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.shortURLView(u))
}

func (h *Handler) listShortURLs(w http.ResponseWriter, r *http.Request) {
	requester, _ := identityFrom(r.Context())

	list, err := h.shortURLs.List(r.Context(), requester, services.Scope(r.URL.Query().Get("scope")))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]shortURLView, 0, len(list))
	for _, u := range list {
		out = append(out, h.shortURLView(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) deleteShortURL(w http.ResponseWriter, r *http.Request) {
	requester, _ := identityFrom(r.Context())

	if err := h.shortURLs.Delete(r.Context(), chi.URLParam(r, "code"), requester); err != nil {
		h.writeDeleteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// redirectShortURL is the public entry point behind share links.
func (h *Handler) redirectShortURL(w http.ResponseWriter, r *http.Request) {
	u, err := h.shortURLs.Resolve(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, u.TargetURL, http.StatusFound)
}
