package httpapi

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/auth"
	"github.com/mutix31/Sharebin/internal/server/models"
	"github.com/mutix31/Sharebin/internal/server/services"
)

// multipart framing on top of the payload ceiling
const uploadOverhead = 1 << 20

type noteRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	ExpiresIn string `json:"expiresIn"`
	ViewLimit string `json:"viewLimit"`
}

func (h *Handler) uploadFile(w http.ResponseWriter, r *http.Request) {
	owner, _ := identityFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, common.MaxArtifactSize+uploadOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			h.writeError(w, r, err)
			return
		}
		h.writeError(w, r, common.NewValidationError("file", "malformed multipart form"))
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, r, common.NewValidationError("file", "is required"))
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, common.MaxArtifactSize+1))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	a, err := h.artifacts.CreateFile(r.Context(), owner, services.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        body,
		ExpiresIn:   r.FormValue("expiresIn"),
		ViewLimit:   r.FormValue("viewLimit"),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.artifactView(a, false))
}

func (h *Handler) createNote(w http.ResponseWriter, r *http.Request) {
	owner, _ := identityFrom(r.Context())

	var req noteRequest
	if err := decodeJSONLimit(w, r, common.MaxArtifactSize+uploadOverhead, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	a, err := h.artifacts.CreateNote(r.Context(), owner, services.NoteInput{
		Title:     req.Title,
		Content:   req.Content,
		ExpiresIn: req.ExpiresIn,
		ViewLimit: req.ViewLimit,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, h.artifactView(a, true))
}

// readFile admits one view and returns the metadata with a download link:
// presigned when the store supports it, otherwise a ticketed link to
// fileContent that does not count a second view.
func (h *Handler) readFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.artifacts.ReadAndAdmit(r.Context(), models.KindFile, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	download, err := h.artifacts.DownloadURL(r.Context(), a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if download == "" {
		ticket, err := auth.GenerateDownloadTicket(a.ID, h.secret, h.now().Add(h.presignTTL))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		download = h.shareBase + "/api/files/" + a.ID + "/content?ticket=" + url.QueryEscape(ticket)
	}

	v := h.artifactView(a, false)
	v.DownloadURL = download
	writeJSON(w, http.StatusOK, v)
}

// fileContent streams a payload. With a valid ticket the view was already
// counted; without one, the request is an admission of its own.
func (h *Handler) fileContent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var (
		a   *models.Artifact
		err error
	)
	if ticket := r.URL.Query().Get("ticket"); ticket != "" {
		if err := auth.VerifyDownloadTicket(ticket, id, h.secret); err != nil {
			h.writeError(w, r, err)
			return
		}
		a, err = h.artifacts.Lookup(r.Context(), models.KindFile, id)
	} else {
		a, err = h.artifacts.ReadAndAdmit(r.Context(), models.KindFile, id)
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	body, err := h.artifacts.Payload(r.Context(), a)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(a.FileName))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *Handler) readNote(w http.ResponseWriter, r *http.Request) {
	a, err := h.artifacts.ReadAndAdmit(r.Context(), models.KindNote, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.artifactView(a, true))
}

func (h *Handler) listArtifacts(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identityFrom(r.Context())
		scope := services.Scope(r.URL.Query().Get("scope"))

		list, err := h.artifacts.List(r.Context(), kind, requester, scope)
		if err != nil {
			h.writeError(w, r, err)
			return
		}

		out := make([]artifactView, 0, len(list))
		for _, a := range list {
			out = append(out, h.artifactView(a, false))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) deleteArtifact(kind models.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requester, _ := identityFrom(r.Context())

		if err := h.artifacts.Delete(r.Context(), kind, chi.URLParam(r, "id"), requester); err != nil {
			h.writeDeleteError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
