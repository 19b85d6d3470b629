package httpapi

import (
	"time"

	"github.com/mutix31/Sharebin/internal/server/models"
)

const (
	kindFile = models.KindFile
	kindNote = models.KindNote
)

// artifactView is the public JSON shape of an artifact. Storage details and
// owner ids stay server-side.
type artifactView struct {
	ID          string      `json:"id"`
	Kind        models.Kind `json:"kind"`
	ShareURL    string      `json:"shareUrl"`
	OwnerName   string      `json:"ownerName"`
	CreatedAt   time.Time   `json:"createdAt"`
	ExpiresAt   *time.Time  `json:"expiresAt"`
	ViewLimit   *int        `json:"viewLimit"`
	ViewCount   int         `json:"viewCount"`
	FileName    string      `json:"fileName,omitempty"`
	SizeBytes   int64       `json:"sizeBytes,omitempty"`
	ContentType string      `json:"contentType,omitempty"`
	Title       string      `json:"title,omitempty"`
	Content     string      `json:"content,omitempty"`
	DownloadURL string      `json:"downloadUrl,omitempty"`
}

func (h *Handler) artifactView(a *models.Artifact, withContent bool) artifactView {
	v := artifactView{
		ID:          a.ID,
		Kind:        a.Kind,
		ShareURL:    h.artifacts.ShareURL(a),
		OwnerName:   a.OwnerName,
		CreatedAt:   a.CreatedAt,
		ExpiresAt:   a.ExpiresAt,
		ViewLimit:   a.ViewLimit,
		ViewCount:   a.ViewCount,
		FileName:    a.FileName,
		SizeBytes:   a.SizeBytes,
		ContentType: a.ContentType,
		Title:       a.Title,
	}
	if withContent {
		v.Content = a.Content
	}
	return v
}

type shortURLView struct {
	Code       string    `json:"code"`
	ShortURL   string    `json:"shortUrl"`
	TargetURL  string    `json:"targetUrl"`
	OwnerName  string    `json:"ownerName"`
	CreatedAt  time.Time `json:"createdAt"`
	VisitCount int       `json:"visitCount"`
}

func (h *Handler) shortURLView(u *models.ShortURL) shortURLView {
	return shortURLView{
		Code:       u.Code,
		ShortURL:   h.shortURLs.ShareURL(u),
		TargetURL:  u.TargetURL,
		OwnerName:  u.OwnerName,
		CreatedAt:  u.CreatedAt,
		VisitCount: u.VisitCount,
	}
}
