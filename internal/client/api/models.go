package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Identity is the caller behind the current session.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

type Artifact struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	ShareURL    string     `json:"shareUrl"`
	OwnerName   string     `json:"ownerName"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	ViewLimit   *int       `json:"viewLimit"`
	ViewCount   int        `json:"viewCount"`
	FileName    string     `json:"fileName,omitempty"`
	SizeBytes   int64      `json:"sizeBytes,omitempty"`
	ContentType string     `json:"contentType,omitempty"`
	Title       string     `json:"title,omitempty"`
	Content     string     `json:"content,omitempty"`
	DownloadURL string     `json:"downloadUrl,omitempty"`
}

type ShortURL struct {
	Code       string    `json:"code"`
	ShortURL   string    `json:"shortUrl"`
	TargetURL  string    `json:"targetUrl"`
	OwnerName  string    `json:"ownerName"`
	CreatedAt  time.Time `json:"createdAt"`
	VisitCount int       `json:"visitCount"`
}

// SharingOptions are the expiry and view-limit choices sent with uploads.
type SharingOptions struct {
	ExpiresIn string `json:"expiresIn,omitempty"`
	ViewLimit string `json:"viewLimit,omitempty"`
}
