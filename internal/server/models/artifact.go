package models

import "time"

// Kind tags an artifact record.
type Kind string

const (
	KindFile Kind = "file"
	KindNote Kind = "note"
)

// Artifact is the metadata record of a shared file or note. Files point at a
// payload blob through PayloadLocation; notes carry Title and Content
// inline. Only ViewCount changes after creation.
type Artifact struct {
	ID          string     `json:"id"`
	Kind        Kind       `json:"kind"`
	OwnerUserID string     `json:"ownerUserId"`
	OwnerEmail  string     `json:"ownerEmail"`
	OwnerName   string     `json:"ownerName"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"` // nil = never expires
	ViewLimit   *int       `json:"viewLimit"` // nil = unlimited
	ViewCount   int        `json:"viewCount"`

	FileName        string `json:"fileName,omitempty"`
	PayloadLocation string `json:"payloadLocation,omitempty"`
	SizeBytes       int64  `json:"sizeBytes,omitempty"`
	ContentType     string `json:"contentType,omitempty"`

	Title   string `json:"title,omitempty"`
	Content string `json:"content,omitempty"`
}

// Expired reports whether the artifact is past its expiry at now.
func (a *Artifact) Expired(now time.Time) bool {
	return a.ExpiresAt != nil && !now.Before(*a.ExpiresAt)
}

// Exhausted reports whether the view quota is used up.
func (a *Artifact) Exhausted() bool {
	return a.ViewLimit != nil && a.ViewCount >= *a.ViewLimit
}
