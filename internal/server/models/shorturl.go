package models

import "time"

// ShortURL maps a short code to a target URL. It never expires.
type ShortURL struct {
	Code        string    `json:"code"`
	TargetURL   string    `json:"targetUrl"`
	OwnerUserID string    `json:"ownerUserId"`
	OwnerEmail  string    `json:"ownerEmail"`
	OwnerName   string    `json:"ownerName"`
	CreatedAt   time.Time `json:"createdAt"`
	VisitCount  int       `json:"visitCount"`
}
