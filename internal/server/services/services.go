// Package services contains sharebin's business logic: registration and
// profiles, login sessions, artifact storage with read-time admission, and
// short URLs. Every operation receives the caller identity explicitly.
package services

import (
	"sort"
	"strings"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/models"
)

// Scope selects whose records a listing returns.
type Scope string

const (
	ScopeOwn Scope = "own"
	ScopeAll Scope = "all"
)

// minIDLen is the shortest id accepted before touching the store.
const minIDLen = 5

// checkID rejects malformed ids as plain not-found, before any store access.
func checkID(id string) error {
	if len(id) < minIDLen || strings.ContainsAny(id, `./\`) {
		return common.ErrorNotFound
	}
	return nil
}

type clock func() time.Time

func sortArtifacts(list []*models.Artifact) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func sortShortURLs(list []*models.ShortURL) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

func sortUsers(list []models.UserPublic) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
