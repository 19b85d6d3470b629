// Package codec converts records to and from the bytes stored in the object
// store. Every record is wrapped in a kind-tagged envelope and validated on
// decode, so a blob written for one record type never silently decodes as
// another.
package codec

import (
	"encoding/json"
	"fmt"

	"github.com/mutix31/Sharebin/internal/common"
	"github.com/mutix31/Sharebin/internal/server/models"
)

// Version of the envelope layout written by Encode.
const Version = 1

// Kind tags stored in the envelope.
const (
	KindUser     = "user"
	KindSession  = "session"
	KindFile     = "file"
	KindNote     = "note"
	KindShortURL = "shorturl"
)

// Record is the set of types the codec knows how to store.
type Record interface {
	models.User | models.Session | models.Artifact | models.ShortURL
}

type envelope struct {
	Kind    string          `json:"kind"`
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// Encode serializes rec inside a tagged envelope.
func Encode[T Record](rec *T) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("encode: nil record")
	}
	kind, err := kindOf(rec)
	if err != nil {
		return nil, err
	}
	if err := validate(rec); err != nil {
		return nil, err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}

	return json.Marshal(envelope{Kind: kind, Version: Version, Data: data})
}

// Decode parses b as a T. A wrong kind tag, unknown version, malformed JSON
// or missing required fields yield an error matching common.ErrSchemaMismatch.
func Decode[T Record](b []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaMismatch, err)
	}
	if env.Version != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", common.ErrSchemaMismatch, env.Version)
	}

	rec := new(T)
	if err := json.Unmarshal(env.Data, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaMismatch, err)
	}

	kind, err := kindOf(rec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrSchemaMismatch, err)
	}
	if kind != env.Kind {
		return nil, fmt.Errorf("%w: stored kind %q, want %q", common.ErrSchemaMismatch, env.Kind, kind)
	}
	if err := validate(rec); err != nil {
		return nil, err
	}

	return rec, nil
}

func kindOf(rec any) (string, error) {
	switch r := rec.(type) {
	case *models.User:
		return KindUser, nil
	case *models.Session:
		return KindSession, nil
	case *models.ShortURL:
		return KindShortURL, nil
	case *models.Artifact:
		switch r.Kind {
		case models.KindFile:
			return KindFile, nil
		case models.KindNote:
			return KindNote, nil
		}
		return "", fmt.Errorf("unknown artifact kind %q", r.Kind)
	}
	return "", fmt.Errorf("unsupported record %T", rec)
}

func validate(rec any) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %T missing %s", common.ErrSchemaMismatch, rec, field)
	}

	switch r := rec.(type) {
	case *models.User:
		switch {
		case r.ID == "":
			return missing("id")
		case r.Email == "":
			return missing("email")
		case r.PasswordHash == "":
			return missing("passwordHash")
		case !r.Role.Valid():
			return missing("role")
		}
	case *models.Session:
		switch {
		case r.Token == "":
			return missing("token")
		case r.UserID == "":
			return missing("userId")
		case r.ExpiresAt.IsZero():
			return missing("expiresAt")
		}
	case *models.Artifact:
		switch {
		case r.ID == "":
			return missing("id")
		case r.OwnerUserID == "":
			return missing("ownerUserId")
		case r.Kind == models.KindFile && r.PayloadLocation == "":
			return missing("payloadLocation")
		case r.ViewCount < 0:
			return missing("viewCount")
		}
	case *models.ShortURL:
		switch {
		case r.Code == "":
			return missing("code")
		case r.TargetURL == "":
			return missing("targetUrl")
		}
	}
	return nil
}
