package models

import (
	"strconv"
	"time"

	"github.com/mutix31/Sharebin/internal/common"
)

// Expiry options offered at upload time.
const (
	ExpiryDay       = "1d"
	ExpiryFiveDays  = "5d"
	ExpiryWeek      = "1w"
	ExpiryMonth     = "1m"
	ExpiryUnlimited = "unlimited"
)

var expiryDurations = map[string]time.Duration{
	ExpiryDay:      24 * time.Hour,
	ExpiryFiveDays: 5 * 24 * time.Hour,
	ExpiryWeek:     7 * 24 * time.Hour,
	ExpiryMonth:    30 * 24 * time.Hour,
}

// ExpiresAt resolves an expiry option to an absolute deadline. Unlimited and
// the empty option yield nil.
func ExpiresAt(now time.Time, option string) (*time.Time, error) {
	if option == "" || option == ExpiryUnlimited {
		return nil, nil
	}
	d, ok := expiryDurations[option]
	if !ok {
		return nil, common.NewValidationError("expiresIn", "must be one of 1d, 5d, 1w, 1m, unlimited")
	}
	t := now.Add(d)
	return &t, nil
}

// ViewLimitUnlimited is the option string for no view limit.
const ViewLimitUnlimited = "unlimited"

// ParseViewLimit accepts "1", "10", "unlimited" or "" (unlimited).
func ParseViewLimit(option string) (*int, error) {
	if option == "" || option == ViewLimitUnlimited {
		return nil, nil
	}
	n, err := strconv.Atoi(option)
	if err != nil {
		return nil, common.NewValidationError("viewLimit", "must be 1, 10 or unlimited")
	}
	return ViewLimit(n)
}

// ViewLimit validates a numeric limit against the offered set.
func ViewLimit(n int) (*int, error) {
	if n != 1 && n != 10 {
		return nil, common.NewValidationError("viewLimit", "must be 1, 10 or unlimited")
	}
	return &n, nil
}
