package models

import "time"

// SessionRecord is the JSON blob persisted under the session storage key.
// Timestamp is epoch milliseconds at login/update time; a record is valid for
// the configured session TTL from that instant and must be treated as absent
// once expired.
type SessionRecord struct {
	User      User   `json:"user"`
	Token     string `json:"token,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// ExpiresAt returns the instant the record stops being valid.
func (r SessionRecord) ExpiresAt(ttl time.Duration) time.Time {
	return time.UnixMilli(r.Timestamp).Add(ttl)
}

// Expired reports whether the record is at or past its validity window.
func (r SessionRecord) Expired(now time.Time, ttl time.Duration) bool {
	return !now.Before(r.ExpiresAt(ttl))
}

// DocumentStatus is the KYC document verification state for field roles.
type DocumentStatus int

const (
	DocumentStatusUnknown     DocumentStatus = 0
	DocumentStatusPending     DocumentStatus = 1
	DocumentStatusUnderReview DocumentStatus = 2
	DocumentStatusVerified    DocumentStatus = 3
	DocumentStatusRejected    DocumentStatus = 4
)

func (s DocumentStatus) String() string {
	switch s {
	case DocumentStatusPending:
		return "pending"
	case DocumentStatusUnderReview:
		return "under review"
	case DocumentStatusVerified:
		return "verified"
	case DocumentStatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
