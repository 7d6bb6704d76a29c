package keystore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"adminpro/console/internal/models"
)

// Storage keys. No component outside this package writes them directly.
const (
	KeySession        = "adminpro-auth"
	KeyToken          = "adminpro-token"
	KeyDocumentStatus = "adminpro-doc-status"
)

// SessionKeys is the typed view of the keyring the session store works
// against: the JSON session record, the redundantly-written raw token, and
// the single-integer KYC document status.
type SessionKeys struct {
	kr Keyring
}

func NewSessionKeys(kr Keyring) *SessionKeys {
	return &SessionKeys{kr: kr}
}

// ReadRecord returns the persisted session record, or nil when absent. A
// record that fails to parse is treated as absent and both session keys are
// purged so the corrupt state cannot resurface.
func (s *SessionKeys) ReadRecord(ctx context.Context) (*models.SessionRecord, error) {
	data, err := s.kr.Get(ctx, KeySession)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record models.SessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		if clearErr := s.ClearSession(ctx); clearErr != nil {
			return nil, fmt.Errorf("purge corrupt session: %w", clearErr)
		}
		return nil, nil
	}
	return &record, nil
}

// WriteRecord persists the record and mirrors its token into the separate
// token key.
func (s *SessionKeys) WriteRecord(ctx context.Context, record models.SessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := s.kr.Set(ctx, KeySession, data); err != nil {
		return err
	}
	if record.Token == "" {
		return s.kr.Delete(ctx, KeyToken)
	}
	return s.kr.Set(ctx, KeyToken, []byte(record.Token))
}

// ClearSession removes both session keys. The record goes first so a
// concurrent reader never sees a token without a record.
func (s *SessionKeys) ClearSession(ctx context.Context) error {
	if err := s.kr.Delete(ctx, KeySession); err != nil {
		return err
	}
	return s.kr.Delete(ctx, KeyToken)
}

// ReadToken returns the raw bearer token, or "" when absent.
func (s *SessionKeys) ReadToken(ctx context.Context) (string, error) {
	data, err := s.kr.Get(ctx, KeyToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

func (s *SessionKeys) ReadDocumentStatus(ctx context.Context) (models.DocumentStatus, error) {
	data, err := s.kr.Get(ctx, KeyDocumentStatus)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return models.DocumentStatusUnknown, nil
		}
		return models.DocumentStatusUnknown, err
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return models.DocumentStatusUnknown, nil
	}
	return models.DocumentStatus(n), nil
}

func (s *SessionKeys) WriteDocumentStatus(ctx context.Context, status models.DocumentStatus) error {
	return s.kr.Set(ctx, KeyDocumentStatus, []byte(strconv.Itoa(int(status))))
}

// Watch observes out-of-process changes to the session keys when the backend
// supports it. For purely in-process backends it blocks until ctx is done.
func (s *SessionKeys) Watch(ctx context.Context, fn func()) error {
	watcher, ok := s.kr.(Watcher)
	if !ok {
		<-ctx.Done()
		return ctx.Err()
	}
	return watcher.Watch(ctx, []string{KeySession, KeyToken}, fn)
}
