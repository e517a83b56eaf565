/*
Package store defines the key-value persistence used to save and restore user
input and computed history.

ENVELOPE:
  Every value is wrapped in a versioned Envelope:

    {"version": 1, "timestamp": "...", "data": {...}, "enabled": true}

  enabled lets a client keep a saved value while switching its use off.
  Only simple version checks are performed: envelopes written by a newer
  version are rejected with ErrUnsupportedVersion, older ones are read as-is.

IMPLEMENTATIONS:
  Memory       in-process map (tests, single-instance deployments)
  redis.KV     Redis-backed (store/redis)

SEE ALSO:
  - store/sqlite: Relational storage for teams, tasks and history
*/
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// CurrentVersion is the envelope version written by this build.
const CurrentVersion = 1

var (
	ErrNotFound           = errors.New("key not found")
	ErrUnsupportedVersion = errors.New("unsupported envelope version")
	ErrInvalidKey         = errors.New("invalid key")
)

// Envelope is a versioned, JSON-encoded value.
type Envelope struct {
	Version   int             `json:"version"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
	Enabled   bool            `json:"enabled"`
}

// Seal encodes data into an enabled envelope of the current version.
func Seal(data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("failed to encode envelope data: %w", err)
	}
	return Envelope{
		Version:   CurrentVersion,
		Timestamp: time.Now().UTC(),
		Data:      raw,
		Enabled:   true,
	}, nil
}

// Decode unmarshals the envelope data into v.
func (e Envelope) Decode(v any) error {
	if err := e.Check(); err != nil {
		return err
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed to decode envelope data: %w", err)
	}
	return nil
}

// Check rejects envelopes this build cannot read.
func (e Envelope) Check() error {
	if e.Version < 1 || e.Version > CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, e.Version)
	}
	return nil
}

// KV stores envelopes by key.
type KV interface {
	Get(ctx context.Context, key string) (*Envelope, error)
	Put(ctx context.Context, key string, env Envelope) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// ValidateKey rejects empty and oversized keys.
func ValidateKey(key string) error {
	if key == "" || len(key) > 256 {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
