package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// DefaultScope is used when an Adapter is created without a scope.
const DefaultScope = "default"

// Adapter exposes a Backend for one scope, with raw and JSON accessors.
// Reads never fail: backend errors and undecodable values are logged and
// reported as absent.
type Adapter struct {
	backend Backend
	scope   string
	logger  *zap.Logger
}

// NewAdapter binds backend to scope. A nil logger disables diagnostics.
func NewAdapter(backend Backend, scope string, logger *zap.Logger) *Adapter {
	if scope == "" {
		scope = DefaultScope
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{backend: backend, scope: scope, logger: logger}
}

// Scope returns the partition this adapter reads and writes.
func (a *Adapter) Scope() string { return a.scope }

// GetRaw returns the stored string for key, or false if it is absent.
func (a *Adapter) GetRaw(ctx context.Context, key string) (string, bool) {
	v, ok, err := a.backend.Get(ctx, a.scope, key)
	if err != nil {
		a.logger.Warn("storage read failed",
			zap.String("scope", a.scope),
			zap.String("key", key),
			zap.Error(err),
		)
		return "", false
	}
	return v, ok
}

// SetRaw overwrites the stored string for key.
func (a *Adapter) SetRaw(ctx context.Context, key, value string) error {
	if err := a.backend.Set(ctx, a.scope, key, value); err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}
	return nil
}

// RemoveRaw clears key.
func (a *Adapter) RemoveRaw(ctx context.Context, key string) error {
	if err := a.backend.Remove(ctx, a.scope, key); err != nil {
		return fmt.Errorf("removing %s: %w", key, err)
	}
	return nil
}

// GetJSON decodes the value stored under key into dst. It returns false when
// the key is absent, empty, or does not decode into dst; dst is left
// untouched in that case.
func (a *Adapter) GetJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := a.GetRaw(ctx, key)
	if !ok || raw == "" {
		return false
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		a.logger.Error("GetJSON needs a non-nil pointer", zap.String("key", key))
		return false
	}

	// Decode into a scratch value so dst stays clean on error.
	tmp := reflect.New(rv.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		a.logger.Warn("discarding corrupt stored value",
			zap.String("scope", a.scope),
			zap.String("key", key),
			zap.Error(err),
		)
		return false
	}
	rv.Elem().Set(tmp.Elem())
	return true
}

// SetJSON encodes v as JSON and stores it under key.
func (a *Adapter) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return a.SetRaw(ctx, key, string(data))
}
