// internal/adapters/out/rtdb/tree.go
package rtdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/db"
)

// Tree is the subset of the Realtime Database used by the repositories.
// Paths are slash separated, relative to the database root.
type Tree interface {
	// Get decodes the value at path into v. ok is false when the path holds nothing.
	Get(ctx context.Context, path string, v any) (ok bool, err error)
	Set(ctx context.Context, path string, v any) error
	// Update writes several children of path in one request.
	Update(ctx context.Context, path string, children map[string]any) error
	// Push stores v under a new time-ordered child key of path and returns the key.
	Push(ctx context.Context, path string, v any) (string, error)
	Delete(ctx context.Context, path string) error
}

// FirebaseTree is Tree over the Firebase Admin SDK database client.
type FirebaseTree struct {
	Client *db.Client
}

func NewFirebaseTree(client *db.Client) *FirebaseTree {
	return &FirebaseTree{Client: client}
}

func (t *FirebaseTree) ref(path string) (*db.Ref, error) {
	if t == nil || t.Client == nil {
		return nil, fmt.Errorf("rtdb: database client is nil")
	}
	if err := validatePath(path); err != nil {
		return nil, err
	}
	return t.Client.NewRef(path), nil
}

func (t *FirebaseTree) Get(ctx context.Context, path string, v any) (bool, error) {
	ref, err := t.ref(path)
	if err != nil {
		return false, err
	}
	var raw json.RawMessage
	if err := ref.Get(ctx, &raw); err != nil {
		return false, fmt.Errorf("rtdb: get %s: %w", path, err)
	}
	return decodeRaw(raw, v)
}

func (t *FirebaseTree) Set(ctx context.Context, path string, v any) error {
	ref, err := t.ref(path)
	if err != nil {
		return err
	}
	if err := ref.Set(ctx, v); err != nil {
		return fmt.Errorf("rtdb: set %s: %w", path, err)
	}
	return nil
}

func (t *FirebaseTree) Update(ctx context.Context, path string, children map[string]any) error {
	ref, err := t.ref(path)
	if err != nil {
		return err
	}
	if len(children) == 0 {
		return nil
	}
	if err := ref.Update(ctx, children); err != nil {
		return fmt.Errorf("rtdb: update %s: %w", path, err)
	}
	return nil
}

func (t *FirebaseTree) Push(ctx context.Context, path string, v any) (string, error) {
	ref, err := t.ref(path)
	if err != nil {
		return "", err
	}
	child, err := ref.Push(ctx, v)
	if err != nil {
		return "", fmt.Errorf("rtdb: push %s: %w", path, err)
	}
	return child.Key, nil
}

func (t *FirebaseTree) Delete(ctx context.Context, path string) error {
	ref, err := t.ref(path)
	if err != nil {
		return err
	}
	if err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("rtdb: delete %s: %w", path, err)
	}
	return nil
}

// decodeRaw treats an empty body and JSON null as "nothing here".
func decodeRaw(raw json.RawMessage, v any) (bool, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("rtdb: decode: %w", err)
	}
	return true, nil
}

// validatePath rejects empty segments and the characters RTDB keys cannot contain.
func validatePath(path string) error {
	p := strings.Trim(path, "/")
	if p == "" {
		return fmt.Errorf("rtdb: empty path")
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" {
			return fmt.Errorf("rtdb: empty segment in %q", path)
		}
		if strings.ContainsAny(seg, ".#$[]") {
			return fmt.Errorf("rtdb: invalid key %q", seg)
		}
	}
	return nil
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.Trim(p, "/"); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}
