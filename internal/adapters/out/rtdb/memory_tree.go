// internal/adapters/out/rtdb/memory_tree.go
package rtdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryTree is an in-process Tree (REMOTE_STORE=memory, tests).
// Values are kept as decoded JSON, so they round-trip the same way as the real database:
// writing null or an empty object/array removes the node.
type MemoryTree struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryTree() *MemoryTree {
	return &MemoryTree{root: map[string]any{}}
}

func (t *MemoryTree) Get(ctx context.Context, path string, v any) (bool, error) {
	if err := validatePath(path); err != nil {
		return false, err
	}
	t.mu.RLock()
	node, ok := t.lookup(segments(path))
	var raw []byte
	var err error
	if ok {
		raw, err = json.Marshal(arrayify(node))
	}
	t.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("rtdb: encode %s: %w", path, err)
	}
	return decodeRaw(raw, v)
}

func (t *MemoryTree) Set(ctx context.Context, path string, v any) error {
	if err := validatePath(path); err != nil {
		return err
	}
	node, err := toNode(v)
	if err != nil {
		return fmt.Errorf("rtdb: set %s: %w", path, err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.put(segments(path), node)
	return nil
}

func (t *MemoryTree) Update(ctx context.Context, path string, children map[string]any) error {
	if err := validatePath(path); err != nil {
		return err
	}
	nodes := make(map[string]any, len(children))
	for k, v := range children {
		if err := validatePath(join(path, k)); err != nil {
			return err
		}
		node, err := toNode(v)
		if err != nil {
			return fmt.Errorf("rtdb: update %s/%s: %w", path, k, err)
		}
		nodes[k] = node
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, node := range nodes {
		t.put(segments(join(path, k)), node)
	}
	return nil
}

func (t *MemoryTree) Push(ctx context.Context, path string, v any) (string, error) {
	if err := validatePath(path); err != nil {
		return "", err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	key := id.String()
	if err := t.Set(ctx, join(path, key), v); err != nil {
		return "", err
	}
	return key, nil
}

func (t *MemoryTree) Delete(ctx context.Context, path string) error {
	if err := validatePath(path); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.put(segments(path), nil)
	return nil
}

func (t *MemoryTree) lookup(segs []string) (any, bool) {
	var node any = t.root
	for _, s := range segs {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, false
		}
		node, ok = m[s]
		if !ok {
			return nil, false
		}
	}
	return node, true
}

// put writes node at segs. nil deletes and prunes parents that became empty.
func (t *MemoryTree) put(segs []string, node any) {
	if t.root == nil {
		t.root = map[string]any{}
	}
	parents := make([]map[string]any, 0, len(segs))
	cur := t.root
	for _, s := range segs[:len(segs)-1] {
		parents = append(parents, cur)
		next, ok := cur[s].(map[string]any)
		if !ok {
			if node == nil {
				return
			}
			next = map[string]any{}
			cur[s] = next
		}
		cur = next
	}

	last := segs[len(segs)-1]
	if node == nil {
		delete(cur, last)
	} else {
		cur[last] = node
	}

	for i := len(parents) - 1; i >= 0 && len(cur) == 0; i-- {
		delete(parents[i], segs[i])
		cur = parents[i]
	}
}

// arrayify turns objects keyed "0".."n-1" back into arrays, as RTDB does on read.
func arrayify(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	out := make(map[string]any, len(m))
	for k, child := range m {
		out[k] = arrayify(child)
	}
	arr := make([]any, len(out))
	for i := range arr {
		child, ok := out[strconv.Itoa(i)]
		if !ok {
			return out
		}
		arr[i] = child
	}
	return arr
}

func segments(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}

// toNode converts v to decoded JSON. Arrays become index-keyed objects like RTDB stores them.
func toNode(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(b, &decoded); err != nil {
		return nil, err
	}
	return prune(decoded), nil
}

func prune(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, child := range x {
			if c := prune(child); c != nil {
				out[k] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	case []any:
		out := make(map[string]any, len(x))
		for i, child := range x {
			if c := prune(child); c != nil {
				out[strconv.Itoa(i)] = c
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return v
	}
}
