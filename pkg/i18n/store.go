package i18n

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// directionKey is the reserved top-level tree entry that overrides the
// registry direction for a locale.
const directionKey = "direction"

// Tree is a nested translation mapping for one locale. Interior nodes are
// maps, leaves are strings. Trees are replaced wholesale on load and never
// partially mutated.
type Tree map[string]any

// lookup resolves a dot-separated key path to a string leaf.
// It fails if any segment is missing, an intermediate node is not a map,
// or the leaf is not a string.
func (t Tree) lookup(key string) (string, bool) {
	if t == nil || key == "" {
		return "", false
	}

	var node any = map[string]any(t)
	for _, segment := range strings.Split(key, ".") {
		m, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		if node, ok = m[segment]; !ok {
			return "", false
		}
	}

	leaf, ok := node.(string)
	return leaf, ok
}

// direction returns the tree's own direction override, if present and valid.
func (t Tree) direction() (Direction, bool) {
	raw, ok := t[directionKey].(string)
	if !ok {
		return "", false
	}
	dir := Direction(raw)
	return dir, dir.IsValid()
}

// decodeTree parses a translation resource. JSON is the wire convention;
// YAML is accepted for locally authored files.
func decodeTree(data []byte) (Tree, error) {
	var tree map[string]any

	if json.Valid(data) {
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedResource, err)
		}
		return tree, nil
	}

	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedResource, err)
	}
	return tree, nil
}

// treeStore caches loaded translation trees per locale. Entries are only
// ever added or replaced, never evicted; the locale set is small and fixed.
type treeStore struct {
	mu    sync.RWMutex
	trees map[string]Tree
}

func newTreeStore() *treeStore {
	return &treeStore{trees: make(map[string]Tree)}
}

func (s *treeStore) get(locale string) (Tree, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tree, ok := s.trees[locale]
	return tree, ok
}

func (s *treeStore) has(locale string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.trees[locale]
	return ok
}

func (s *treeStore) put(locale string, tree Tree) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trees[locale] = tree
}
