package dom

import (
	"slices"
	"strings"
	"sync"
)

// Document is the surface the locale and theme engines write to.
// Attribute operations target the root element; class operations target the
// body. Implementations must tolerate repeated and redundant calls - applying
// the same attribute or class twice is not an error.
type Document interface {
	// SetAttr sets an attribute on the root element, replacing any previous value.
	SetAttr(name, value string)

	// Attr returns the current value of a root element attribute,
	// or an empty string if it was never set.
	Attr(name string) string

	// AddClass adds a class to the body. Adding an existing class is a no-op.
	AddClass(class string)

	// RemoveClass removes a class from the body if present.
	RemoveClass(class string)

	// RemoveClassPrefix removes every body class that starts with prefix.
	// Used to clear stale locale-*/dir-* markers before applying fresh ones.
	RemoveClassPrefix(prefix string)

	// HasClass reports whether the body currently carries the class.
	HasClass(class string) bool
}

// MemoryDocument is an in-memory Document for tests and headless hosts.
// It is safe for concurrent use.
type MemoryDocument struct {
	mu      sync.RWMutex
	attrs   map[string]string
	classes []string
}

// NewMemoryDocument creates an empty in-memory document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{
		attrs: make(map[string]string),
	}
}

func (d *MemoryDocument) SetAttr(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attrs[name] = value
}

func (d *MemoryDocument) Attr(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.attrs[name]
}

func (d *MemoryDocument) AddClass(class string) {
	if class == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if !slices.Contains(d.classes, class) {
		d.classes = append(d.classes, class)
	}
}

func (d *MemoryDocument) RemoveClass(class string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes = slices.DeleteFunc(d.classes, func(c string) bool {
		return c == class
	})
}

func (d *MemoryDocument) RemoveClassPrefix(prefix string) {
	if prefix == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.classes = slices.DeleteFunc(d.classes, func(c string) bool {
		return strings.HasPrefix(c, prefix)
	})
}

func (d *MemoryDocument) HasClass(class string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Contains(d.classes, class)
}

// Classes returns a copy of the current body class list in insertion order.
func (d *MemoryDocument) Classes() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.classes)
}
