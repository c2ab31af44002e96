// Package theme manages the guide's color-scheme preference.
//
// It is the simpler sibling of the i18n engine: one string of state, no
// fallback chain, no resource loading. A [Manager] validates the requested
// theme, persists it, applies a theme-<name> marker class to the host
// document, and broadcasts a theme-changed signal to explicit subscribers -
// the same contract the locale engine uses, so UI components consume both the
// same way.
package theme

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/dom"
	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/prefs"
)

// DefaultTheme is used when no preference is persisted.
const DefaultTheme = "dark"

// defaultPreferenceKey is where the chosen theme is persisted.
const defaultPreferenceKey = "theme"

// supportedThemes is the fixed set of color schemes the guide ships with.
var supportedThemes = []string{"dark", "light", "high-contrast"}

// SupportedThemes returns the fixed list of theme names.
func SupportedThemes() []string {
	return slices.Clone(supportedThemes)
}

// Change describes a completed theme switch.
type Change struct {
	Theme string
}

// Manager owns the active color scheme. Like the locale engine, its public
// surface never returns errors for bad input: unknown themes are logged and
// refused, and callers observe the outcome through the boolean result and
// the change signal.
type Manager struct {
	mu      sync.RWMutex
	current string

	prefs   prefs.Store
	doc     dom.Document
	log     *slog.Logger
	prefKey string

	subsMu sync.RWMutex
	subs   map[string]func(Change)
}

// Option configures the Manager during construction.
type Option func(*Manager)

// WithPreferences sets the persistent preference store.
func WithPreferences(store prefs.Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.prefs = store
		}
	}
}

// WithDocument sets the host document the theme class is applied to.
func WithDocument(doc dom.Document) Option {
	return func(m *Manager) {
		if doc != nil {
			m.doc = doc
		}
	}
}

// WithLogger sets the logger for rejected switches and persistence failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithPreferenceKey overrides the preference-store key the theme is saved under.
func WithPreferenceKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.prefKey = key
		}
	}
}

// New creates a theme manager. The active theme starts from the persisted
// preference when it names a supported theme, else from DefaultTheme, and is
// applied to the document immediately.
func New(opts ...Option) *Manager {
	m := &Manager{
		current: DefaultTheme,
		prefs:   prefs.NewMemory(),
		doc:     dom.NewMemoryDocument(),
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		prefKey: defaultPreferenceKey,
		subs:    make(map[string]func(Change)),
	}

	for _, opt := range opts {
		opt(m)
	}

	if saved, ok := m.prefs.Get(m.prefKey); ok {
		if slices.Contains(supportedThemes, saved) {
			m.current = saved
		} else {
			m.log.Warn("ignoring persisted theme not in registry", "theme", saved)
		}
	}

	m.apply(m.current)

	return m
}

// Set switches the active theme. Unknown names are logged and rejected.
// On success the choice is persisted, the document class updated, and
// subscribers notified.
func (m *Manager) Set(name string) bool {
	if !slices.Contains(supportedThemes, name) {
		m.log.Warn("unsupported theme requested", "theme", name)
		return false
	}

	m.mu.Lock()
	m.current = name

	if err := m.prefs.Set(m.prefKey, name); err != nil {
		m.mu.Unlock()
		m.log.Error("persisting theme preference failed", "theme", name, "error", err)
		return false
	}

	m.apply(name)
	m.mu.Unlock()

	m.broadcast(Change{Theme: name})
	return true
}

// Current returns the active theme name.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Subscribe registers fn to run after every successful Set. The returned
// function unregisters it.
func (m *Manager) Subscribe(fn func(Change)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.NewString()

	m.subsMu.Lock()
	m.subs[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subs, id)
		m.subsMu.Unlock()
	}
}

func (m *Manager) apply(name string) {
	m.doc.RemoveClassPrefix("theme-")
	m.doc.AddClass("theme-" + name)
}

func (m *Manager) broadcast(change Change) {
	m.subsMu.RLock()
	handlers := make([]func(Change), 0, len(m.subs))
	for _, fn := range m.subs {
		handlers = append(handlers, fn)
	}
	m.subsMu.RUnlock()

	for _, fn := range handlers {
		fn(change)
	}
}
