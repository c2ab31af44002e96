package i18n

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/Xuanwo/go-locale"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"

	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/dom"
	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/prefs"
)

// defaultPreferenceKey is where the chosen locale is persisted in the
// preference store.
const defaultPreferenceKey = "locale"

// DetectFunc reports the host environment's language preference.
type DetectFunc func() (language.Tag, error)

// I18n is the locale resolution and application engine. It owns the current
// locale, the translation cache, document binding, and change notification.
//
// Construct one instance at application startup and inject it into every
// component that translates or queries locale state. All methods are safe for
// concurrent use; T and the accessors never block on IO.
//
// Nothing on the public surface returns an error for bad keys, bad locale
// codes, or failed resource loads. Failures are logged and the engine
// degrades: unknown locales coerce to the fallback, missing translations
// render as their raw key. Callers observe failure only through logs and
// SetLocale's boolean result.
type I18n struct {
	mu       sync.RWMutex
	current  string
	seq      uint64 // next locale-switch sequence number
	applied  uint64 // sequence number of the last applied switch
	initOnce sync.Once

	store    *treeStore
	loads    singleflight.Group
	source   Source
	prefs    prefs.Store
	doc      dom.Document
	log      *slog.Logger
	detect   DetectFunc
	notifier *notifier
	prefKey  string
}

// Option configures the I18n engine during construction.
type Option func(*I18n) error

// WithSource sets the translation resource source. Required.
func WithSource(source Source) Option {
	return func(i *I18n) error {
		if source == nil {
			return ErrNilSource
		}
		i.source = source
		return nil
	}
}

// WithPreferences sets the persistent preference store.
// Defaults to an in-memory store (preference lost at process exit).
func WithPreferences(store prefs.Store) Option {
	return func(i *I18n) error {
		if store != nil {
			i.prefs = store
		}
		return nil
	}
}

// WithDocument sets the host document the engine binds locale state to.
// Defaults to an in-memory document, which makes headless use safe.
func WithDocument(doc dom.Document) Option {
	return func(i *I18n) error {
		if doc != nil {
			i.doc = doc
		}
		return nil
	}
}

// WithLogger sets the logger for degradation warnings and load failures.
// Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(i *I18n) error {
		if log != nil {
			i.log = log
		}
		return nil
	}
}

// WithDetectFunc overrides host language detection. The default asks the
// operating system via go-locale.
func WithDetectFunc(fn DetectFunc) Option {
	return func(i *I18n) error {
		if fn != nil {
			i.detect = fn
		}
		return nil
	}
}

// WithPreferenceKey overrides the preference-store key the locale is saved under.
func WithPreferenceKey(key string) Option {
	return func(i *I18n) error {
		if key != "" {
			i.prefKey = key
		}
		return nil
	}
}

// New creates an I18n engine with the given options. A translation source is
// required; everything else has safe defaults.
func New(opts ...Option) (*I18n, error) {
	i := &I18n{
		current:  FallbackLocale,
		store:    newTreeStore(),
		prefs:    prefs.NewMemory(),
		doc:      dom.NewMemoryDocument(),
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		detect:   locale.Detect,
		notifier: newNotifier(),
		prefKey:  defaultPreferenceKey,
	}

	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}

	if i.source == nil {
		return nil, ErrNilSource
	}

	return i, nil
}

// Init resolves the initial locale, loads its translations, and binds it to
// the document. The resolution order is: persisted preference, host
// environment language (reduced to its primary subtag), fallback locale.
// The resolved choice is persisted so the next session starts from it.
//
// Init is idempotent; subsequent calls return the current locale's tree
// without side effects. It never fails outward: any trouble during
// resolution or loading degrades to the fallback locale.
func (i *I18n) Init(ctx context.Context) Tree {
	i.initOnce.Do(func() {
		code := i.resolveInitialLocale()
		i.activate(ctx, code, false)

		// The fallback tree backs every T() miss, so make sure it is in the
		// store even when the session starts in another locale.
		if code != FallbackLocale {
			i.load(ctx, FallbackLocale)
		}
	})

	tree, _ := i.store.get(i.CurrentLocale())
	return tree
}

// resolveInitialLocale picks the startup locale without touching the store.
func (i *I18n) resolveInitialLocale() string {
	if code, ok := i.prefs.Get(i.prefKey); ok {
		if _, valid := LocaleByCode(code); valid {
			return code
		}
		i.log.Warn("ignoring persisted locale not in registry", "locale", code)
	}

	tag, err := i.detect()
	if err != nil {
		i.log.Warn("host language detection failed", "error", err)
		return FallbackLocale
	}

	base, _ := tag.Base()
	if code := base.String(); code != "" {
		if _, ok := LocaleByCode(code); ok {
			return code
		}
		i.log.Info("host language not supported, using fallback", "language", tag.String())
	}

	return FallbackLocale
}

// SetLocale switches the active locale. Codes outside the registry are
// coerced to the fallback locale with a logged warning rather than rejected.
// Translations are loaded before the document is updated, the choice is
// persisted, and subscribers are notified with the new locale and direction.
//
// It returns false only when the switch could not complete (for example the
// preference store failed to persist the choice); resource-load failures
// degrade silently and still count as success.
func (i *I18n) SetLocale(ctx context.Context, code string) bool {
	if _, ok := LocaleByCode(code); !ok {
		i.log.Warn("unsupported locale requested, using fallback",
			"locale", code, "fallback", FallbackLocale)
		code = FallbackLocale
	}

	return i.activate(ctx, code, true)
}

// activate performs the shared switch sequence: load, then apply, then
// notify. Each call takes a sequence number before its load starts; a call
// that finishes after a newer one has applied discards its completion, so
// overlapping switches cannot leave the document on a stale locale.
func (i *I18n) activate(ctx context.Context, code string, notify bool) bool {
	i.mu.Lock()
	i.seq++
	seq := i.seq
	i.mu.Unlock()

	i.load(ctx, code)

	i.mu.Lock()
	if seq <= i.applied {
		i.mu.Unlock()
		i.log.Debug("locale switch superseded", "locale", code)
		return true
	}
	i.applied = seq
	i.current = code

	if err := i.prefs.Set(i.prefKey, code); err != nil {
		i.mu.Unlock()
		i.log.Error("persisting locale preference failed",
			"locale", code, "error", err)
		return false
	}

	dir := i.applyToDocument(code)
	i.mu.Unlock()

	if notify {
		i.notifier.broadcast(Change{Locale: code, Direction: dir})
	}

	return true
}

// load ensures the store has a tree for locale. A cache hit returns
// immediately; concurrent loads of the same locale share one fetch. Fetch or
// parse failures are logged and chain to the fallback locale exactly once.
func (i *I18n) load(ctx context.Context, code string) {
	if i.store.has(code) {
		return
	}

	i.loads.Do(code, func() (any, error) { //nolint:errcheck
		if i.store.has(code) {
			return nil, nil
		}

		data, err := i.source.Fetch(ctx, code)
		if err != nil {
			i.log.Error("loading translations failed", "locale", code, "error", err)
			if code != FallbackLocale {
				i.load(ctx, FallbackLocale)
			}
			return nil, nil
		}

		tree, err := decodeTree(data)
		if err != nil {
			i.log.Error("parsing translations failed", "locale", code, "error", err)
			if code != FallbackLocale {
				i.load(ctx, FallbackLocale)
			}
			return nil, nil
		}

		i.store.put(code, tree)
		return nil, nil
	})
}

// applyToDocument writes lang/dir attributes and marker classes for code.
// Stale locale-*/dir-* markers are cleared first; is-rtl/is-ltr stay
// mutually exclusive. Called with i.mu held.
func (i *I18n) applyToDocument(code string) Direction {
	dir := i.directionFor(code)

	i.doc.SetAttr("lang", code)
	i.doc.SetAttr("dir", string(dir))

	i.doc.RemoveClassPrefix("locale-")
	i.doc.RemoveClassPrefix("dir-")
	i.doc.AddClass("locale-" + code)
	i.doc.AddClass("dir-" + string(dir))

	if dir == DirectionRTL {
		i.doc.RemoveClass("is-ltr")
		i.doc.AddClass("is-rtl")
	} else {
		i.doc.RemoveClass("is-rtl")
		i.doc.AddClass("is-ltr")
	}

	return dir
}

// directionFor derives the effective direction for code: the loaded tree's
// own direction entry wins, then the registry entry, then ltr.
func (i *I18n) directionFor(code string) Direction {
	if tree, ok := i.store.get(code); ok {
		if dir, ok := tree.direction(); ok {
			return dir
		}
	}

	if info, ok := LocaleByCode(code); ok {
		return info.Direction
	}

	return DirectionLTR
}

// T resolves a dot-path key in the current locale's tree, retrying against
// the fallback locale's tree on a miss. An unresolved key is returned
// verbatim so a broken translation shows up on screen instead of breaking
// rendering. Replacements fill {{name}} placeholders in the resolved string.
func (i *I18n) T(key string, replacements ...M) string {
	current := i.CurrentLocale()

	if tree, ok := i.store.get(current); ok {
		if value, ok := tree.lookup(key); ok {
			return replaceWithMerge(value, replacements...)
		}
	}

	if current != FallbackLocale {
		if tree, ok := i.store.get(FallbackLocale); ok {
			if value, ok := tree.lookup(key); ok {
				return replaceWithMerge(value, replacements...)
			}
		}
	}

	i.log.Warn("translation key not found", "key", key, "locale", current)
	return key
}

// CurrentLocale returns the active locale code.
func (i *I18n) CurrentLocale() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.current
}

// CurrentLocaleInfo returns the registry entry for the active locale.
func (i *I18n) CurrentLocaleInfo() LocaleInfo {
	info, _ := LocaleByCode(i.CurrentLocale())
	return info
}

// Direction returns the effective direction of the active locale.
func (i *I18n) Direction() Direction {
	return i.directionFor(i.CurrentLocale())
}

// IsRTL reports whether the active locale lays out right-to-left.
func (i *I18n) IsRTL() bool {
	return i.Direction() == DirectionRTL
}

// Subscribe registers fn to run after every successful SetLocale. The
// returned function unregisters it. Handlers run synchronously on the
// switching goroutine; keep them short.
func (i *I18n) Subscribe(fn func(Change)) (unsubscribe func()) {
	return i.notifier.subscribe(fn)
}
