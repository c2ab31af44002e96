package i18n_test

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/dom"
	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/i18n"
	"github.com/bluntwizard/steam-deck-dub-edition-sub005/pkg/prefs"
)

// fakeSource serves canned locale resources and counts fetches per locale.
type fakeSource struct {
	mu      sync.Mutex
	data    map[string]string
	errs    map[string]error
	fetches map[string]int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		data: map[string]string{
			"en": `{
				"greeting": "Hello {{name}}",
				"nav": {"settings": "Settings", "home": "Home"},
				"count": 5,
				"only_en": "English only"
			}`,
			"es": `{
				"greeting": "Hola {{name}}",
				"nav": {"settings": "Ajustes"}
			}`,
			"ar": `{"nav": {"settings": "الإعدادات"}}`,
			"he": `{"nav": {"settings": "הגדרות"}}`,
		},
		errs:    make(map[string]error),
		fetches: make(map[string]int),
	}
}

func (s *fakeSource) Fetch(_ context.Context, locale string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fetches[locale]++

	if err, ok := s.errs[locale]; ok {
		return nil, err
	}
	if data, ok := s.data[locale]; ok {
		return []byte(data), nil
	}
	return nil, i18n.ErrResourceNotFound
}

func (s *fakeSource) count(locale string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetches[locale]
}

// failDetect is a DetectFunc that fails the test if consulted.
func failDetect(t *testing.T) i18n.DetectFunc {
	t.Helper()
	return func() (language.Tag, error) {
		t.Error("host language detection should not be consulted")
		return language.English, nil
	}
}

func fixedDetect(tag language.Tag) i18n.DetectFunc {
	return func() (language.Tag, error) { return tag, nil }
}

type fixture struct {
	engine *i18n.I18n
	source *fakeSource
	doc    *dom.MemoryDocument
	prefs  *prefs.Memory
}

func newFixture(t *testing.T, opts ...i18n.Option) *fixture {
	t.Helper()

	f := &fixture{
		source: newFakeSource(),
		doc:    dom.NewMemoryDocument(),
		prefs:  prefs.NewMemory(),
	}

	base := []i18n.Option{
		i18n.WithSource(f.source),
		i18n.WithDocument(f.doc),
		i18n.WithPreferences(f.prefs),
		i18n.WithDetectFunc(fixedDetect(language.English)),
	}

	engine, err := i18n.New(append(base, opts...)...)
	require.NoError(t, err)
	f.engine = engine
	return f
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires a source", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New()
		require.ErrorIs(t, err, i18n.ErrNilSource)
	})

	t.Run("rejects nil source option", func(t *testing.T) {
		t.Parallel()
		_, err := i18n.New(i18n.WithSource(nil))
		require.ErrorIs(t, err, i18n.ErrNilSource)
	})

	t.Run("starts on the fallback locale", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		require.Equal(t, "en", f.engine.CurrentLocale())
	})
}

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("persisted preference wins without consulting host language", func(t *testing.T) {
		t.Parallel()
		f := &fixture{source: newFakeSource(), doc: dom.NewMemoryDocument(), prefs: prefs.NewMemory()}
		require.NoError(t, f.prefs.Set("locale", "he"))

		engine, err := i18n.New(
			i18n.WithSource(f.source),
			i18n.WithDocument(f.doc),
			i18n.WithPreferences(f.prefs),
			i18n.WithDetectFunc(failDetect(t)),
		)
		require.NoError(t, err)

		engine.Init(context.Background())

		assert.Equal(t, "he", engine.CurrentLocale())
		assert.Equal(t, i18n.DirectionRTL, engine.Direction())
		assert.Equal(t, "rtl", f.doc.Attr("dir"))
		assert.Equal(t, 1, f.source.count("he"))
	})

	t.Run("unsupported host language resolves to fallback and persists it", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, i18n.WithDetectFunc(fixedDetect(language.MustParse("fr-CA"))))

		f.engine.Init(context.Background())

		assert.Equal(t, "en", f.engine.CurrentLocale())
		assert.Equal(t, "en", f.doc.Attr("lang"))
		assert.Equal(t, "ltr", f.doc.Attr("dir"))

		saved, ok := f.prefs.Get("locale")
		require.True(t, ok)
		assert.Equal(t, "en", saved)
	})

	t.Run("host language reduced to primary subtag", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, i18n.WithDetectFunc(fixedDetect(language.MustParse("es-MX"))))

		f.engine.Init(context.Background())

		assert.Equal(t, "es", f.engine.CurrentLocale())
		saved, _ := f.prefs.Get("locale")
		assert.Equal(t, "es", saved)
	})

	t.Run("detection failure resolves to fallback", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, i18n.WithDetectFunc(func() (language.Tag, error) {
			return language.Und, errors.New("no display server")
		}))

		f.engine.Init(context.Background())
		assert.Equal(t, "en", f.engine.CurrentLocale())
	})

	t.Run("unsupported persisted preference falls through to host language", func(t *testing.T) {
		t.Parallel()
		f := &fixture{source: newFakeSource(), doc: dom.NewMemoryDocument(), prefs: prefs.NewMemory()}
		require.NoError(t, f.prefs.Set("locale", "tlh"))

		engine, err := i18n.New(
			i18n.WithSource(f.source),
			i18n.WithDocument(f.doc),
			i18n.WithPreferences(f.prefs),
			i18n.WithDetectFunc(fixedDetect(language.Arabic)),
		)
		require.NoError(t, err)

		engine.Init(context.Background())
		assert.Equal(t, "ar", engine.CurrentLocale())
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		first := f.engine.Init(context.Background())
		second := f.engine.Init(context.Background())

		require.NotNil(t, first)
		assert.Equal(t, first["greeting"], second["greeting"])
		assert.Equal(t, 1, f.source.count("en"))
	})

	t.Run("loads fallback tree alongside the session locale", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, i18n.WithDetectFunc(fixedDetect(language.Spanish)))

		f.engine.Init(context.Background())

		// es has no only_en key; the fallback tree must already be loaded.
		assert.Equal(t, "English only", f.engine.T("only_en"))
	})

	t.Run("does not notify subscribers", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		notified := false
		defer f.engine.Subscribe(func(i18n.Change) { notified = true })()

		f.engine.Init(context.Background())
		assert.False(t, notified)
	})

	t.Run("source failure degrades to fallback", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t, i18n.WithDetectFunc(fixedDetect(language.Hebrew)))
		f.source.errs["he"] = errors.New("network down")

		f.engine.Init(context.Background())

		// Session locale is still he, but lookups resolve from the fallback tree.
		assert.Equal(t, "he", f.engine.CurrentLocale())
		assert.Equal(t, "Settings", f.engine.T("nav.settings"))
	})
}

func TestSetLocale(t *testing.T) {
	t.Parallel()

	t.Run("unregistered code coerces to fallback and succeeds", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.True(t, f.engine.SetLocale(context.Background(), "xx"))
		assert.Equal(t, "en", f.engine.CurrentLocale())
	})

	t.Run("rtl locale binds direction to the document", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.True(t, f.engine.SetLocale(context.Background(), "ar"))

		assert.Equal(t, i18n.DirectionRTL, f.engine.Direction())
		assert.True(t, f.engine.IsRTL())
		assert.Equal(t, "ar", f.doc.Attr("lang"))
		assert.Equal(t, "rtl", f.doc.Attr("dir"))
		assert.True(t, f.doc.HasClass("locale-ar"))
		assert.True(t, f.doc.HasClass("dir-rtl"))
		assert.True(t, f.doc.HasClass("is-rtl"))
		assert.False(t, f.doc.HasClass("is-ltr"))
	})

	t.Run("persists the choice", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.True(t, f.engine.SetLocale(context.Background(), "es"))

		saved, ok := f.prefs.Get("locale")
		require.True(t, ok)
		assert.Equal(t, "es", saved)
	})

	t.Run("translations load once per locale", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.True(t, f.engine.SetLocale(context.Background(), "en"))
		require.True(t, f.engine.SetLocale(context.Background(), "en"))

		assert.Equal(t, 1, f.source.count("en"))
	})

	t.Run("repeated toggling is stable, not cumulative", func(t *testing.T) {
		t.Parallel()

		toggled := newFixture(t)
		require.True(t, toggled.engine.SetLocale(context.Background(), "es"))
		require.True(t, toggled.engine.SetLocale(context.Background(), "en"))
		require.True(t, toggled.engine.SetLocale(context.Background(), "es"))

		direct := newFixture(t)
		require.True(t, direct.engine.SetLocale(context.Background(), "es"))

		assert.Equal(t, direct.doc.Attr("lang"), toggled.doc.Attr("lang"))
		assert.Equal(t, direct.doc.Attr("dir"), toggled.doc.Attr("dir"))

		wantClasses := direct.doc.Classes()
		gotClasses := toggled.doc.Classes()
		slices.Sort(wantClasses)
		slices.Sort(gotClasses)
		assert.Equal(t, wantClasses, gotClasses)

		assert.Equal(t, "es", toggled.doc.Attr("lang"))
		assert.Equal(t, "ltr", toggled.doc.Attr("dir"))
		assert.True(t, toggled.doc.HasClass("locale-es"))
		assert.True(t, toggled.doc.HasClass("dir-ltr"))
		assert.True(t, toggled.doc.HasClass("is-ltr"))
		assert.False(t, toggled.doc.HasClass("locale-en"))
	})

	t.Run("notifies subscribers with locale and direction", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		var changes []i18n.Change
		defer f.engine.Subscribe(func(c i18n.Change) { changes = append(changes, c) })()

		require.True(t, f.engine.SetLocale(context.Background(), "he"))

		require.Len(t, changes, 1)
		assert.Equal(t, i18n.Change{Locale: "he", Direction: i18n.DirectionRTL}, changes[0])
	})

	t.Run("unsubscribed handlers stop receiving changes", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		calls := 0
		unsubscribe := f.engine.Subscribe(func(i18n.Change) { calls++ })

		require.True(t, f.engine.SetLocale(context.Background(), "es"))
		unsubscribe()
		require.True(t, f.engine.SetLocale(context.Background(), "ar"))

		assert.Equal(t, 1, calls)
	})

	t.Run("load failure still switches and degrades lookups", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.source.errs["ar"] = errors.New("network down")

		require.True(t, f.engine.SetLocale(context.Background(), "ar"))
		assert.Equal(t, "ar", f.engine.CurrentLocale())
		// Registry direction still applies even without a loaded tree.
		assert.Equal(t, i18n.DirectionRTL, f.engine.Direction())
		assert.Equal(t, "Settings", f.engine.T("nav.settings"))
	})

	t.Run("persistence failure returns false", func(t *testing.T) {
		t.Parallel()
		source := newFakeSource()
		engine, err := i18n.New(
			i18n.WithSource(source),
			i18n.WithPreferences(failingStore{}),
		)
		require.NoError(t, err)

		assert.False(t, engine.SetLocale(context.Background(), "es"))
	})

	t.Run("current locale info tracks switches", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		require.True(t, f.engine.SetLocale(context.Background(), "he"))
		info := f.engine.CurrentLocaleInfo()
		assert.Equal(t, "he", info.Code)
		assert.Equal(t, "Hebrew", info.Name)
	})

	t.Run("concurrent switches leave a consistent final state", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		var wg sync.WaitGroup
		for _, code := range []string{"en", "es", "ar", "he", "es", "ar"} {
			code := code
			wg.Add(1)
			go func() {
				defer wg.Done()
				f.engine.SetLocale(context.Background(), code)
			}()
		}
		wg.Wait()

		current := f.engine.CurrentLocale()
		_, ok := i18n.LocaleByCode(current)
		require.True(t, ok)
		assert.Equal(t, current, f.doc.Attr("lang"))
		assert.True(t, f.doc.HasClass("locale-"+current))
	})
}

// failingStore rejects every write.
type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("disk full") }

func TestT(t *testing.T) {
	t.Parallel()

	t.Run("nested dot-path lookup", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "Settings", f.engine.T("nav.settings"))
	})

	t.Run("missing key returns the key", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "a.b.c", f.engine.T("a.b.c"))
	})

	t.Run("traversal through a leaf returns the key", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "greeting.deep", f.engine.T("greeting.deep"))
	})

	t.Run("non-string leaf returns the key", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "count", f.engine.T("count"))
	})

	t.Run("replacements fill placeholders", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "Hello Dev", f.engine.T("greeting", i18n.M{"name": "Dev"}))
	})

	t.Run("missing replacements leave placeholders intact", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())

		assert.Equal(t, "Hello {{name}}", f.engine.T("greeting"))
	})

	t.Run("falls back to the fallback tree", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.engine.Init(context.Background())
		require.True(t, f.engine.SetLocale(context.Background(), "es"))

		// es has no nav.home; en does.
		assert.Equal(t, "Home", f.engine.T("nav.home"))
		// es overrides nav.settings.
		assert.Equal(t, "Ajustes", f.engine.T("nav.settings"))
	})

	t.Run("before any load returns the key", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		assert.Equal(t, "nav.settings", f.engine.T("nav.settings"))
	})
}

func TestTreeDirectionOverride(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.source.data["es"] = `{"direction": "rtl", "nav": {"settings": "Ajustes"}}`

	require.True(t, f.engine.SetLocale(context.Background(), "es"))

	assert.Equal(t, i18n.DirectionRTL, f.engine.Direction())
	assert.Equal(t, "rtl", f.doc.Attr("dir"))
	assert.True(t, f.doc.HasClass("is-rtl"))
}

func TestYAMLResource(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.source.data["es"] = "nav:\n  settings: Ajustes\ngreeting: Hola {{name}}\n"

	require.True(t, f.engine.SetLocale(context.Background(), "es"))

	assert.Equal(t, "Ajustes", f.engine.T("nav.settings"))
	assert.Equal(t, "Hola Dev", f.engine.T("greeting", i18n.M{"name": "Dev"}))
}
