// Package i18n provides locale resolution, translation lookup with fallback,
// and right-to-left direction management for the guide UI.
//
// The engine is built around one [I18n] context object constructed at
// application startup and injected into every component that renders text.
// It resolves the startup locale from the persisted preference, then the
// host environment language, then the fallback locale ("en"); loads
// translation trees through a pluggable [Source]; binds lang/dir attributes
// and marker classes to the host document; and broadcasts locale changes to
// explicit subscribers.
//
// # Basic Usage
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	sub, _ := fs.Sub(localesFS, "locales")
//
//	engine, err := i18n.New(
//		i18n.WithSource(i18n.NewFSSource(sub)),
//		i18n.WithPreferences(store),
//		i18n.WithDocument(doc),
//		i18n.WithLogger(log),
//	)
//	if err != nil {
//		// only misconfiguration (e.g. missing source) fails here
//		return err
//	}
//
//	engine.Init(ctx)
//
//	engine.T("nav.settings")                    // "Settings"
//	engine.T("greeting", i18n.M{"name": "Dev"}) // "Hello Dev"
//
// # Switching Locales
//
// SetLocale validates against the locale registry, loads translations before
// touching the document, persists the choice, and notifies subscribers:
//
//	unsubscribe := engine.Subscribe(func(c i18n.Change) {
//		selector.Refresh(c.Locale, c.Direction)
//	})
//	defer unsubscribe()
//
//	engine.SetLocale(ctx, "ar")
//	engine.IsRTL() // true; document now carries dir="rtl" and class is-rtl
//
// # Degradation Policy
//
// Nothing on the public surface returns an error for bad keys, bad locale
// codes, or failed loads. A missing translation renders as its raw key, an
// unknown locale coerces to the fallback, and a failed resource load chains
// to the fallback locale once. The worst a user sees is an untranslated key;
// the page never breaks. Failures are visible through the configured logger
// and through SetLocale's boolean result.
//
// # Translation Files
//
// A translation resource is a nested object of string leaves, addressed with
// dot-path keys ("nav.settings"). The reserved top-level "direction" entry
// overrides the registry direction for that locale. Sources fetch resources
// from an fs.FS ([FSSource]), over HTTP ([HTTPSource]), or from S3-compatible
// object storage ([S3Source]); loaded trees are cached for the session.
package i18n
