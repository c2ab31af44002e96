// Package prefs provides the persistent key-value preference store consumed
// by the locale and theme engines.
//
// The engines only depend on the [Store] interface; the host decides where
// preferences actually live. Two implementations are included: [Memory] for
// tests, and [File], which keeps preferences in a single JSON file and writes
// it atomically (write to a temp file, then rename).
//
//	store, err := prefs.NewFile(filepath.Join(cfgDir, "preferences.json"))
//	if err != nil {
//	    return err
//	}
//
//	if err := store.Set("locale", "he"); err != nil {
//	    log.Error("persist preference", "error", err)
//	}
package prefs
