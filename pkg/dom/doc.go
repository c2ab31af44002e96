// Package dom abstracts the host document that locale and theme state is
// applied to.
//
// The engine packages (i18n, theme) never talk to a concrete UI toolkit or
// browser shell directly. They write language/direction attributes and marker
// classes through the [Document] interface, and the host embedding the guide
// (webview shell, wasm frontend, test harness) provides the implementation.
//
// [MemoryDocument] is a complete in-memory implementation used by tests and
// headless hosts:
//
//	doc := dom.NewMemoryDocument()
//	doc.SetAttr("lang", "ar")
//	doc.AddClass("is-rtl")
//
//	doc.Attr("lang")       // "ar"
//	doc.HasClass("is-rtl") // true
package dom
