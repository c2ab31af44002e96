package i18n

import "slices"

// FallbackLocale is the locale used when the requested locale is unknown or
// its translations cannot be loaded.
const FallbackLocale = "en"

// Direction is the text layout orientation of a locale.
type Direction string

const (
	// DirectionLTR is left-to-right text layout.
	DirectionLTR Direction = "ltr"

	// DirectionRTL is right-to-left text layout.
	DirectionRTL Direction = "rtl"
)

// IsValid reports whether d is one of the two known directions.
func (d Direction) IsValid() bool {
	return d == DirectionLTR || d == DirectionRTL
}

// LocaleInfo describes one supported locale. Values are immutable; the
// registry is fixed at build time.
type LocaleInfo struct {
	// Code is the short locale identifier, e.g. "en" or "ar".
	Code string

	// Name is the English display name.
	Name string

	// NativeName is the locale's name in its own language.
	NativeName string

	// Direction is the registry-level text direction. A loaded translation
	// tree may override it via its reserved "direction" entry.
	Direction Direction
}

var supportedLocales = []LocaleInfo{
	{Code: "en", Name: "English", NativeName: "English", Direction: DirectionLTR},
	{Code: "es", Name: "Spanish", NativeName: "Español", Direction: DirectionLTR},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Direction: DirectionRTL},
	{Code: "he", Name: "Hebrew", NativeName: "עברית", Direction: DirectionRTL},
}

// SupportedLocales returns the fixed list of locales the guide ships with.
// The returned slice is a copy; callers may modify it freely.
func SupportedLocales() []LocaleInfo {
	return slices.Clone(supportedLocales)
}

// LocaleByCode returns the registry entry for code.
func LocaleByCode(code string) (LocaleInfo, bool) {
	for _, info := range supportedLocales {
		if info.Code == code {
			return info, true
		}
	}
	return LocaleInfo{}, false
}
