package i18n

import "errors"

var (
	ErrNilSource         = errors.New("i18n: translation source cannot be nil")
	ErrInvalidLocaleCode = errors.New("i18n: invalid locale code")
	ErrResourceNotFound  = errors.New("i18n: translation resource not found")
	ErrMalformedResource = errors.New("i18n: malformed translation resource")
	ErrUnexpectedStatus  = errors.New("i18n: unexpected response status")
)
