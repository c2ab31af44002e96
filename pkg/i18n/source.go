package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResourceSize caps how much of a translation resource is read.
// Locale files are a few kilobytes; anything near this limit is broken.
const maxResourceSize = 4 << 20 // 4MB

// Source fetches the raw translation resource for a locale from wherever the
// host keeps its assets. Implementations do not parse or cache; both are the
// loader's job.
type Source interface {
	Fetch(ctx context.Context, locale string) ([]byte, error)
}

// validLocaleCode rejects locale strings that could escape the conventional
// per-locale resource path. The loader sits below registry validation, so it
// cannot assume its input came from the registry.
func validLocaleCode(locale string) bool {
	if locale == "" || len(locale) > 35 {
		return false
	}
	for _, r := range locale {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return true
}

// FSSource fetches translation resources from an fs.FS. It looks for
// {locale}.json first, then {locale}.yaml and {locale}.yml.
//
// Typical use is an embedded locales directory:
//
//	//go:embed locales
//	var localesFS embed.FS
//
//	sub, _ := fs.Sub(localesFS, "locales")
//	src := i18n.NewFSSource(sub)
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a Source reading locale files from the root of fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

func (s *FSSource) Fetch(_ context.Context, locale string) ([]byte, error) {
	if !validLocaleCode(locale) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocaleCode, locale)
	}

	for _, name := range []string{locale + ".json", locale + ".yaml", locale + ".yml"} {
		data, err := fs.ReadFile(s.fsys, name)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("i18n: reading %q: %w", name, err)
		}
	}

	return nil, fmt.Errorf("%w: locale %q", ErrResourceNotFound, locale)
}

// HTTPSource fetches translation resources over HTTP using the conventional
// path {base}/locales/{locale}.json.
type HTTPSource struct {
	client  *http.Client
	baseURL string
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPSource creates a Source fetching locale files from baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPSourceOption) (*HTTPSource, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("i18n: invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("i18n: base URL %q must use http or https", baseURL)
	}

	s := &HTTPSource{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *HTTPSource) Fetch(ctx context.Context, locale string) ([]byte, error) {
	if !validLocaleCode(locale) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLocaleCode, locale)
	}

	resourceURL := s.baseURL + "/locales/" + locale + ".json"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("i18n: creating request for %q: %w", resourceURL, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("i18n: fetching %q: %w", resourceURL, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: locale %q", ErrResourceNotFound, locale)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d fetching %q", ErrUnexpectedStatus, resp.StatusCode, resourceURL)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResourceSize))
	if err != nil {
		return nil, fmt.Errorf("i18n: reading response for %q: %w", resourceURL, err)
	}

	return data, nil
}
