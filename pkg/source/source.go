// Package source loads Newick text from a local file, standard input or an
// http(s) URL.
//
// Remote sources are fetched with retries on transient failures and cached
// by URL when the [Loader] has a cache:
//
//	l := source.New(source.WithCache(c, cache.NewDefaultKeyer()))
//	text, err := l.Load(ctx, "https://example.com/life.txt", false)
package source

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/treeoflife/pkg/buildinfo"
	"github.com/matzehuels/treeoflife/pkg/cache"
	"github.com/matzehuels/treeoflife/pkg/errors"
	"github.com/matzehuels/treeoflife/pkg/httputil"
	"github.com/matzehuels/treeoflife/pkg/observability"
)

// Stdin is the source name that reads standard input.
const Stdin = "-"

const httpTimeout = 10 * time.Second

// Loader resolves source names to tree notation.
type Loader struct {
	http    *http.Client
	cache   cache.Cache
	keyer   cache.Keyer
	stdin   io.Reader
	backoff httputil.Backoff
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.http = c }
}

// WithCache caches fetched URLs in c under keys from keyer.
func WithCache(c cache.Cache, keyer cache.Keyer) Option {
	return func(l *Loader) {
		l.cache = c
		if keyer != nil {
			l.keyer = keyer
		}
	}
}

// WithStdin sets the reader used for the "-" source.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) { l.stdin = r }
}

// WithBackoff sets the retry schedule for remote fetches.
func WithBackoff(b httputil.Backoff) Option {
	return func(l *Loader) { l.backoff = b }
}

// New creates a Loader. Without options it reads os.Stdin, does not cache
// and fetches with [httputil.DefaultBackoff].
func New(opts ...Option) *Loader {
	l := &Loader{
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		stdin:   os.Stdin,
		backoff: httputil.DefaultBackoff,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether src names an http(s) URL.
func IsRemote(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load returns the notation named by src. refresh bypasses the cache for
// remote sources.
func (l *Loader) Load(ctx context.Context, src string, refresh bool) ([]byte, error) {
	if err := errors.ValidateSource(src); err != nil {
		return nil, err
	}
	switch {
	case src == Stdin:
		data, err := io.ReadAll(io.LimitReader(l.stdin, errors.MaxTreeBytes+1))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stdin")
		}
		return data, errors.ValidateTreeText(data)
	case IsRemote(src):
		return l.fetchCached(ctx, src, refresh)
	}

	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "tree file %s", src)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "read %s", src)
	}
	return data, nil
}

func (l *Loader) fetchCached(ctx context.Context, rawURL string, refresh bool) ([]byte, error) {
	key := l.keyer.SourceKey(rawURL)
	if !refresh {
		if data, hit, err := l.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "source")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "source")
	}

	var data []byte
	err := l.backoff.Do(ctx, func(ctx context.Context) error {
		var err error
		data, err = l.fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := errors.ValidateTreeText(data); err != nil {
		return nil, err
	}

	if err := l.cache.Set(ctx, key, data, cache.TTLSource); err == nil {
		observability.Cache().OnCacheSet(ctx, "source", len(data))
	}
	return data, nil
}

func (l *Loader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse URL")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "build request")
	}
	req.Header.Set("Accept", "text/plain")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := l.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		return nil, httputil.Temporary(errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(rawURL, resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, errors.MaxTreeBytes+1))
	if err != nil {
		return nil, httputil.Temporary(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", rawURL))
	}
	return data, nil
}

// checkStatus maps a response status to an error. 5xx and 429 are
// temporary; a Retry-After header on them sets the next wait.
func checkStatus(rawURL string, resp *http.Response) error {
	code := resp.StatusCode
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: status %d", rawURL, code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &httputil.TemporaryError{
			Err:   errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, code),
			After: httputil.RetryAfter(resp.Header, time.Now()),
		}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", rawURL, code)
	}
}

// Name returns a short display name for src: the base name of a path or
// URL, or "stdin".
func Name(src string) string {
	if src == Stdin {
		return "stdin"
	}
	if i := strings.LastIndexAny(src, `/\`); i >= 0 && i < len(src)-1 {
		return src[i+1:]
	}
	return src
}
