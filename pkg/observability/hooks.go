// Package observability lets a binary attach metrics to the render pipeline
// without the library packages importing a metrics backend.
//
// Library code reports events through the accessors:
//
//	hooks := observability.Pipeline()
//	hooks.OnParseStart(ctx, source)
//	...
//	hooks.OnParseComplete(ctx, source, leaves, time.Since(start), err)
//
// A binary registers one value implementing any of [PipelineHooks],
// [CacheHooks] and [HTTPHooks] at startup; see the prom subpackage:
//
//	observability.Register(metrics)
//
// Until then every accessor returns [Noop].
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives the start and end of each pipeline stage.
type PipelineHooks interface {
	// source is the path or URL the notation came from.
	OnParseStart(ctx context.Context, source string)
	OnParseComplete(ctx context.Context, source string, leafCount int, duration time.Duration, err error)

	OnLayoutStart(ctx context.Context, mode string, nodeCount int)
	OnLayoutComplete(ctx context.Context, mode string, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "source" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives remote tree fetches.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	// OnError is called when no response arrived.
	OnError(ctx context.Context, method, host, path string, err error)
}

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnParseStart(context.Context, string)                                   {}
func (Noop) OnParseComplete(context.Context, string, int, time.Duration, error)     {}
func (Noop) OnLayoutStart(context.Context, string, int)                             {}
func (Noop) OnLayoutComplete(context.Context, string, time.Duration, error)         {}
func (Noop) OnRenderStart(context.Context, []string)                                {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)       {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string, string)                      {}
func (Noop) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (Noop) OnError(context.Context, string, string, string, error)                 {}

var (
	pipelineHooks atomic.Pointer[PipelineHooks]
	cacheHooks    atomic.Pointer[CacheHooks]
	httpHooks     atomic.Pointer[HTTPHooks]
)

// Register installs h for every hook interface it implements and reports
// how many that was. A nil h registers nothing.
func Register(h any) int {
	n := 0
	if p, ok := h.(PipelineHooks); ok {
		pipelineHooks.Store(&p)
		n++
	}
	if c, ok := h.(CacheHooks); ok {
		cacheHooks.Store(&c)
		n++
	}
	if x, ok := h.(HTTPHooks); ok {
		httpHooks.Store(&x)
		n++
	}
	return n
}

// Reset restores [Noop] for every interface.
func Reset() { Register(Noop{}) }

func Pipeline() PipelineHooks { return loadOr[PipelineHooks](&pipelineHooks) }
func Cache() CacheHooks       { return loadOr[CacheHooks](&cacheHooks) }
func HTTP() HTTPHooks         { return loadOr[HTTPHooks](&httpHooks) }

func loadOr[T any](p *atomic.Pointer[T]) T {
	if h := p.Load(); h != nil {
		return *h
	}
	var noop any = Noop{}
	return noop.(T)
}
