package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tracesplit/pkg/buildinfo"
	"github.com/matzehuels/tracesplit/pkg/cache"
	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/observability"
	"github.com/matzehuels/tracesplit/pkg/schema"
	"github.com/matzehuels/tracesplit/pkg/trace"
	"github.com/matzehuels/tracesplit/pkg/transform"
	"github.com/matzehuels/tracesplit/pkg/transform/all"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for its cache, logger and registries - it
// doesn't store results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	schema     *schema.Registry
	transforms *transform.Registry
}

// NewRunner creates a runner with the built-in trace types and transforms.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	r := &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		schema: schema.NewBuiltinRegistry(),
	}
	// the built-in modules have valid, distinct names
	_ = r.UseTransforms(all.Registry())
	return r
}

// UseTransforms replaces the runner's transform modules and declares their
// attributes with the runner's schema.
func (r *Runner) UseTransforms(t *transform.Registry) error {
	if err := t.DeclareAttributes(r.schema); err != nil {
		return err
	}
	r.transforms = t
	return nil
}

// Schema returns the trace type declarations the runner resolves against.
func (r *Runner) Schema() *schema.Registry { return r.schema }

// Transforms returns the runner's transform modules.
func (r *Runner) Transforms() *transform.Registry { return r.transforms }

// Execute resolves and transforms data, serving the result from the cache
// when the same input was split before.
func (r *Runner) Execute(ctx context.Context, data []trace.Trace, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	result := &Result{RunID: uuid.NewString()}
	logger := opts.Logger.With("run", result.RunID[:8])

	key, err := r.cacheKey(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode input traces")
	}

	if !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Traces = cached.Traces
			result.Origins = cached.Origins
			result.CacheHit = true
			result.Stats = Stats{Inputs: len(data), Outputs: len(cached.Traces), Duration: time.Since(start)}
			logger.Debug("served split from cache", "outputs", len(cached.Traces))
			return result, nil
		}
	}

	observability.Pipeline().OnSplitStart(ctx, len(data))
	traces, origins, applied, err := r.split(ctx, data, opts)
	result.Stats = Stats{
		Inputs:     len(data),
		Outputs:    len(traces),
		Transforms: applied,
		Duration:   time.Since(start),
	}
	observability.Pipeline().OnSplitComplete(ctx, len(data), len(traces), result.Stats.Duration, err)
	if err != nil {
		return nil, err
	}
	result.Traces = traces
	result.Origins = origins

	if stored, ok := r.store(ctx, key, cachedResult{Traces: traces, Origins: origins}, opts.TTL, logger); ok {
		result.Traces = stored.Traces
	}

	logger.Info("split traces",
		"inputs", len(data),
		"outputs", len(traces),
		"transforms", applied,
		"duration", result.Stats.Duration)
	return result, nil
}

// ResolveDefaults resolves every trace and its transform entries without
// applying them.
func (r *Runner) ResolveDefaults(data []trace.Trace) ([]trace.Trace, error) {
	out := make([]trace.Trace, len(data))
	for i, t := range data {
		full, err := r.schema.SupplyTraceDefaults(t, i)
		if err != nil {
			return nil, err
		}
		if err := r.resolveTransforms(full, i); err != nil {
			return nil, err
		}
		out[i] = full
	}
	return out, nil
}

// resolveTransforms replaces each transform entry of full with its
// resolved options. Entries that are not objects, and inactive entries of
// unknown type, are left as they are.
func (r *Runner) resolveTransforms(full trace.Trace, index int) error {
	raw, ok := trace.ToSlice(full["transforms"])
	if !ok {
		return nil
	}
	full["transforms"] = raw
	for j, entry := range full.Transforms() {
		if entry == nil {
			continue
		}
		name, _ := entry["type"].(string)
		mod, err := r.transforms.Lookup(name)
		if err != nil {
			if !transform.Active(entry) {
				continue
			}
			return errors.Wrap(errors.ErrCodeUnknownTransform, err, "trace %d: transforms[%d]", index, j)
		}
		opts := mod.SupplyDefaults(entry)
		opts["type"] = name
		raw[j] = opts
	}
	return nil
}

func (r *Runner) split(ctx context.Context, data []trace.Trace, opts Options) ([]trace.Trace, []int, int, error) {
	full, err := r.ResolveDefaults(data)
	if err != nil {
		return nil, nil, 0, err
	}

	var applied atomic.Int64
	results := make([][]trace.Trace, len(full))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i := range full {
		g.Go(func() error {
			out, n, err := r.apply(gctx, i, full[i], full)
			results[i] = out
			applied.Add(int64(n))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, 0, err
	}

	var (
		traces  []trace.Trace
		origins []int
	)
	for i, outs := range results {
		for _, t := range outs {
			resolved, err := r.schema.SupplyTraceDefaults(t, len(traces))
			if err != nil {
				return nil, nil, 0, fmt.Errorf("output of trace %d: %w", i, err)
			}
			traces = append(traces, resolved)
			origins = append(origins, i)
		}
	}
	return traces, origins, int(applied.Load()), nil
}

// apply runs the active transform entries of one resolved trace in order.
func (r *Runner) apply(ctx context.Context, index int, full trace.Trace, fullData []trace.Trace) ([]trace.Trace, int, error) {
	current := []trace.Trace{full}
	applied := 0
	for j, opts := range full.Transforms() {
		if err := ctx.Err(); err != nil {
			return nil, applied, err
		}
		if opts == nil || !transform.Active(opts) {
			continue
		}
		name, _ := opts["type"].(string)
		mod, err := r.transforms.Lookup(name)
		if err != nil {
			return nil, applied, err
		}

		start := time.Now()
		observability.Pipeline().OnTransformStart(ctx, name, index)
		current, err = mod.Transform(current, transform.State{
			Transform:      opts,
			FullTrace:      full,
			FullData:       fullData,
			TransformIndex: j,
			Finder:         r.schema,
		})
		observability.Pipeline().OnTransformComplete(ctx, name, index, len(current), time.Since(start))
		if err != nil {
			return nil, applied, fmt.Errorf("trace %d: transforms[%d]: %w", index, j, err)
		}
		applied++
	}
	return current, applied, nil
}

type cachedResult struct {
	Traces  []trace.Trace `json:"data"`
	Origins []int         `json:"origins"`
}

func (r *Runner) cacheKey(data []trace.Trace) (string, error) {
	hash, err := cache.HashJSON(data)
	if err != nil {
		return "", err
	}
	return r.Keyer.SplitKey(hash, cache.SplitKeyOpts{
		Transforms: r.transforms.Names(),
		TraceTypes: r.schema.TraceTypes(),
		Version:    buildinfo.Version,
	}), nil
}

// store caches res and returns it as a later lookup would see it, so fresh
// and cached results carry the same value types.
func (r *Runner) store(ctx context.Context, key string, res cachedResult, ttl time.Duration, logger *log.Logger) (cachedResult, bool) {
	blob, err := json.Marshal(res)
	if err != nil {
		logger.Warn("result not cacheable", "err", err)
		return res, false
	}
	if err := r.Cache.Set(ctx, key, blob, ttl); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
	var decoded cachedResult
	if err := json.Unmarshal(blob, &decoded); err != nil {
		return res, false
	}
	return decoded, true
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedResult, bool) {
	var cached cachedResult
	blob, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return cached, false
	}
	if err := json.Unmarshal(blob, &cached); err != nil || len(cached.Origins) != len(cached.Traces) {
		return cached, false
	}
	return cached, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
