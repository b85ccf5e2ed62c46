// Package pipeline applies the declared transforms of a set of traces.
//
// A run has three stages:
//
//  1. Resolve: every input trace is resolved against its trace type's
//     attribute declarations, and each of its "transforms" entries against
//     its module's options.
//  2. Transform: the active entries of each trace are applied in order.
//     Traces are independent, so they are processed by a bounded pool of
//     workers; outputs keep input order.
//  3. Re-resolve: the concatenated outputs are resolved again, so attributes
//     set by a transform (names, style overlays) are validated like any
//     other.
//
// Results are cached by the content hash of the input traces.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, fig.Data, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, t := range result.Traces {
//	    fmt.Println(t.Name(), "from input", result.Origins[i])
//	}
package pipeline

import (
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matzehuels/tracesplit/pkg/cache"
	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

// MaxWorkers bounds Options.Workers.
const MaxWorkers = 256

// DefaultWorkers is the worker count used when Options.Workers is zero.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Options configures a pipeline run. It supports JSON serialization for API
// requests.
type Options struct {
	// Workers is the number of traces transformed concurrently.
	Workers int `json:"workers,omitempty"`

	// TTL is how long the result stays cached.
	TTL time.Duration `json:"ttl,omitempty"`

	// Refresh skips the cache lookup; the fresh result is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies the run in logs and API responses.
	RunID string `json:"run_id"`

	// Traces are the resolved output traces, in decoded JSON form
	// (float64 numbers, []any arrays) whether or not they came from the
	// cache. Values JSON cannot encode, such as NaN, are kept as produced
	// and the result is not cached.
	Traces []trace.Trace `json:"data"`

	// Origins[i] is the index of the input trace Traces[i] came from.
	Origins []int `json:"origins"`

	Stats Stats `json:"stats"`

	// CacheHit is set when the result was served from the cache.
	CacheHit bool `json:"cache_hit"`
}

// Stats contains run statistics.
type Stats struct {
	Inputs     int           `json:"inputs"`
	Outputs    int           `json:"outputs"`
	Transforms int           `json:"transforms"` // applied transform entries
	Duration   time.Duration `json:"duration_ns"`
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Workers < 0 || o.Workers > MaxWorkers {
		return errors.New(errors.ErrCodeInvalidInput, "workers must be between 0 and %d, got %d", MaxWorkers, o.Workers)
	}
	if o.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ttl must not be negative, got %s", o.TTL)
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers()
	}
	if o.TTL == 0 {
		o.TTL = cache.TTLSplit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
