package pipeline

import (
	"context"
	"encoding/json"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/tracesplit/pkg/cache"
	"github.com/matzehuels/tracesplit/pkg/errors"
	"github.com/matzehuels/tracesplit/pkg/observability"
	"github.com/matzehuels/tracesplit/pkg/trace"
)

func groupedTrace(x []any, groups []any) trace.Trace {
	return trace.Trace{
		"type": "scatter",
		"x":    x,
		"transforms": []any{
			map[string]any{"type": "groupby", "groups": groups},
		},
	}
}

func names(ts []trace.Trace) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Name()
	}
	return out
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Workers != DefaultWorkers() || o.TTL != cache.TTLSplit || o.Logger == nil {
		t.Errorf("defaults not applied: %+v", o)
	}

	for _, bad := range []Options{{Workers: -1}, {Workers: MaxWorkers + 1}, {TTL: -time.Second}} {
		if err := bad.ValidateAndSetDefaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ValidateAndSetDefaults(%+v) error = %v, want INVALID_INPUT", bad, err)
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	in := []trace.Trace{groupedTrace([]any{1.0, 2.0, 3.0, 4.0}, []any{"a", "b", "a", "b"})}
	before, _ := json.Marshal(in)

	res, err := r.Execute(context.Background(), in, Options{})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if want := []string{"a", "b"}; !reflect.DeepEqual(names(res.Traces), want) {
		t.Fatalf("names = %v, want %v", names(res.Traces), want)
	}
	if !reflect.DeepEqual(res.Origins, []int{0, 0}) {
		t.Errorf("origins = %v, want [0 0]", res.Origins)
	}
	if !reflect.DeepEqual(res.Traces[1]["x"], []any{2.0, 4.0}) {
		t.Errorf("b x = %v, want [2 4]", res.Traces[1]["x"])
	}
	if res.Traces[0]["mode"] != "markers" {
		t.Errorf("outputs are not resolved: mode = %v", res.Traces[0]["mode"])
	}
	g, _ := trace.Get(res.Traces[0], trace.MustParsePath("transforms[0].groups"))
	if !reflect.DeepEqual(g, []any{"a", "a"}) {
		t.Errorf("a transforms[0].groups = %v, want [a a]", g)
	}
	if res.Stats.Inputs != 1 || res.Stats.Outputs != 2 || res.Stats.Transforms != 1 {
		t.Errorf("stats = %+v", res.Stats)
	}
	if res.RunID == "" || res.CacheHit {
		t.Errorf("RunID %q, CacheHit %v", res.RunID, res.CacheHit)
	}

	after, _ := json.Marshal(in)
	if string(before) != string(after) {
		t.Errorf("input modified:\n%s\n%s", before, after)
	}
}

func TestExecute_OrderAcrossWorkers(t *testing.T) {
	var in []trace.Trace
	for i := 0; i < 20; i++ {
		f := float64(i)
		in = append(in, groupedTrace([]any{f, f + 0.5}, []any{"lo", "hi"}))
	}

	r := NewRunner(nil, nil, nil)
	serial, err := r.Execute(context.Background(), in, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := r.Execute(context.Background(), in, Options{Workers: 8})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(serial.Traces, parallel.Traces) || !reflect.DeepEqual(serial.Origins, parallel.Origins) {
		t.Error("worker count changed the result")
	}
	for i, origin := range parallel.Origins {
		if origin != i/2 {
			t.Fatalf("origins[%d] = %d, want %d", i, origin, i/2)
		}
	}
}

func TestExecute_ChainedTransforms(t *testing.T) {
	in := trace.Trace{
		"x": []any{1.0, 2.0, 3.0, 4.0},
		"transforms": []any{
			map[string]any{"type": "groupby", "groups": []any{"a", "b", "a", "b"}},
			map[string]any{"type": "groupby", "groups": []any{"p", "p", "q", "q"}},
		},
	}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), []trace.Trace{in}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var xs [][]any
	for _, out := range res.Traces {
		xs = append(xs, out["x"].([]any))
	}
	want := [][]any{{1.0}, {3.0}, {2.0}, {4.0}}
	if !reflect.DeepEqual(xs, want) {
		t.Errorf("x per output = %v, want %v", xs, want)
	}
	if got := names(res.Traces); !reflect.DeepEqual(got, []string{"p", "q", "p", "q"}) {
		t.Errorf("names = %v", got)
	}
	if res.Stats.Transforms != 2 {
		t.Errorf("applied transforms = %d, want 2", res.Stats.Transforms)
	}
}

func TestExecute_InactiveAndPlain(t *testing.T) {
	inactive := groupedTrace([]any{1.0, 2.0}, []any{"a", "b"})
	inactive["transforms"].([]any)[0].(map[string]any)["active"] = false
	plain := trace.Trace{"type": "bar", "y": []any{3.0}}

	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), []trace.Trace{inactive, plain}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"trace 0", "trace 1"}; !reflect.DeepEqual(names(res.Traces), want) {
		t.Errorf("names = %v, want %v", names(res.Traces), want)
	}
	if !reflect.DeepEqual(res.Traces[0]["x"], []any{1.0, 2.0}) {
		t.Errorf("inactive x = %v", res.Traces[0]["x"])
	}
	entry := res.Traces[0].Transforms()[0]
	if !reflect.DeepEqual(entry, map[string]any{"type": "groupby", "active": false}) {
		t.Errorf("inactive entry = %v", entry)
	}
}

func TestExecute_Errors(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	unknown := trace.Trace{"transforms": []any{map[string]any{"type": "filter"}}}
	if _, err := r.Execute(ctx, []trace.Trace{unknown}, Options{}); !errors.Is(err, errors.ErrCodeUnknownTransform) {
		t.Errorf("unknown transform error = %v, want UNKNOWN_TRANSFORM", err)
	}

	dormant := trace.Trace{"transforms": []any{map[string]any{"type": "filter", "active": false}}}
	if _, err := r.Execute(ctx, []trace.Trace{dormant}, Options{}); err != nil {
		t.Errorf("inactive unknown transform error = %v, want nil", err)
	}

	badType := trace.Trace{"type": "sankey"}
	if _, err := r.Execute(ctx, []trace.Trace{badType}, Options{}); !errors.Is(err, errors.ErrCodeUnknownTraceType) {
		t.Errorf("unknown trace type error = %v, want UNKNOWN_TRACE_TYPE", err)
	}

	if _, err := r.Execute(ctx, nil, Options{Workers: -2}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad options error = %v, want INVALID_INPUT", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	in := []trace.Trace{groupedTrace([]any{1.0}, []any{"a"})}
	if _, err := r.Execute(cancelled, in, Options{}); err != context.Canceled {
		t.Errorf("cancelled error = %v, want context.Canceled", err)
	}
}

func TestExecute_Cache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	in := []trace.Trace{groupedTrace([]any{1.0, 2.0, 3.0}, []any{"a", "b", "a"})}

	first, err := r.Execute(ctx, in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Execute(ctx, in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheHit || !second.CacheHit {
		t.Fatalf("CacheHit = %v, %v; want false, true", first.CacheHit, second.CacheHit)
	}
	if !reflect.DeepEqual(first.Traces, second.Traces) || !reflect.DeepEqual(first.Origins, second.Origins) {
		t.Error("cached result differs from fresh result")
	}

	third, err := r.Execute(ctx, in, Options{Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecute_CacheHitMatchesMissTypes(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, nil)
	ctx := context.Background()
	in := []trace.Trace{{
		"x":          []float64{1, 2, 3},
		"transforms": []map[string]any{{"type": "groupby", "groups": []string{"a", "b", "a"}}},
	}}

	miss, err := r.Execute(ctx, in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	hit, err := r.Execute(ctx, in, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit.CacheHit {
		t.Fatal("second run missed the cache")
	}
	if !reflect.DeepEqual(miss.Traces, hit.Traces) {
		t.Errorf("miss %v != hit %v", miss.Traces, hit.Traces)
	}
	if got, want := miss.Traces[0]["x"], []any{1.0, 3.0}; !reflect.DeepEqual(got, want) {
		t.Errorf("x = %#v, want %#v", got, want)
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu         sync.Mutex
	starts     int
	transforms []string
	outputs    int
}

func (h *recordingHooks) OnSplitStart(context.Context, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.starts++
}

func (h *recordingHooks) OnSplitComplete(_ context.Context, _, outputs int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.outputs = outputs
}

func (h *recordingHooks) OnTransformComplete(_ context.Context, name string, _, _ int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transforms = append(h.transforms, name)
}

func TestExecute_Hooks(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	in := []trace.Trace{
		groupedTrace([]any{1.0, 2.0}, []any{"a", "b"}),
		groupedTrace([]any{1.0, 2.0}, []any{"a", "a"}),
	}
	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), in, Options{}); err != nil {
		t.Fatal(err)
	}
	if hooks.starts != 1 || hooks.outputs != 3 || len(hooks.transforms) != 2 {
		t.Errorf("hooks: starts %d, outputs %d, transforms %v", hooks.starts, hooks.outputs, hooks.transforms)
	}
}

func TestResolveDefaults(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	out, err := r.ResolveDefaults([]trace.Trace{{"transforms": []any{map[string]any{"type": "groupby"}}}})
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{"type": "groupby", "active": true, "groups": []any{}, "style": map[string]any{}}
	if got := out[0].Transforms()[0]; !reflect.DeepEqual(got, want) {
		t.Errorf("resolved entry = %v, want %v", got, want)
	}
}
