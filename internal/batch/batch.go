// Package batch implements spec.md section 5's optional batch
// front-end: many independent (seed, instance) feasibility checks run
// in parallel, each on its own worker with a per-instance wall-clock
// timeout, sharing no mutable state with each other and serializing
// results to a sink under a single coordinator mutex.
//
// Grounded on original_source/instance_finder.py's
// solve_unknown_seeds/solve_seed (a ProcessPoolExecutor pool plus a
// single results-table mutex) and the teacher's game.Manager
// sync.RWMutex-guarded map idiom, adapted from OS processes to
// goroutines since the core engine here has no C extension to
// isolate a worker from.
package batch

import (
	"context"
	"sync"
	"time"

	"github.com/lukev/hanabisolve/internal/game"
	"github.com/lukev/hanabisolve/internal/instance"
	"github.com/lukev/hanabisolve/internal/sat"
)

// DefaultTimeout is spec.md section 5's example per-instance wall-clock
// budget.
const DefaultTimeout = 150 * time.Second

// Job is one independent feasibility check to run: an identified deal
// to solve.
type Job struct {
	ID   string
	Inst *instance.Instance
}

// Result is one Job's outcome. TimedOut and Winnable are mutually
// informative: a timed-out job carries Winnable == false and a nil
// State, since its worker was abandoned before reaching a verdict.
type Result struct {
	ID       string
	Winnable bool
	TimedOut bool
	State    *game.State
}

// ProgressFunc is called once per completed (or timed-out) Job, under
// the Runner's single coordinator mutex, so implementations never see
// concurrent calls and may safely mutate shared state (e.g. pushing to
// a live.Hub).
type ProgressFunc func(Result)

// Runner sweeps a batch of Jobs with bounded concurrency, a per-job
// timeout, and a single mutex-guarded result sink.
type Runner struct {
	Timeout     time.Duration
	Concurrency int
	OnProgress  ProgressFunc

	mu      sync.Mutex
	results map[string]Result
}

// NewRunner builds a Runner with the given per-job timeout and worker
// count. A non-positive concurrency defaults to 1.
func NewRunner(timeout time.Duration, concurrency int) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		Timeout:     timeout,
		Concurrency: concurrency,
		results:     make(map[string]Result),
	}
}

// Run sweeps every job, blocking until all have completed or timed
// out, and returns their results in input order.
func (r *Runner) Run(ctx context.Context, jobs []Job) []Result {
	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	for _, j := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(j Job) {
			defer wg.Done()
			defer func() { <-sem }()
			r.runOne(ctx, j)
		}(j)
	}
	wg.Wait()

	out := make([]Result, len(jobs))
	r.mu.Lock()
	for i, j := range jobs {
		out[i] = r.results[j.ID]
	}
	r.mu.Unlock()
	return out
}

// runOne solves a single job under its own timeout, abandoning the
// solve goroutine on expiry per spec.md's cancellation semantics ("a
// timeout aborts the SAT call atomically; partial encodings are
// discarded"): the solve keeps running in the background but its
// result is never consulted once this function returns.
func (r *Runner) runOne(ctx context.Context, j Job) {
	jobCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	type solveOutcome struct {
		won   bool
		state *game.State
	}
	done := make(chan solveOutcome, 1)
	go func() {
		won, state := sat.SolveInstance(j.Inst)
		done <- solveOutcome{won: won, state: state}
	}()

	var res Result
	select {
	case o := <-done:
		res = Result{ID: j.ID, Winnable: o.won, State: o.state}
	case <-jobCtx.Done():
		res = Result{ID: j.ID, TimedOut: true}
	}

	r.mu.Lock()
	r.results[j.ID] = res
	if r.OnProgress != nil {
		r.OnProgress(res)
	}
	r.mu.Unlock()
}
