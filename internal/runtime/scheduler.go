package runtime

import (
	"io"
	"log/slog"
	"math"
	"reflect"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Scheduler drives repeated evaluation passes over all calculated fields
// until values stabilize or the pass budget runs out. There is no explicit
// dependency graph: every pass evaluates every calculated field against a
// consistent pre-pass snapshot, so results are independent of declaration
// order and acyclic chains converge in O(depth) passes.
type Scheduler struct {
	evaluator Evaluator
	maxPasses int
	logger    *slog.Logger
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithMaxPasses overrides the pass budget. Intended for tests; production
// runs use domain.MaxPasses.
func WithMaxPasses(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxPasses = n
		}
	}
}

// WithSchedulerLogger sets the logger used for per-field evaluation reports.
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScheduler creates a scheduler around the given evaluator.
func NewScheduler(evaluator Evaluator, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		evaluator: evaluator,
		maxPasses: domain.MaxPasses,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result reports how a resolution run ended. Non-convergence is not an
// error: after the pass budget the last computed values stand, even if
// they are numerically inconsistent with cyclic formulas as written.
type Result struct {
	Passes    int
	Converged bool
}

// Resolve runs evaluation passes over the store's calculated fields.
//
// Each pass takes a snapshot first, evaluates every formula against that
// snapshot, then writes results back. An evaluation failure leaves the
// field's prior value unchanged and never aborts the run. A pass that
// changes nothing ends the run early.
func (s *Scheduler) Resolve(store *FieldStore) Result {
	calc := store.CalcFields()
	if len(calc) == 0 {
		return Result{Passes: 0, Converged: true}
	}

	for pass := 1; pass <= s.maxPasses; pass++ {
		snap := store.Snapshot()
		changed := false

		for _, f := range calc {
			value, err := s.evaluator(f.Formula, snap)
			if err != nil {
				evalErr := &domain.EvalError{FieldID: f.ID, Formula: f.Formula, Err: err}
				s.logger.Debug("formula evaluation failed, keeping prior value",
					"field", f.ID, "pass", pass, "error", evalErr)
				continue
			}
			if !valuesEqual(snap[f.ID], value) {
				store.Set(f.ID, value)
				changed = true
			}
		}

		if !changed {
			return Result{Passes: pass, Converged: true}
		}
	}

	s.logger.Warn("resolution did not converge within pass budget",
		"passes", s.maxPasses, "calc_fields", len(calc))
	return Result{Passes: s.maxPasses, Converged: false}
}

// valuesEqual defines convergence equality: exact comparison for strings,
// booleans and mixed non-numeric values, epsilon tolerance for numbers so
// rounding jitter does not defeat the no-change check. DeepEqual covers
// composite results, which formulas can legally produce.
func valuesEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return math.Abs(af-bf) <= domain.FloatEpsilon
	}
	return reflect.DeepEqual(a, b)
}
