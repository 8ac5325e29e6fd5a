package runtime

import (
	"errors"
	"io"
	"log/slog"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
	"github.com/dathuynh1108/rule-table-render/pkg/schema"
)

// Engine ties the resolution pipeline together: it derives a field store
// from a template, applies overrides, runs the convergence scheduler and
// materializes the layout into a payload. An Engine is stateless across
// runs; each BuildPayload call owns its own store.
type Engine struct {
	evaluator Evaluator
	maxPasses int
	logger    *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEvaluator replaces the default expr-backed formula evaluator.
func WithEvaluator(evaluator Evaluator) EngineOption {
	return func(e *Engine) {
		if evaluator != nil {
			e.evaluator = evaluator
		}
	}
}

// WithPassBudget overrides the convergence pass budget (tests only).
func WithPassBudget(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.maxPasses = n
		}
	}
}

// WithLogger sets the structured logger for the run.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine with the default evaluator and pass budget.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		evaluator: NewExprEvaluator(),
		maxPasses: domain.MaxPasses,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BuildPayload resolves a template into a payload. Overrides carry
// already-typed values keyed by field id; tableFilter, when non-empty,
// limits materialization to the named table ids.
//
// Only structural configuration errors (duplicate field ids) fail the
// call. Unknown override targets, formula failures and unresolved cell
// references are reported through the logger and never abort the run.
func (e *Engine) BuildPayload(template *domain.Template, overrides map[string]any, tableFilter []string) (*domain.Payload, error) {
	store, err := NewFieldStore(template.Fields)
	if err != nil {
		return nil, err
	}

	for id, value := range overrides {
		if field, ok := store.Field(id); ok {
			if verr := schema.CheckOverride(field, value); verr != nil {
				e.logger.Warn("override value does not match declared field type",
					"field", id, "error", verr)
			}
		}
		if err := store.ApplyOverride(id, value); err != nil {
			if errors.Is(err, domain.ErrUnknownOverrideTarget) {
				e.logger.Warn("ignoring override for unknown field", "field", id)
				continue
			}
			return nil, err
		}
	}

	scheduler := NewScheduler(e.evaluator,
		WithMaxPasses(e.maxPasses),
		WithSchedulerLogger(e.logger),
	)
	result := scheduler.Resolve(store)

	builder := NewLayoutBuilder(store, template.Currency, e.logger)

	filter := make(map[string]bool, len(tableFilter))
	for _, id := range tableFilter {
		filter[id] = true
	}

	tables := make([]domain.ResolvedTable, 0, len(template.Layout.Tables))
	for _, table := range template.Layout.Tables {
		if len(filter) > 0 && !filter[table.ID] {
			continue
		}
		tables = append(tables, builder.Materialize(table))
	}

	payload := &domain.Payload{
		Title:     template.Title,
		Currency:  template.Currency,
		Inputs:    e.buildInputs(template, store),
		Values:    store.Values(),
		Tables:    tables,
		Notes:     resolveNotes(template),
		Passes:    result.Passes,
		Converged: result.Converged,
	}
	return payload, nil
}

// buildInputs renders the template's declared inputs section. An input
// with no explicit key defaults to its field id.
func (e *Engine) buildInputs(template *domain.Template, store *FieldStore) map[string]string {
	if len(template.Inputs) == 0 {
		return nil
	}
	inputs := make(map[string]string, len(template.Inputs))
	for _, in := range template.Inputs {
		fieldID := in.Field
		if fieldID == "" {
			fieldID = in.Key
		}
		key := in.Key
		if key == "" {
			key = fieldID
		}
		value, ok := store.Get(fieldID)
		if !ok {
			e.logger.Debug("input references unknown field", "key", key, "field", fieldID)
			inputs[key] = ""
			continue
		}
		inputs[key] = Format(value, in.Format, template.Currency)
	}
	return inputs
}

// resolveNotes applies the replace-not-merge policy: non-empty layout
// notes fully replace template-level notes.
func resolveNotes(template *domain.Template) []string {
	if len(template.Layout.Notes) > 0 {
		return template.Layout.Notes
	}
	return template.Notes
}
