package tablerender

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dathuynh1108/rule-table-render/internal/compiler"
	"github.com/dathuynh1108/rule-table-render/internal/logging"
	"github.com/dathuynh1108/rule-table-render/internal/runtime"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Version is the application version. Overridden at build time via
// -ldflags "-X github.com/dathuynh1108/rule-table-render.Version=...".
var Version = "dev"

// Evaluator computes a formula against a frozen snapshot of field values.
// Plugging a custom Evaluator swaps the expression dialect without
// touching the convergence machinery.
type Evaluator = runtime.Evaluator

// Renderer is the public entry point: it loads template documents and
// resolves them into payloads. A Renderer is safe for reuse across
// templates; each BuildPayload call is independent.
type Renderer struct {
	parser      *compiler.Parser
	logger      *slog.Logger
	evaluator   Evaluator
	passBudget  int
	tableFilter []string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the structured logger. The default logger is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithEvaluator replaces the default expression evaluator.
func WithEvaluator(evaluator Evaluator) Option {
	return func(r *Renderer) {
		if evaluator != nil {
			r.evaluator = evaluator
		}
	}
}

// WithTableFilter restricts payloads to the named table ids. Unknown ids
// are simply absent from the output.
func WithTableFilter(ids ...string) Option {
	return func(r *Renderer) {
		r.tableFilter = ids
	}
}

// WithPassBudget overrides the resolution pass budget. Intended for tests;
// production callers should keep the default.
func WithPassBudget(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.passBudget = n
		}
	}
}

// New creates a Renderer with the default expr evaluator, the default
// pass budget and a silent logger.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		parser:     compiler.NewParser(),
		logger:     logging.NewNop(),
		passBudget: domain.MaxPasses,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load parses and validates a template document. JSON and YAML both work.
func (r *Renderer) Load(data []byte) (*domain.Template, error) {
	return r.parser.Parse(data)
}

// LoadFile reads and parses a template document from disk.
func (r *Renderer) LoadFile(path string) (*domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %q: %w", path, err)
	}
	tpl, err := r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid template %q: %w", path, err)
	}
	return tpl, nil
}

// BuildPayload resolves a template into a payload, applying the given
// field overrides before the first pass. Overrides carry already-typed
// values keyed by field id; unknown targets are logged and skipped.
func (r *Renderer) BuildPayload(tpl *domain.Template, overrides map[string]any) (*domain.Payload, error) {
	engine := r.engine()
	return engine.BuildPayload(tpl, overrides, r.tableFilter)
}

// Render is the one-shot convenience path: load a template file, apply
// overrides and return the resolved payload.
func (r *Renderer) Render(path string, overrides map[string]any) (*domain.Payload, error) {
	tpl, err := r.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return r.BuildPayload(tpl, overrides)
}

func (r *Renderer) engine() *runtime.Engine {
	opts := []runtime.EngineOption{
		runtime.WithLogger(r.logger),
		runtime.WithPassBudget(r.passBudget),
	}
	if r.evaluator != nil {
		opts = append(opts, runtime.WithEvaluator(r.evaluator))
	}
	return runtime.NewEngine(opts...)
}
