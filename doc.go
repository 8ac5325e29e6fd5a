/*
Package tablerender resolves declarative table templates into fully
materialized payloads: every field bound to a concrete value and every
layout cell bound to a formatted display string.

A template declares user-supplied fields, calculated fields whose formulas
reference other fields by id, and a nested table layout. Resolution runs a
fixed budget of snapshot-based evaluation passes (no explicit dependency
graph) until values stabilize, then walks the layout tree binding each cell
through the field store and the formatter.

# Usage

	r := tablerender.New()
	tpl, err := r.LoadFile("template_scenario.yaml")
	if err != nil {
		log.Fatal(err)
	}

	payload, err := r.BuildPayload(tpl, map[string]any{
		"loan_amount": 3_500_000_000,
	})
	if err != nil {
		log.Fatal(err)
	}
	json.NewEncoder(os.Stdout).Encode(payload)

Formula failures, unknown override targets and unresolved cell references
are scoped and non-fatal: they are reported through the configured logger
and the run continues. Only malformed configuration (duplicate field ids,
broken table definitions) fails a call.

Cyclic formulas do not error. After the pass budget (eight sweeps) the last
computed values stand, which favors bounded latency over guaranteed
consistency for pathological templates. Template authors are expected to
avoid cycles.
*/
package tablerender
