// Package domain contains the core data model of the renderer: template
// definitions (fields, layout tables, rows, cells), the resolved payload
// produced from them, and the error values shared across the engine.
//
// Template structures are read-only after construction; the engine never
// mutates them in place. Resolution produces a new Payload tree whose
// leaves are rendered strings plus the raw values they were rendered from.
package domain
