// Package pkg provides the core libraries for Roomgen level generation.
//
// # Overview
//
// Roomgen assembles 2D levels from rectangular room templates. Rooms join
// through facing entrances, the level grows until no entrance is left open,
// and two distant spawn points are picked from the spawn-capable rooms.
//
//  1. [geom] - Integer points and an arena of nested rectangles
//  2. [catalog] - Room templates, grouped by entrance count
//  3. [room] - Placed rooms, doorways and joins
//  4. [level] - The step-driven generator
//  5. [pipeline] - Orchestration (generate → render) with retry limits
//  6. [render] - Text, JSON and Graphviz exports
//  7. [server] - HTTP API over the pipeline
//
// # Architecture
//
//	Catalog (builtin or TOML)
//	         ↓
//	    [level] Generator.Step until Done
//	         ↓
//	    [render] text / JSON / DOT / SVG
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/roomgen/pkg/pipeline"
//	)
//
//	res, err := pipeline.NewRunner(nil).Execute(context.Background(), pipeline.Options{
//	    Seed:    7,
//	    Formats: []string{pipeline.FormatText},
//	})
//	fmt.Print(string(res.Artifacts[pipeline.FormatText]))
//
// # Supporting Packages
//
// [config] - TOML configuration file with generator settings and inline
// templates.
//
// [errors] - Coded errors shared by every package and mapped to HTTP status
// codes by the server.
//
// [observability] - Hook registry for metrics and tracing.
//
// [buildinfo] - Version information set at build time.
package pkg
