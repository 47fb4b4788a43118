// Package pkg provides the core libraries for ChartKit chart rendering.
//
// # Overview
//
// ChartKit renders chart definitions into SVG and PNG documents, with a
// configurable Y-axis renderer at its core. The pkg directory is organized
// into three main areas:
//
//  1. [chart] - Domain logic (definitions, scales, ticks, axes, SVG output)
//  2. Infrastructure - [cache], [store], [config], [observability]
//  3. [render/raster] - SVG to PNG conversion via a headless browser
//
// # Architecture
//
// The typical data flow through ChartKit:
//
//	TOML/JSON chart definition
//	         |
//	    [config] or [store] (load and validate)
//	         |
//	    [chart/axis] + [chart/scale] + [chart/ticks] (resolve and position)
//	         |
//	    [chart/plot] + [chart/svg] (compose the document)
//	         |
//	    SVG output, optionally [render/raster] for PNG
//
// # Quick Start
//
// Render an axis into a standalone SVG document:
//
//	import (
//	    "github.com/chartkit/chartkit/pkg/chart"
//	    "github.com/chartkit/chartkit/pkg/chart/axis"
//	    "github.com/chartkit/chartkit/pkg/chart/svg"
//	)
//
//	settings := chart.AxisSettings{
//	    Scale: chart.ScaleSettings{Min: 0, Max: 100},
//	    Label: "Revenue",
//	}
//	bounds := chart.Bounds{Left: 40, Top: 20, Width: 700, Height: 400}
//
//	g, _ := axis.Draw(settings, axis.Props{}, bounds)
//	doc := svg.Render(g, 780, 440)
//
// # Main Packages
//
// [chart] - Chart definitions: bounds, axis settings, series data, and
// validation. The plain-data layer shared by every other package.
//
// [chart/scale] - Linear domain-to-pixel mapping with nice-step selection.
//
// [chart/ticks] - Tick generation: round values within the scale's domain,
// honoring count and step constraints.
//
// [chart/axis] - The Y-axis renderer: configuration resolution across
// precedence layers, pixel geometry, and element composition with
// overridable visual primitives.
//
// [chart/plot] - Whole-document composition: axes, series polylines, title.
//
// [chart/svg] - A small positioned-element tree with a deterministic SVG
// sink.
//
// [config] - TOML chart definition loading.
//
// [cache] - Render artifact caching: file, Redis, and null backends with
// hashed, versioned keys.
//
// [store] - Chart definition persistence: in-memory and MongoDB backends.
//
// [render/raster] - SVG to PNG conversion through a headless browser.
//
// [observability] - Hook registry for metrics and tracing without hard
// backend dependencies.
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and the HTTP API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/chart/axis/...   # Specific package
//	go test -run Example           # Examples only
//
// [chart]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart
// [chart/scale]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart/scale
// [chart/ticks]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart/ticks
// [chart/axis]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart/axis
// [chart/plot]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart/plot
// [chart/svg]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/chart/svg
// [config]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/config
// [cache]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/cache
// [store]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/store
// [render/raster]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/render/raster
// [observability]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/observability
// [errors]: https://pkg.go.dev/github.com/chartkit/chartkit/pkg/errors
package pkg
