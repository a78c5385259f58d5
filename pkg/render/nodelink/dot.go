package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/room"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the world rectangle and entrance count in node
	// labels. When false, only the index and template name are shown.
	Detailed bool
}

// ToDOT converts an accepted level to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(res level.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i, rm := range res.Rooms {
		label := fmtLabel(i, rm, opts.Detailed)
		attrs := fmtAttrs(i, rm, res.SpawnIndex, label)
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(i), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range room.Links(res.Rooms) {
		fmt.Fprintf(&buf, "  %s -- %s;\n", nodeID(l.A), nodeID(l.B))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(i int) string { return "r" + strconv.Itoa(i) }

func fmtLabel(i int, rm room.Room, detailed bool) string {
	label := fmt.Sprintf("#%d %s", i, rm.Name())
	if !detailed {
		return label
	}
	fp, _ := rm.Footprint().ToDepth(0)
	return fmt.Sprintf("%s\n%dx%d at %s\nentrances: %d",
		label, fp.Width(), fp.Height(), fp.Position(0), rm.EntranceCount())
}

func fmtAttrs(i int, rm room.Room, anchors [2]int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case i == anchors[0] || i == anchors[1]:
		attrs = append(attrs, "fillcolor=gold", "penwidth=2")
	case rm.SpawnCapable():
		attrs = append(attrs, "fillcolor=lightblue")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales cleanly when embedded.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
