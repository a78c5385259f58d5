package pipeline

import (
	"fmt"

	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/render"
	"github.com/matzehuels/roomgen/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats.
func Render(res level.Result, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte)
	var dot string
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(render.Text(res.Rooms, render.WithAnchors(res.SpawnA, res.SpawnB)))
		case FormatJSON:
			data, err = render.RenderJSON(res,
				render.WithJSONSeed(opts.Seed),
				render.WithJSONConfig(opts.LevelConfig()))
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(res, nodelink.Options{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(dot)
			}
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
