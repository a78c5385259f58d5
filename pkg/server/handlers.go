package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/roomgen/pkg/buildinfo"
	"github.com/matzehuels/roomgen/pkg/catalog"
	"github.com/matzehuels/roomgen/pkg/errors"
	"github.com/matzehuels/roomgen/pkg/level"
	"github.com/matzehuels/roomgen/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type catalogResponse struct {
	EntranceMax int                `json:"entrance_max"`
	SizeMax     int                `json:"size_max"`
	Templates   []catalog.Template `json:"templates"`
}

type levelResponse struct {
	RunID     string            `json:"run_id"`
	Seed      uint64            `json:"seed"`
	Stats     statsResponse     `json:"stats"`
	Level     json.RawMessage   `json:"level"`
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

type statsResponse struct {
	Rooms        int   `json:"rooms"`
	SpawnRooms   int   `json:"spawn_rooms"`
	Steps        int   `json:"steps"`
	Resets       int   `json:"resets"`
	GenerateTime int64 `json:"generate_ms"`
	RenderTime   int64 `json:"render_ms"`
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		EntranceMax: s.lib.EntranceMax(),
		SizeMax:     s.lib.SizeMax(),
		Templates:   s.lib.Templates(),
	})
}

// handleGenerate runs the pipeline for the posted options. The JSON level
// is always returned; other requested formats are returned as strings.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	if opts.MaxResets <= 0 || opts.MaxResets > s.cfg.MaxResets {
		opts.MaxResets = s.cfg.MaxResets
	}
	if opts.MaxAttempts > level.DefaultMaxAttempts {
		opts.MaxAttempts = level.DefaultMaxAttempts
	}
	opts.ResetDelay = 0
	if len(opts.Templates) == 0 {
		opts.Templates = s.lib.Templates()
	}
	opts.Formats = withJSON(opts.Formats)
	opts.Logger = s.logger

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Timeout)
	defer cancel()

	res, err := s.runner.Execute(ctx, opts)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded && !errors.Is(err, errors.ErrCodeGenerationStalled) {
			err = errors.Wrap(errors.ErrCodeResetLimit, err, "no acceptable level within %s", s.cfg.Timeout)
		}
		s.writeError(w, err)
		return
	}

	resp := levelResponse{
		RunID: res.Level.RunID,
		Seed:  opts.Seed,
		Stats: statsResponse{
			Rooms:        res.Stats.Rooms,
			SpawnRooms:   res.Stats.SpawnRooms,
			Steps:        res.Stats.Steps,
			Resets:       res.Stats.Resets,
			GenerateTime: res.Stats.GenerateTime.Milliseconds(),
			RenderTime:   res.Stats.RenderTime.Milliseconds(),
		},
		Level: res.Artifacts[pipeline.FormatJSON],
	}
	for format, data := range res.Artifacts {
		if format == pipeline.FormatJSON {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string]string)
		}
		resp.Artifacts[format] = string(data)
	}
	if resp.Seed == 0 {
		resp.Seed = pipeline.DefaultSeed
	}
	writeJSON(w, http.StatusOK, resp)
}

func withJSON(formats []string) []string {
	for _, f := range formats {
		if f == pipeline.FormatJSON {
			return formats
		}
	}
	return append(formats, pipeline.FormatJSON)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "error", err)
	} else {
		s.logger.Warn("Request rejected", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
