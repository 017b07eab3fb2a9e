package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mazer/pkg/buildinfo"
	"github.com/matzehuels/mazer/pkg/cache"
	"github.com/matzehuels/mazer/pkg/errors"
	"github.com/matzehuels/mazer/pkg/layout"
	"github.com/matzehuels/mazer/pkg/maze"
	"github.com/matzehuels/mazer/pkg/pipeline"
	"github.com/matzehuels/mazer/pkg/store"
	"github.com/matzehuels/mazer/pkg/style"
)

// MaxSnapshotBytes bounds request bodies carrying a snapshot.
const MaxSnapshotBytes = 8 << 20

// =============================================================================
// Meta
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Current()})
}

type paletteResponse struct {
	Name   string   `json:"name"`
	Shades []string `json:"shades"`
}

func (s *Server) handlePalettes(w http.ResponseWriter, r *http.Request) {
	var items []paletteResponse
	for _, p := range style.Palettes() {
		items = append(items, paletteResponse{Name: p.Name, Shades: p.Hex()})
	}
	writeJSON(w, http.StatusOK, apiListResponse[paletteResponse]{Items: items, Count: len(items)})
}

type backgroundResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s *Server) handleBackgrounds(w http.ResponseWriter, r *http.Request) {
	var items []backgroundResponse
	for _, b := range style.Backgrounds() {
		items = append(items, backgroundResponse{Name: b.Name, Color: b.Color.Hex()})
	}
	writeJSON(w, http.StatusOK, apiListResponse[backgroundResponse]{Items: items, Count: len(items)})
}

// =============================================================================
// Snapshots
// =============================================================================

type createResponse struct {
	ID      string        `json:"id"`
	Summary store.Summary `json:"summary"`
	Warning string        `json:"warning,omitempty"`
}

func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := maze.ReadSnapshot(io.LimitReader(r.Body, MaxSnapshotBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	if snap.Empty() {
		errorJSON(w, http.StatusBadRequest, errors.ErrCodeInvalidSnapshot, "snapshot has no cells")
		return
	}
	resp, err := s.save(r.Context(), snap)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// save stores snap and reports, without failing, a snapshot that breaks
// the structural invariants.
func (s *Server) save(ctx context.Context, snap *maze.Snapshot) (createResponse, error) {
	doc := store.NewDocument(snap, s.cfg.SnapshotTTL)
	if err := s.store.Save(ctx, doc); err != nil {
		return createResponse{}, err
	}
	resp := createResponse{ID: doc.ID, Summary: doc.Summarize()}
	if err := snap.Validate(); err != nil {
		resp.Warning = errors.UserMessage(err)
	}
	s.logger.Info("stored snapshot", "id", doc.ID, "cells", snap.Len(), "topology", snap.Topology())
	return resp, nil
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			errorJSON(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "limit must be a positive integer")
			return
		}
		limit = n
	}
	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]store.Summary, len(docs))
	for i, doc := range docs {
		items[i] = doc.Summarize()
	}
	writeJSON(w, http.StatusOK, apiListResponse[store.Summary]{Items: items, Count: len(items)})
}

func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	_ = s.runner.Cache.Delete(r.Context(), s.runner.Keyer.SnapshotKey(id))
	w.WriteHeader(http.StatusNoContent)
}

// snapshot reads through the runner's cache into the store.
func (s *Server) snapshot(ctx context.Context, id string) (*maze.Snapshot, error) {
	if err := store.ValidateID(id); err != nil {
		return nil, err
	}
	key := s.runner.Keyer.SnapshotKey(id)
	if data, hit, err := s.runner.Cache.Get(ctx, key); err == nil && hit {
		var snap maze.Snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return &snap, nil
		}
	}

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(doc.Snapshot); err == nil {
		_ = s.runner.Cache.Set(ctx, key, data, cache.TTLSnapshot)
	}
	return doc.Snapshot, nil
}

// =============================================================================
// Layout and render
// =============================================================================

type layoutResponse struct {
	Metrics layout.Metrics `json:"metrics"`
	Cells   int            `json:"cells"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	snap, err := s.snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := renderOptions(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Snapshot = snap
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	l, m, _, err := s.runner.ComputeGeometryWithCacheInfo(r.Context(), snap, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, layoutResponse{Metrics: m, Cells: len(l.Cells)})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	snap, err := s.snapshot(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := renderOptions(r, format)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Snapshot = snap

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("X-Cache-Geometry", strconv.FormatBool(result.CacheInfo.GeometryHit))
	w.Header().Set("X-Cache-Render", strconv.FormatBool(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// renderOptions reads pipeline options from the query string.
func renderOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := &query{values: r.URL.Query()}
	opts := pipeline.Options{
		Formats:    []string{format},
		Topology:   q.str("topology"),
		Palette:    q.str("palette"),
		Background: q.str("background"),
		Tint:       q.str("tint"),
	}
	opts.Width = q.float("width")
	opts.Height = q.float("height")
	opts.Scale = q.float("scale")
	opts.CellSize = q.float("cell_size")
	opts.PNGScale = q.float("png_scale")
	opts.HeatMap = q.bool("heatmap")
	opts.Gradient = q.bool("gradient")
	opts.Solution = q.bool("solution")
	opts.SolutionLine = q.bool("line")
	opts.Detailed = q.bool("detailed")
	opts.Refresh = q.bool("refresh")
	return opts, q.err
}

// query collects the first parse error so callers can read every
// parameter before checking.
type query struct {
	values map[string][]string
	err    error
}

func (q *query) str(key string) string {
	if v := q.values[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}

func (q *query) float(key string) float64 {
	v := q.str(key)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil && q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "%s: not a number: %q", key, v)
	}
	return f
}

func (q *query) bool(key string) bool {
	v := q.str(key)
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil && q.err == nil {
		q.err = errors.New(errors.ErrCodeInvalidInput, "%s: not a boolean: %q", key, v)
	}
	return b
}

// =============================================================================
// Generation
// =============================================================================

type generateResponse struct {
	createResponse
	Solution []maze.Coordinates `json:"solution,omitempty"`
	Steps    int                `json:"steps,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.engine == nil {
		errorJSON(w, http.StatusNotImplemented, errors.ErrCodeUnsupported, "no maze engine configured")
		return
	}
	var req maze.Request
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, errors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, err)
		return
	}

	ctx := r.Context()
	h, snap, err := s.engine.Generate(ctx, req)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "generate maze"))
		return
	}
	defer func() {
		if err := s.engine.Destroy(h); err != nil {
			s.logger.Warn("destroy grid", "error", err)
		}
	}()

	created, err := s.save(ctx, snap)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := generateResponse{createResponse: created}
	if path, err := s.engine.SolutionPathOrder(ctx, h); err == nil {
		resp.Solution = path
	}
	if req.CaptureSteps {
		if steps, err := s.engine.GenerationSteps(ctx, h); err == nil {
			resp.Steps = len(steps)
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}
