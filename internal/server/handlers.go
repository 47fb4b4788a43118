package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chartkit/chartkit/pkg/cache"
	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/chart/axis"
	"github.com/chartkit/chartkit/pkg/chart/plot"
	"github.com/chartkit/chartkit/pkg/chart/svg"
	"github.com/chartkit/chartkit/pkg/errors"
	"github.com/chartkit/chartkit/pkg/observability"
	"github.com/chartkit/chartkit/pkg/render/raster"
)

const maxDefinitionBytes = 1 << 20

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePutChart(w http.ResponseWriter, r *http.Request) {
	var def chart.Definition
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDefinitionBytes))
	if err := dec.Decode(&def); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode chart definition"))
		return
	}

	// The URL is authoritative for the chart ID.
	def.ID = chi.URLParam(r, "chartID")

	if err := s.store.Put(r.Context(), &def); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDefinition(r.Context(), def.ID)
	writeJSON(w, http.StatusOK, map[string]string{"id": def.ID})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	def, err := s.store.Get(r.Context(), chi.URLParam(r, "chartID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	chartID := chi.URLParam(r, "chartID")
	if err := s.store.Delete(r.Context(), chartID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.invalidateDefinition(r.Context(), chartID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"charts": ids})
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	props, err := parseProps(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc, err := s.renderChart(r, chi.URLParam(r, "chartID"), props, cache.RenderKeyOpts{Format: "svg"},
		func(def *chart.Definition) ([]byte, error) {
			return plot.RenderSVG(def, props)
		})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	props, err := parseProps(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	width, err := queryInt(r.URL.Query(), "width")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := queryInt(r.URL.Query(), "height")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	keyOpts := cache.RenderKeyOpts{Format: "png", Width: width, Height: height}
	img, err := s.renderChart(r, chi.URLParam(r, "chartID"), props, keyOpts,
		func(def *chart.Definition) ([]byte, error) {
			doc, err := plot.RenderSVG(def, props)
			if err != nil {
				return nil, err
			}
			return raster.ToPNG(r.Context(), doc, raster.Options{Width: width, Height: height})
		})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(img)
}

func (s *Server) handleAxisSVG(w http.ResponseWriter, r *http.Request) {
	props, err := parseProps(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	axisID := chi.URLParam(r, "axisID")
	keyOpts := cache.RenderKeyOpts{AxisID: axisID, Format: "svg"}
	doc, err := s.renderChart(r, chi.URLParam(r, "chartID"), props, keyOpts,
		func(def *chart.Definition) ([]byte, error) {
			settings, err := def.Axis(axisID)
			if err != nil {
				return nil, err
			}
			g, err := axis.Draw(settings, props, def.Bounds)
			if err != nil {
				return nil, err
			}
			b := def.Bounds
			return svg.Render(g, b.Left*2+b.Width, b.Top*2+b.Height), nil
		})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(doc)
}

// renderChart loads a definition and renders it through fn, consulting the
// artifact cache first. Cache keys incorporate a hash of the definition, so
// stale entries are unreachable after an update.
func (s *Server) renderChart(r *http.Request, chartID string, props axis.Props, keyOpts cache.RenderKeyOpts, fn func(*chart.Definition) ([]byte, error)) ([]byte, error) {
	ctx := r.Context()

	def, defJSON, err := s.loadDefinition(ctx, chartID)
	if err != nil {
		return nil, err
	}

	key, cacheable := s.renderKey(defJSON, props, keyOpts)
	if cacheable {
		if data, ok, err := s.cache.Get(ctx, key); err != nil {
			s.logger.Warn("cache get failed", "error", err)
		} else if ok {
			observability.Cache().OnCacheHit(ctx, "render")
			return data, nil
		} else {
			observability.Cache().OnCacheMiss(ctx, "render")
		}
	}

	start := time.Now()
	observability.Render().OnRenderStart(ctx, chartID, keyOpts.Format)
	data, err := fn(def)
	observability.Render().OnRenderComplete(ctx, chartID, keyOpts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
			s.logger.Warn("cache set failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "render", len(data))
		}
	}
	return data, nil
}

// loadDefinition fetches a chart definition through the definition cache,
// falling back to the store on a miss. The marshaled form is returned
// alongside so render key hashing reuses it.
func (s *Server) loadDefinition(ctx context.Context, chartID string) (*chart.Definition, []byte, error) {
	key := s.keyer.DefinitionKey(chartID)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache get failed", "error", err)
	} else if ok {
		var def chart.Definition
		if err := json.Unmarshal(data, &def); err == nil {
			observability.Cache().OnCacheHit(ctx, "definition")
			return &def, data, nil
		}
		_ = s.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, "definition")

	def, err := s.store.Get(ctx, chartID)
	if err != nil {
		return nil, nil, err
	}
	data, err := json.Marshal(def)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode definition %q", chartID)
	}

	if err := s.cache.Set(ctx, key, data, DefinitionTTL); err != nil {
		s.logger.Warn("cache set failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "definition", len(data))
	}
	return def, data, nil
}

// invalidateDefinition drops the cached definition after a write.
func (s *Server) invalidateDefinition(ctx context.Context, chartID string) {
	if err := s.cache.Delete(ctx, s.keyer.DefinitionKey(chartID)); err != nil {
		s.logger.Warn("cache delete failed", "error", err)
	}
}

// renderKey derives the artifact cache key. Props carrying functions or
// attribute maps cannot be hashed, so those renders bypass the cache.
func (s *Server) renderKey(defJSON []byte, props axis.Props, keyOpts cache.RenderKeyOpts) (string, bool) {
	if !hashableProps(props) {
		return "", false
	}

	propsJSON, err := json.Marshal(propsFingerprint(props))
	if err != nil {
		return "", false
	}
	payload := make([]byte, 0, len(defJSON)+len(propsJSON))
	payload = append(append(payload, defJSON...), propsJSON...)
	defHash := cache.Hash(payload)
	return s.keyer.RenderKey(defHash, keyOpts), true
}

// hashableProps reports whether props only carry plain values.
func hashableProps(p axis.Props) bool {
	return p.Formatter == nil &&
		p.Primitives.Line == nil && p.Primitives.Tick == nil &&
		p.Primitives.TickLabel == nil && p.Primitives.Title == nil
}

// propsFingerprint flattens props into a JSON-friendly shape for hashing.
func propsFingerprint(p axis.Props) map[string]any {
	fp := map[string]any{
		"position":        string(p.Position),
		"tick_font_size":  p.TickFontSize,
		"label_font_size": p.LabelFontSize,
		"tick_size":       p.TickSize,
		"tick_number":     p.TickNumber,
		"tick_min_step":   p.TickMinStep,
		"tick_max_step":   p.TickMaxStep,
		"stroke":          p.Stroke,
		"fill":            p.Fill,
		"classes":         p.Classes,
		"line_attrs":      p.LineAttrs,
		"tick_attrs":      p.TickAttrs,
		"ticklabel_attrs": p.TickLabelAttrs,
		"title_attrs":     p.TitleAttrs,
	}
	if p.DisableLine != nil {
		fp["disable_line"] = *p.DisableLine
	}
	if p.DisableTicks != nil {
		fp["disable_ticks"] = *p.DisableTicks
	}
	if p.Label != nil {
		fp["label"] = *p.Label
	}
	return fp
}

// parseProps builds the explicit override layer from query parameters.
// Absent parameters leave the stored settings in effect.
func parseProps(q url.Values) (axis.Props, error) {
	var props axis.Props

	if v := q.Get("position"); v != "" {
		pos, err := axis.ParsePosition(v)
		if err != nil {
			return axis.Props{}, err
		}
		props.Position = pos
	}
	if q.Has("label") {
		props.Label = axis.String(q.Get("label"))
	}
	if q.Has("disable_line") {
		b, err := queryBool(q, "disable_line")
		if err != nil {
			return axis.Props{}, err
		}
		props.DisableLine = axis.Bool(b)
	}
	if q.Has("disable_ticks") {
		b, err := queryBool(q, "disable_ticks")
		if err != nil {
			return axis.Props{}, err
		}
		props.DisableTicks = axis.Bool(b)
	}

	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"tick_size", &props.TickSize},
		{"tick_font_size", &props.TickFontSize},
		{"label_font_size", &props.LabelFontSize},
		{"tick_min_step", &props.TickMinStep},
		{"tick_max_step", &props.TickMaxStep},
	} {
		if v := q.Get(f.name); v != "" {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return axis.Props{}, errors.New(errors.ErrCodeInvalidFormat, "parameter %s: %q is not a number", f.name, v)
			}
			*f.dst = x
		}
	}

	if v := q.Get("tick_number"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return axis.Props{}, errors.New(errors.ErrCodeInvalidFormat, "parameter tick_number: %q is not an integer", v)
		}
		props.TickNumber = n
	}

	props.Stroke = q.Get("stroke")
	props.Fill = q.Get("fill")

	return props, nil
}

func queryBool(q url.Values, name string) (bool, error) {
	b, err := strconv.ParseBool(q.Get(name))
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidFormat, "parameter %s: %q is not a boolean", name, q.Get(name))
	}
	return b, nil
}

func queryInt(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidFormat, "parameter %s: %q is not an integer", name, v)
	}
	return n, nil
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps an error code to an HTTP status and writes the envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeChartNotFound, errors.ErrCodeAxisNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidPosition, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidDefinition, errors.ErrCodeInvalidBounds,
		errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	var body errorBody
	body.Error.Code = string(errors.GetCode(err))
	if body.Error.Code == "" {
		body.Error.Code = string(errors.ErrCodeInternal)
	}
	body.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
