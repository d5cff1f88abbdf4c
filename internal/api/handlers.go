package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jverhoeven/anchormap/pkg/cache"
	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/layout"
	"github.com/jverhoeven/anchormap/pkg/mapfile"
	"github.com/jverhoeven/anchormap/pkg/render/dot"
	"github.com/jverhoeven/anchormap/pkg/render/layoutjson"
	"github.com/jverhoeven/anchormap/pkg/render/svgmap"
)

// maxMapSize bounds request bodies; map descriptions are small text files.
const maxMapSize = 1 << 20

// arrangement is the outcome of one map arrangement, enough to feed any
// response format.
type arrangement struct {
	canvas *canvas.Canvas
	result *layout.Result
	valid  bool
}

// handleLayout arranges the posted map and responds with the layout JSON
// document.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	body, opts, err := s.readRequest(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	key := s.cfg.Keyer.LayoutKey(cache.Hash(body), opts)
	if data, hit, _ := s.cfg.Cache.Get(r.Context(), key); hit {
		s.respond(w, "application/json", data, true)
		return
	}

	arr, err := s.arrange(body, opts)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}
	data, err := layoutjson.Marshal(arr.canvas, arr.valid)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	_ = s.cfg.Cache.Set(r.Context(), key, data, s.cfg.CacheTTL)
	s.respond(w, "application/json", data, false)
}

// handleRender arranges the posted map and responds with a rendered
// artifact: SVG by default, DOT with ?format=dot.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	body, opts, err := s.readRequest(r)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "svg"
	}
	contentType, ok := map[string]string{
		"svg": "image/svg+xml",
		"dot": "text/vnd.graphviz",
	}[format]
	if !ok {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("unknown format %q", format))
		return
	}

	key := s.cfg.Keyer.ArtifactKey(s.cfg.Keyer.LayoutKey(cache.Hash(body), opts), format)
	if data, hit, _ := s.cfg.Cache.Get(r.Context(), key); hit {
		s.respond(w, contentType, data, true)
		return
	}

	arr, err := s.arrange(body, opts)
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	var data []byte
	switch format {
	case "svg":
		data = svgmap.Render(arr.canvas, svgmap.WithScale(s.cfg.Scale))
	case "dot":
		data = []byte(dot.ToDOT(arr.result.Top, arr.result.GroupTrees))
	}

	_ = s.cfg.Cache.Set(r.Context(), key, data, s.cfg.CacheTTL)
	s.respond(w, contentType, data, false)
}

// readRequest consumes the map description body and resolves per-request
// arrangement options.
func (s *Server) readRequest(r *http.Request) ([]byte, cache.LayoutKeyOpts, error) {
	body, err := io.ReadAll(http.MaxBytesReader(nil, r.Body, maxMapSize))
	if err != nil {
		return nil, cache.LayoutKeyOpts{}, fmt.Errorf("reading map: %w", err)
	}
	if len(body) == 0 {
		return nil, cache.LayoutKeyOpts{}, fmt.Errorf("empty map description")
	}
	opts := cache.LayoutKeyOpts{
		MinSpacing:  floatParam(r, "spacing", s.cfg.MinSpacing),
		GroupMargin: floatParam(r, "margin", s.cfg.GroupMargin),
	}
	return body, opts, nil
}

// arrange runs the full pipeline on a scratch canvas.
func (s *Server) arrange(body []byte, opts cache.LayoutKeyOpts) (*arrangement, error) {
	m, err := mapfile.Load(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	plan, err := m.Instantiate(mapfile.Options{
		MinSpacing:  opts.MinSpacing,
		GroupMargin: opts.GroupMargin,
	})
	if err != nil {
		return nil, err
	}

	c := canvas.New()
	res, err := layout.ArrangeWithLogger(c, plan, s.cfg.Logger)
	if err != nil {
		return nil, err
	}
	valid := layout.ValidateWithLogger(c, plan.LeafShapes(), s.cfg.Logger)
	return &arrangement{canvas: c, result: res, valid: valid}, nil
}

func (s *Server) respond(w http.ResponseWriter, contentType string, data []byte, cached bool) {
	w.Header().Set("Content-Type", contentType)
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Write(data)
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.cfg.Logger.Debug("request failed", "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
