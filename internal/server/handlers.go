package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/shapescatter/pkg/buildinfo"
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/geom"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

const maxBodySize = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleRenderQuery(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	s.render(w, r, req)
}

func (s *Server) handleRenderJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req renderRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	s.render(w, r, req)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, req renderRequest) {
	opts, format, err := req.apply(s.defaults)
	if err != nil {
		writeError(w, err)
		return
	}
	if s.cfg.MaxCount > 0 && opts.Count > s.cfg.MaxCount {
		writeError(w, errors.New(errors.ErrCodeInvalidCount, "count %d exceeds the server limit of %d", opts.Count, s.cfg.MaxCount))
		return
	}
	opts.SetRenderDefaults()
	if err := s.checkSurface(opts.Surface()); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if !errors.IsValidation(err) {
			s.logger.Error("render failed", "error", err, "id", RequestIDFromContext(r.Context()))
		}
		writeError(w, err)
		return
	}

	data := result.Artifacts[format]
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set(HeaderSeed, strconv.FormatUint(result.Seed, 10))
	if result.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	if req.Download {
		name := errors.EnsureExtension(pipeline.DefaultFileName, format)
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code"`
}

// writeError maps validation failures to 400 and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.IsValidation(err) {
		status = http.StatusBadRequest
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// checkSurface rejects surfaces larger than the server allows before any
// pixel buffer is allocated.
func (s *Server) checkSurface(surface geom.Surface) error {
	if err := surface.Validate(); err != nil {
		return err
	}
	if s.cfg.MaxPixels <= 0 {
		return nil
	}
	if w, h := surface.Pixels(); w*h > s.cfg.MaxPixels {
		return errors.New(errors.ErrCodeInvalidSurface, "surface %dx%d exceeds the server limit of %d pixels", w, h, s.cfg.MaxPixels)
	}
	return nil
}
