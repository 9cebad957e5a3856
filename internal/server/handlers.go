package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/ironsheep/shot-diff/internal/fetch"
	"github.com/ironsheep/shot-diff/internal/imaging"
	"github.com/ironsheep/shot-diff/internal/pipeline"
)

// handleHealth answers liveness probes.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCompare downloads the two images named by the i1 and i2 query
// parameters, runs the comparison, and responds with the overlay PNG.
// The number of detected rectangles is exposed in the X-Rectangles-Found
// header.
//
// Each request works in its own temporary directory, which holds the two
// downloads and the comparison artifacts and is removed when the request
// finishes, successfully or not. The session id in the file names keeps
// artifact paths unique even though concurrent requests share nothing.
//
// Input-caused failures (bad URLs, download errors, undecodable images,
// mismatched dimensions) map to 400; everything else is a 500.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	url1 := r.URL.Query().Get("i1")
	url2 := r.URL.Query().Get("i2")
	if url1 == "" || url2 == "" {
		respondError(w, http.StatusBadRequest, "missing required query parameters i1 and i2")
		return
	}
	if err := fetch.ValidateURL(url1); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := fetch.ValidateURL(url2); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tmpDir, err := os.MkdirTemp("", "shotdiff_")
	if err != nil {
		s.logger.Error("failed to create temp dir", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer os.RemoveAll(tmpDir)

	sid := uuid.NewString()[:8]
	path1 := filepath.Join(tmpDir, fmt.Sprintf("img1_%s.png", sid))
	path2 := filepath.Join(tmpDir, fmt.Sprintf("img2_%s.png", sid))

	ctx := r.Context()
	if err := s.fetcher.Download(ctx, url1, path1); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to download image: %v", err))
		return
	}
	if err := s.fetcher.Download(ctx, url2, path2); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to download image: %v", err))
		return
	}

	cfg := *s.cfg
	cfg.OutputDir = tmpDir
	p, err := pipeline.New(&cfg, pipeline.WithLogger(s.logger))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := p.Compare(ctx, path1, path2)
	if err != nil {
		if errors.Is(err, imaging.ErrDecode) || errors.Is(err, imaging.ErrDimensionMismatch) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("comparison failed", "error", err)
		respondError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	overlay, err := os.ReadFile(res.OverlayPath)
	if err != nil {
		s.logger.Error("failed to read overlay", "error", err)
		respondError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	s.logger.Info("comparison served",
		"rectangles", res.RectangleCount,
		"i1", url1,
		"i2", url2,
	)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Rectangles-Found", strconv.Itoa(res.RectangleCount))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(overlay); err != nil {
		s.logger.Warn("failed to write response", "error", err)
	}
}

// respondJSON writes payload as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// respondError writes an error message as {"error": message}.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
