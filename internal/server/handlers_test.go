package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/ironsheep/shot-diff/internal/config"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := New(config.NewConfig(), append([]Option{WithLogger(logger)}, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func solidImage(width, height int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// serveImages starts an origin server mapping each path to a fixed body
// served as image/png.
func serveImages(t *testing.T, files map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func compareURL(api, i1, i2 string) string {
	query := url.Values{}
	query.Set("i1", i1)
	query.Set("i2", i2)
	return api + "/?" + query.Encode()
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return payload["error"]
}

// leftoverTempDirs lists request work dirs remaining under root.
func leftoverTempDirs(t *testing.T, root string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(root, "shotdiff_*"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	return matches
}

func TestHandleHealth(t *testing.T) {
	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(api.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}

	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field: got %q, want ok", payload["status"])
	}
}

func TestHandleHealth_MethodNotAllowed(t *testing.T) {
	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Post(api.URL+"/health", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
}

func TestHandleCompare(t *testing.T) {
	base := solidImage(100, 100, color.RGBA{255, 255, 255, 255})
	changed := solidImage(100, 100, color.RGBA{255, 255, 255, 255})
	draw.Draw(changed, image.Rect(20, 20, 60, 60),
		image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	origin := serveImages(t, map[string][]byte{
		"/before.png": encodePNG(t, base),
		"/after.png":  encodePNG(t, changed),
	})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, origin.URL+"/before.png", origin.URL+"/after.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("status: got %d, want 200 (%s)", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type: got %q, want image/png", ct)
	}
	if got := resp.Header.Get("X-Rectangles-Found"); got != "1" {
		t.Errorf("X-Rectangles-Found: got %q, want 1", got)
	}

	overlay, err := png.Decode(resp.Body)
	if err != nil {
		t.Fatalf("response is not a valid PNG: %v", err)
	}
	if overlay.Bounds().Dx() != 100 || overlay.Bounds().Dy() != 100 {
		t.Errorf("overlay dimensions: got %dx%d, want 100x100",
			overlay.Bounds().Dx(), overlay.Bounds().Dy())
	}
}

func TestHandleCompare_IdenticalImages(t *testing.T) {
	img := encodePNG(t, solidImage(50, 50, color.RGBA{10, 20, 30, 255}))
	origin := serveImages(t, map[string][]byte{"/a.png": img, "/b.png": img})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/b.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: got %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Rectangles-Found"); got != "0" {
		t.Errorf("X-Rectangles-Found: got %q, want 0", got)
	}
}

func TestHandleCompare_MissingParameters(t *testing.T) {
	origin := serveImages(t, map[string][]byte{
		"/a.png": encodePNG(t, solidImage(10, 10, color.RGBA{A: 255})),
	})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	urls := []string{
		api.URL + "/",
		api.URL + "/?i1=" + url.QueryEscape(origin.URL+"/a.png"),
		api.URL + "/?i2=" + url.QueryEscape(origin.URL+"/a.png"),
	}
	for _, u := range urls {
		resp, err := http.Get(u)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status %d, want 400", u, resp.StatusCode)
		}
		if msg := errorMessage(t, resp); msg == "" {
			t.Errorf("%s: empty error message", u)
		}
		resp.Body.Close()
	}
}

func TestHandleCompare_RejectsNonHTTPURL(t *testing.T) {
	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, "file:///etc/passwd", "ftp://host/x.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHandleCompare_DownloadFailure(t *testing.T) {
	origin := serveImages(t, map[string][]byte{
		"/a.png": encodePNG(t, solidImage(10, 10, color.RGBA{A: 255})),
	})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/missing.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHandleCompare_UndecodableImage(t *testing.T) {
	origin := serveImages(t, map[string][]byte{
		"/a.png": encodePNG(t, solidImage(10, 10, color.RGBA{A: 255})),
		"/b.png": []byte("served as image/png but not an image"),
	})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/b.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
}

func TestHandleCompare_DimensionMismatch(t *testing.T) {
	origin := serveImages(t, map[string][]byte{
		"/a.png": encodePNG(t, solidImage(50, 50, color.RGBA{A: 255})),
		"/b.png": encodePNG(t, solidImage(60, 50, color.RGBA{A: 255})),
	})

	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/b.png"))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg == "" {
		t.Error("empty error message for dimension mismatch")
	}
}

func TestHandleCompare_RemovesTempDir(t *testing.T) {
	// Redirecting TMPDIR makes the per-request work dirs observable.
	tmpRoot := t.TempDir()
	t.Setenv("TMPDIR", tmpRoot)

	img := encodePNG(t, solidImage(30, 30, color.RGBA{200, 200, 200, 255}))
	origin := serveImages(t, map[string][]byte{
		"/a.png":   img,
		"/b.png":   img,
		"/bad.png": []byte("served as image/png but not an image"),
	})

	t.Run("after a successful compare", func(t *testing.T) {
		api := httptest.NewServer(newTestServer(t).Routes())
		resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/b.png"))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		// Close waits for the handler to return, so cleanup has run.
		api.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status: got %d, want 200", resp.StatusCode)
		}
		if dirs := leftoverTempDirs(t, tmpRoot); len(dirs) != 0 {
			t.Errorf("work dirs left behind: %v", dirs)
		}
	})

	t.Run("after a failed compare", func(t *testing.T) {
		api := httptest.NewServer(newTestServer(t).Routes())
		resp, err := http.Get(compareURL(api.URL, origin.URL+"/a.png", origin.URL+"/bad.png"))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		api.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status: got %d, want 400", resp.StatusCode)
		}
		if dirs := leftoverTempDirs(t, tmpRoot); len(dirs) != 0 {
			t.Errorf("work dirs left behind: %v", dirs)
		}
	})
}

func TestHandleCompare_MethodNotAllowed(t *testing.T) {
	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Post(api.URL+"/", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status: got %d, want 405", resp.StatusCode)
	}
}

func TestHandleCompare_UnknownPath(t *testing.T) {
	api := httptest.NewServer(newTestServer(t).Routes())
	defer api.Close()

	resp, err := http.Get(api.URL + "/compare")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", resp.StatusCode)
	}
}
