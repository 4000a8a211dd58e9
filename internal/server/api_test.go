package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/jmylchreest/palettegen/internal/colour"
)

// twoColourPNG returns a 2x1 image with a red and a green pixel.
func twoColourPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func uploadRequest(t *testing.T, query, field, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/palettes"+query, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func hexes(cs []colour.ColourJSON) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Hex
	}
	return out
}

func TestCreatePalettes(t *testing.T) {
	srv := New(DefaultConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "?colours=2", "image", "two.png", twoColourPNG(t)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp PalettesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if want := []string{"#ff0000", "#00ff00"}; !slices.Equal(hexes(resp.Primary), want) {
		t.Errorf("primary = %v, want %v", hexes(resp.Primary), want)
	}
	if want := []string{"#00ffff", "#ff00ff"}; !slices.Equal(hexes(resp.Complementary), want) {
		t.Errorf("complementary = %v, want %v", hexes(resp.Complementary), want)
	}
	if resp.Count != 2 || resp.Buckets != 2 || resp.Width != 2 || resp.Height != 1 {
		t.Errorf("count=%d buckets=%d size=%dx%d", resp.Count, resp.Buckets, resp.Width, resp.Height)
	}
	if resp.Settings.Count != 2 {
		t.Errorf("settings.colours = %d, want 2", resp.Settings.Count)
	}
}

func TestCreatePalettesQuery(t *testing.T) {
	srv := New(DefaultConfig(), nil)

	tests := []struct {
		name        string
		query       string
		wantPrimary []string
		wantCount   int
		wantDisplay string
	}{
		{name: "count clamped up", query: "?colours=0", wantPrimary: []string{"#ff0000"}, wantCount: 1, wantDisplay: "#ff0000"},
		{name: "count clamped down", query: "?colours=99", wantPrimary: []string{"#ff0000", "#00ff00"}, wantCount: 20, wantDisplay: "#ff0000"},
		{name: "hue slider", query: "?colours=1&hue=25", wantPrimary: []string{"#80ff00"}, wantCount: 1, wantDisplay: "#80ff00"},
		{name: "muller", query: "?colours=2&muller=true", wantPrimary: []string{"#ff0073", "#73ff00"}, wantCount: 2, wantDisplay: "#ff0073"},
		{name: "rgb display", query: "?colours=1&format=rgb", wantPrimary: []string{"#ff0000"}, wantCount: 1, wantDisplay: "rgb(255, 0, 0)"},
		{name: "hsl display", query: "?colours=1&format=HSL", wantPrimary: []string{"#ff0000"}, wantCount: 1, wantDisplay: "hsl(0, 100%, 50%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, uploadRequest(t, tt.query, "image", "two.png", twoColourPNG(t)))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}

			var resp PalettesResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !slices.Equal(hexes(resp.Primary), tt.wantPrimary) {
				t.Errorf("primary = %v, want %v", hexes(resp.Primary), tt.wantPrimary)
			}
			if resp.Settings.Count != tt.wantCount {
				t.Errorf("settings.colours = %d, want %d", resp.Settings.Count, tt.wantCount)
			}
			if resp.Primary[0].Display != tt.wantDisplay {
				t.Errorf("display = %q, want %q", resp.Primary[0].Display, tt.wantDisplay)
			}
		})
	}
}

func TestCreatePalettesErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxUploadBytes = 1024
	srv := New(cfg, nil)

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantError  string
	}{
		{
			name:       "bad colours",
			req:        uploadRequest(t, "?colours=many", "image", "a.png", twoColourPNG(t)),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_parameter",
		},
		{
			name:       "bad boolean",
			req:        uploadRequest(t, "?muller=perhaps", "image", "a.png", twoColourPNG(t)),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_parameter",
		},
		{
			name:       "bad format",
			req:        uploadRequest(t, "?format=cmyk", "image", "a.png", twoColourPNG(t)),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_parameter",
		},
		{
			name:       "wrong field",
			req:        uploadRequest(t, "", "file", "a.png", twoColourPNG(t)),
			wantStatus: http.StatusBadRequest,
			wantError:  "missing_image",
		},
		{
			name:       "not an image",
			req:        uploadRequest(t, "", "image", "a.png", []byte("hello")),
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "unsupported_image",
		},
		{
			name:       "too large",
			req:        uploadRequest(t, "", "image", "a.png", bytes.Repeat([]byte{1}, 4096)),
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "payload_too_large",
		},
		{
			name:       "not multipart",
			req:        httptest.NewRequest(http.MethodPost, "/api/v1/palettes", strings.NewReader("{}")),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_upload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, tt.req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body = %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error != tt.wantError || resp.Message == "" {
				t.Errorf("error = %+v, want code %q with a message", resp, tt.wantError)
			}
		})
	}
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	New(DefaultConfig(), nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"ok"}` {
		t.Errorf("body = %s", got)
	}
}

func TestMetrics(t *testing.T) {
	srv := New(DefaultConfig(), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, uploadRequest(t, "", "image", "two.png", twoColourPNG(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		`palettegen_api_requests_total{route="/api/v1/palettes",status="200"}`,
		"palettegen_api_aggregation_duration_seconds_count",
		"palettegen_api_buckets_bucket",
		"palettegen_api_pixels_processed_total",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %s", want)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	New(DefaultConfig(), nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/palettes", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
