package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/palettegen/internal/colour"
	"github.com/jmylchreest/palettegen/internal/image"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// PalettesResponse is returned by POST /api/v1/palettes.
type PalettesResponse struct {
	colour.PaletteJSON

	// Width and Height are the dimensions of the sampled (downsampled) image.
	Width  int `json:"width"`
	Height int `json:"height"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, err string, msg string) {
	writeJSON(w, status, ErrorResponse{Error: err, Message: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCreatePalettes generates both palettes for an uploaded image.
func (s *Server) handleCreatePalettes(w http.ResponseWriter, r *http.Request) {
	settings, mode, err := s.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_parameter", err.Error())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large",
				fmt.Sprintf("upload exceeds %d bytes", s.config.MaxUploadBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_upload", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing_image", "multipart field \"image\" is required")
		return
	}
	defer file.Close()

	img, format, err := image.DecodeNamed(file, header.Filename, 0)
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_image", err.Error())
		return
	}

	sampled := image.Downsample(img, image.MaxDimension)
	pixels := colour.Pixels(sampled)
	pixelsProcessed.Add(float64(len(pixels)))

	start := time.Now()
	buckets := colour.Aggregate(pixels, settings.HighVariety)
	aggregationSeconds.Observe(time.Since(start).Seconds())
	bucketCount.Observe(float64(len(buckets)))

	palettes := colour.ComposePalettes(buckets, settings)

	s.log.Debug("generated palettes",
		"format", format,
		"pixels", len(pixels),
		"buckets", len(buckets),
		"colours", len(palettes.Primary),
	)

	b := sampled.Bounds()
	writeJSON(w, http.StatusOK, PalettesResponse{
		PaletteJSON: colour.NewPaletteJSON(palettes, len(buckets), settings, mode),
		Width:       b.Dx(),
		Height:      b.Dy(),
	})
}

// parseQuery overlays the request's query parameters on the server defaults.
// Out of range colour counts and hue positions are clamped; malformed values
// are rejected.
func (s *Server) parseQuery(q url.Values) (colour.Settings, colour.DisplayMode, error) {
	settings := s.config.Defaults
	mode := s.config.Display

	if v := q.Get("colours"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return settings, mode, fmt.Errorf("colours must be an integer: %q", v)
		}
		settings.Count = n
	}

	for name, dst := range map[string]*bool{
		"highVariety": &settings.HighVariety,
		"muller":      &settings.Muller,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return settings, mode, fmt.Errorf("%s must be a boolean: %q", name, v)
			}
			*dst = b
		}
	}

	if v := q.Get("hue"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return settings, mode, fmt.Errorf("hue must be an integer between 0 and %d: %q", colour.HueSliderMax, v)
		}
		settings.HueOffset = colour.HueOffsetFromSlider(n)
	}

	if v := q.Get("format"); v != "" {
		m, err := colour.ParseDisplayMode(v)
		if err != nil {
			return settings, mode, err
		}
		mode = m
	}

	return settings.Normalise(), mode, nil
}
