package security

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateImageURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "https", url: "https://example.com/a.png"},
		{name: "http", url: "http://example.com/a.png"},
		{name: "empty", url: "", wantErr: true},
		{name: "ftp", url: "ftp://example.com/a.png", wantErr: true},
		{name: "no host", url: "https:///a.png", wantErr: true},
		{name: "relative", url: "a.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateImageURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	if !IsURL("https://example.com/x.jpg") || !IsURL("http://example.com") {
		t.Error("expected HTTP(S) URLs to be recognised")
	}
	if IsURL("/tmp/http://x.png") || IsURL("photo.png") {
		t.Error("expected file paths not to be treated as URLs")
	}
}

func TestLimitedReader(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 10)

	got, err := io.ReadAll(NewLimitedReader(bytes.NewReader(data), 10))
	if err != nil || len(got) != 10 {
		t.Errorf("reading exactly the limit: %d bytes, err = %v", len(got), err)
	}

	_, err = io.ReadAll(NewLimitedReader(bytes.NewReader(data), 9))
	if !errors.Is(err, ErrSizeLimitExceeded) {
		t.Errorf("reading past the limit: err = %v, want ErrSizeLimitExceeded", err)
	}

	got, err = io.ReadAll(NewLimitedReader(strings.NewReader("abc"), 100))
	if err != nil || string(got) != "abc" {
		t.Errorf("short input: %q, err = %v", got, err)
	}
}
