package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gosign"
)

func TestRun_Version(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"--version"}, &stdout, &stderr)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), "gosign") {
		t.Errorf("expected version output, got: %s", stdout.String())
	}
}

func TestRun_MissingAPIKey(t *testing.T) {
	t.Setenv("SIGN_MT_API_KEY", "")

	var stdout, stderr bytes.Buffer
	err := run([]string{"hello"}, &stdout, &stderr)

	if err == nil {
		t.Fatal("expected error for missing API key")
	}
	if !strings.Contains(err.Error(), "SIGN_MT_API_KEY") {
		t.Errorf("expected API key error, got: %v", err)
	}
}

func TestBuildClient_EndpointSelection(t *testing.T) {
	t.Setenv("SIGN_MT_BASE_URL", "https://env.example.com")

	tests := []struct {
		name    string
		baseURL string
		staging bool
		want    string
	}{
		{"explicit wins over staging", "https://flag.example.com", true, "https://flag.example.com"},
		{"staging wins over env", "", true, gosign.StagingBaseURL},
		{"env when neither given", "", false, "https://env.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, err := buildClient("test-key", tt.baseURL, tt.staging, 30, 0, "")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", client.BaseURL(), tt.want)
			}
		})
	}
}

// newStubServer serves both endpoints with canned responses.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/text-to-sign":
			json.NewEncoder(w).Encode(map[string]string{"video_url": "https://x/1.mp4"})
		case "/sign-to-text":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"translated_text": "Hello",
				"confidence":      0.9,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}

func TestRun_TextToSign(t *testing.T) {
	server := newStubServer(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--api-key", "test-key",
		"--base-url", server.URL,
		"--quiet",
		"hello", "world",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.TrimSpace(stdout.String()) != "https://x/1.mp4" {
		t.Errorf("expected video URL on stdout, got: %s", stdout.String())
	}
}

func TestRun_TextToSignJSON(t *testing.T) {
	server := newStubServer(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--api-key", "test-key",
		"--base-url", server.URL,
		"--quiet", "--json",
		"hello",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &out); err != nil {
		t.Fatalf("expected JSON output, got: %s", stdout.String())
	}
	if out["video_url"] != "https://x/1.mp4" {
		t.Errorf("unexpected video_url: %v", out["video_url"])
	}
}

func TestRun_SignToText(t *testing.T) {
	server := newStubServer(t)

	dir := t.TempDir()
	imagePath := filepath.Join(dir, "sign.png")
	if err := os.WriteFile(imagePath, []byte{0x89, 0x50, 0x4e, 0x47}, 0o600); err != nil {
		t.Fatalf("writing image: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--api-key", "test-key",
		"--base-url", server.URL,
		"--quiet",
		"--image", imagePath,
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.TrimSpace(stdout.String()) != "Hello" {
		t.Errorf("expected recognized text on stdout, got: %s", stdout.String())
	}
}

func TestRun_PageMode(t *testing.T) {
	server := newStubServer(t)

	dir := t.TempDir()
	pagePath := filepath.Join(dir, "page.html")
	page := `<html><body><p>Hello</p></body></html>`
	if err := os.WriteFile(pagePath, []byte(page), 0o600); err != nil {
		t.Fatalf("writing page: %v", err)
	}

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--api-key", "test-key",
		"--base-url", server.URL,
		"--quiet", "--page",
		pagePath,
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(stdout.String(), `data-sign-video="https://x/1.mp4"`) {
		t.Errorf("expected annotated page, got: %s", stdout.String())
	}
}

func TestRun_CacheFileRoundTrip(t *testing.T) {
	server := newStubServer(t)

	dir := t.TempDir()
	cachePath := filepath.Join(dir, "cache.json")

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--api-key", "test-key",
		"--base-url", server.URL,
		"--quiet",
		"--cache-file", cachePath,
		"hello",
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		t.Fatalf("expected cache file to be written: %v", err)
	}
	if !strings.Contains(string(data), "https://x/1.mp4") {
		t.Errorf("expected cached video URL in file, got: %s", data)
	}
}

func TestRun_GlossWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	var stdout, stderr bytes.Buffer
	err := run([]string{"--gloss", "hello"}, &stdout, &stderr)

	if err == nil || !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("expected OPENAI_API_KEY error, got: %v", err)
	}
}
