package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/pkg/config"
	"github.com/hbarrien/nextwordpredictor/pkg/corpus"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// newTestHandler builds an HTTP handler over a small fixture corpus whose
// trigram order ranks "last" above "great" for the phrase "thank you for
// the".
func newTestHandler(t *testing.T) *HTTPHandler {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		corpus.Bigram.FileName():    "zq zr\n",
		corpus.Trigram.FileName():   "for the great\nfor the last\n",
		corpus.Quadgram.FileName():  "zq zr zs zt\n",
		corpus.Pentagram.FileName(): "zq zr zs zt zu\n",
		corpus.Sextagram.FileName(): "zq zr zs zt zu zv\n",
		"term_names.txt":            "for\nthe\nlast\n",
		"term_counts.txt":           "10\n50\n3\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	engine := predict.NewEngine(predict.Options{DataDir: dir, Seed: 1})
	return NewHTTPHandler(engine, config.DefaultConfig())
}

func doPredict(t *testing.T, h *HTTPHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	return rec
}

func TestHTTPPredictRanked(t *testing.T) {
	rec := doPredict(t, newTestHandler(t), `{"text": "thank you for the"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp httpPredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 || len(resp.Words) != 2 {
		t.Fatalf("count = %d words = %v, want 2 ranked words", resp.Count, resp.Words)
	}
	if resp.Words[0] != "last" || resp.Words[1] != "great" {
		t.Errorf("words = %v, want [last great]", resp.Words)
	}
}

func TestHTTPPredictLimit(t *testing.T) {
	rec := doPredict(t, newTestHandler(t), `{"text": "thank you for the", "limit": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp httpPredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Words) != 1 || resp.Words[0] != "last" {
		t.Errorf("words = %v, want [last]", resp.Words)
	}
}

func TestHTTPPredictNoPrediction(t *testing.T) {
	rec := doPredict(t, newTestHandler(t), `{"text": "unattested words only"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for valid input with no evidence", rec.Code)
	}
	var resp httpPredictResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 || len(resp.Words) != 0 {
		t.Errorf("words = %v, want empty", resp.Words)
	}
}

func TestHTTPPredictInvalidInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"digit token", `{"text": "see you in 2020"}`},
		{"bad characters", `{"text": "hello@world"}`},
		{"missing text", `{}`},
		{"malformed json", `{"text": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doPredict(t, newTestHandler(t), tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHTTPPredictMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/predict", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHTTPHealthz(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
