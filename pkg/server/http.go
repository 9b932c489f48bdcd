package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/hbarrien/nextwordpredictor/pkg/config"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
)

// httpPredictRequest is the JSON body of a predict call.
type httpPredictRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit,omitempty"`
}

// httpPredictResponse is the JSON reply for a successful predict call. An
// empty Words slice means valid input with no prediction found.
type httpPredictResponse struct {
	Words     []string `json:"words"`
	Count     int      `json:"count"`
	TimeTaken int64    `json:"time_us"`
}

// httpErrorResponse carries the error taxonomy over HTTP: 400 invalid
// input, 500 corpus/frequency failure.
type httpErrorResponse struct {
	Error string `json:"error"`
}

// HTTPHandler wires the prediction engine into a mux router. One route per
// user action: the front end posts the text field once per button press.
type HTTPHandler struct {
	engine     *predict.Engine
	maxTextLen int
}

// NewHTTPHandler builds the HTTP facade for an engine.
func NewHTTPHandler(engine *predict.Engine, cfg *config.Config) *HTTPHandler {
	maxTextLen := cfg.Server.MaxTextLen
	if maxTextLen <= 0 {
		maxTextLen = 256
	}
	return &HTTPHandler{engine: engine, maxTextLen: maxTextLen}
}

// Router returns the configured mux router.
func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/predict", h.handlePredict).Methods(http.MethodPost)
	r.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	return r
}

// ListenAndServe runs the HTTP facade on addr until the listener fails.
func (h *HTTPHandler) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Infof("HTTP listening on %s", addr)
	return srv.ListenAndServe()
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req httpPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, httpErrorResponse{Error: "malformed JSON body"})
		return
	}
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, httpErrorResponse{Error: "missing 'text' field"})
		return
	}
	if len(req.Text) > h.maxTextLen {
		writeJSON(w, http.StatusBadRequest, httpErrorResponse{Error: "text exceeds maximum length"})
		return
	}

	start := time.Now()
	prediction, err := h.engine.Predict(req.Text)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, predict.ErrInvalidInput) {
			writeJSON(w, http.StatusBadRequest, httpErrorResponse{Error: "invalid input"})
			return
		}
		log.Errorf("Prediction failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, httpErrorResponse{Error: "prediction failed"})
		return
	}

	words := prediction.Words()
	if req.Limit > 0 && req.Limit < len(words) {
		words = words[:req.Limit]
	}

	writeJSON(w, http.StatusOK, httpPredictResponse{
		Words:     words,
		Count:     len(words),
		TimeTaken: elapsed.Microseconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Encoding HTTP response: %v", err)
	}
}
