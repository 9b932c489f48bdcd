package server

import (
	"errors"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hbarrien/nextwordpredictor/pkg/config"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
)

// Server handles the msgpack IPC for next-word predictions.
type Server struct {
	engine     *predict.Engine
	dec        *msgpack.Decoder
	enc        *msgpack.Encoder
	maxTextLen int
}

// NewServer creates a prediction server using stdin/stdout for IPC.
func NewServer(engine *predict.Engine, cfg *config.Config) *Server {
	maxTextLen := cfg.Server.MaxTextLen
	if maxTextLen <= 0 {
		maxTextLen = 256
	}
	return &Server{
		engine:     engine,
		dec:        msgpack.NewDecoder(os.Stdin),
		enc:        msgpack.NewEncoder(os.Stdout),
		maxTextLen: maxTextLen,
	}
}

// Start begins listening for IPC requests. It returns nil when the client
// closes the pipe.
func (s *Server) Start() error {
	log.Debug("Starting prediction server.")

	s.send(map[string]string{"status": "ready"})

	for {
		var request PredictRequest
		if err := s.dec.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handlePredict(request)
	}
}

// handlePredict processes a prediction request. Input the normalizer
// rejects maps to a 400 error frame, a corpus failure to 500, and a valid
// phrase with no evidence to an empty word list.
func (s *Server) handlePredict(request PredictRequest) {
	if request.Text == "" {
		s.sendError(request.ID, "Missing 't' parameter", 400)
		log.Debug("Text is empty in request")
		return
	}
	if len(request.Text) > s.maxTextLen {
		s.sendError(request.ID, "Text exceeds maximum length", 400)
		log.Debugf("Text too long in request: %d bytes", len(request.Text))
		return
	}

	start := time.Now()
	prediction, err := s.engine.Predict(request.Text)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, predict.ErrInvalidInput) {
			s.sendError(request.ID, "Invalid input", 400)
			return
		}
		log.Errorf("Prediction failed: %v", err)
		s.sendError(request.ID, "Prediction failed", 500)
		return
	}

	words := prediction.Words()
	if limit := request.Limit; limit > 0 && limit < len(words) {
		words = words[:limit]
	}

	ranked := make([]RankedWord, len(words))
	for i, w := range words {
		ranked[i] = RankedWord{Word: w, Rank: uint16(i + 1)}
	}

	s.send(PredictResponse{
		ID:        request.ID,
		Words:     ranked,
		Count:     len(ranked),
		TimeTaken: elapsed.Microseconds(),
	})
}

// send encodes a response frame onto stdout.
func (s *Server) send(response interface{}) {
	if err := s.enc.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

// sendError sends an error frame.
func (s *Server) sendError(id, message string, code int) {
	s.send(PredictError{ID: id, Error: message, Code: code})
}
