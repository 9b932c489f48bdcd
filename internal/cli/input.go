// Package cli handles cmd line input and predictions for DBG and testing various features
package cli

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hbarrien/nextwordpredictor/internal/logger"
	"github.com/hbarrien/nextwordpredictor/pkg/predict"
)

// InputHandler processes user phrases from stdin and prints the ranked
// next-word predictions with timing info.
type InputHandler struct {
	engine     *predict.Engine
	maxTextLen int
	log        *log.Logger
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(engine *predict.Engine, maxTextLen int) *InputHandler {
	if maxTextLen <= 0 {
		maxTextLen = 256
	}
	return &InputHandler{
		engine:     engine,
		maxTextLen: maxTextLen,
		log:        logger.New("nextword"),
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin, and passes
// the trimmed phrase to handleInput() for processing. Loop terminates if
// an error occurs while reading from stdin.
func (h *InputHandler) Start() error {
	h.log.Print("NextWord CLI")
	reader := bufio.NewReader(os.Stdin)
	h.log.Print("type a phrase and press Enter to see predictions (Ctrl+C to exit):")

	for {
		h.log.Print("> ")
		text, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		h.handleInput(text)
	}
}

// handleInput runs one prediction and prints its outcome, keeping the
// three terminal cases visually distinct: invalid input, no prediction,
// and a ranked list.
func (h *InputHandler) handleInput(text string) {
	if len(text) > h.maxTextLen {
		h.log.Errorf("Input too long: %d bytes", len(text))
		return
	}

	start := time.Now()
	prediction, err := h.engine.Predict(text)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, predict.ErrInvalidInput) {
			h.log.Warnf("Invalid input: %q (letters, digits, apostrophes and basic punctuation only; no number-only words)", text)
			return
		}
		h.log.Errorf("Prediction failed: %v", err)
		return
	}

	if len(prediction.Candidates) == 0 {
		h.log.Infof("No prediction for: %q", text)
		return
	}

	h.log.Infof("Predicted at %s order in %v:", prediction.Order, elapsed)
	for i, c := range prediction.Candidates {
		h.log.Infof("  %d. %-20s %.6e", i+1, c.Word, c.Score)
	}
}
