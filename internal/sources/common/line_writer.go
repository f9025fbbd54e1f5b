package common

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// FileLineHandler writes every non-empty stdout line verbatim to a file and
// counts them. The file is created (truncated) by NewFileLineHandler.
type FileLineHandler struct {
	mu    sync.Mutex
	f     *os.File
	w     *bufio.Writer
	count int
}

// NewFileLineHandler opens path for writing.
func NewFileLineHandler(path string) (*FileLineHandler, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return &FileLineHandler{f: f, w: bufio.NewWriter(f)}, nil
}

// ProcessLine implements OutputHandler.
func (h *FileLineHandler) ProcessLine(line []byte) error {
	text := strings.TrimRight(string(line), "\r")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.w.WriteString(text + "\n"); err != nil {
		return err
	}
	h.count++
	return nil
}

// Finalize flushes and closes the file.
func (h *FileLineHandler) Finalize() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.f == nil {
		return nil
	}
	flushErr := h.w.Flush()
	closeErr := h.f.Close()
	h.f = nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Count returns the number of lines written.
func (h *FileLineHandler) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count
}
