package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/testify-automation/testify/internal/logging"
	"github.com/testify-automation/testify/internal/results"
)

// History is the ordered log of recorded runs, oldest first.
type History []Run

// Load reads the history file. A missing, unreadable or corrupt file yields
// an empty history; the latter two are logged. Records that parse as JSON
// but do not fit Run are kept and saved back unchanged, so a readable
// history never shrinks.
func Load(path string, logger *slog.Logger) History {
	log := logging.For(logger, "history")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("no history file, starting empty", "path", path)
		return History{}
	}
	if err != nil {
		log.Warn("history file unreadable, starting empty", "path", path, "error", err)
		return History{}
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		log.Warn("history file corrupt, starting empty", "path", path, "error", err)
		return History{}
	}

	h := make(History, 0, len(records))
	for i, record := range records {
		h = append(h, decodeRun(record, i+1, log))
	}
	return h
}

// decodeRun decodes the index-th stored record. A record that does not fit
// Run keeps whatever fields did decode and remembers its original bytes.
func decodeRun(record json.RawMessage, index int, log *slog.Logger) Run {
	var r Run
	if err := json.Unmarshal(record, &r); err != nil {
		log.Warn("history record kept as stored", "index", index, "error", err)
		r.raw = append(json.RawMessage(nil), record...)
	}
	if r.Scenarios == nil {
		r.Scenarios = []results.ScenarioResult{}
	}
	return r
}

// Append adds run at the end, suffixing its run id when an earlier run
// already uses it. It returns the 1-based index of the new run.
func (h *History) Append(run Run) int {
	taken := make(map[string]bool, len(*h))
	for _, r := range *h {
		taken[r.RunID] = true
	}
	run.RunID = uniqueRunID(run.RunID, func(id string) bool { return taken[id] })
	*h = append(*h, run)
	return len(*h)
}

// Last returns the most recent run.
func (h History) Last() (Run, bool) {
	if len(h) == 0 {
		return Run{}, false
	}
	return h[len(h)-1], true
}

// Tail returns the last n runs, or all of them when n <= 0.
func (h History) Tail(n int) History {
	if n <= 0 || n >= len(h) {
		return h
	}
	return h[len(h)-n:]
}

// Slim drops the per-scenario detail of every run.
func (h History) Slim() []RunSummary {
	slim := make([]RunSummary, 0, len(h))
	for _, r := range h {
		slim = append(slim, r.RunSummary)
	}
	return slim
}

// Save overwrites path with the full history, pretty-printed.
func (h History) Save(path string) error {
	if h == nil {
		h = History{}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return nil
}
