package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rydeebs/getlogo/internal/extractor"
	"github.com/rydeebs/getlogo/internal/table"
)

// RunState is the explicit accumulation passed through each batch: the next
// unprocessed offset plus everything extracted so far. Persisting it lets
// repeated invocations resume where the last one stopped. The cursor never
// decreases within a run.
type RunState struct {
	Cursor  int                    `json:"cursor"`
	Records []extractor.LogoRecord `json:"records"`
	Results map[int]table.Result   `json:"results"`
}

func newRunState() *RunState {
	return &RunState{Results: make(map[int]table.Result)}
}

// loadState reads a previously saved state, or returns a fresh one when the
// file does not exist yet.
func loadState(path string) (*RunState, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return newRunState(), nil
	}
	if err != nil {
		return nil, err
	}
	st := newRunState()
	if err := json.Unmarshal(b, st); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	if st.Results == nil {
		st.Results = make(map[int]table.Result)
	}
	return st, nil
}

func saveState(path string, st *RunState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
