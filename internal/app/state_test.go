package app

import (
	"path/filepath"
	"testing"

	"github.com/rydeebs/getlogo/internal/extractor"
	"github.com/rydeebs/getlogo/internal/table"
)

func TestState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	src := &RunState{
		Cursor: 40,
		Records: []extractor.LogoRecord{{
			SiteURL:  "example.com",
			Domain:   "example.com",
			Filename: "example_com_deadbeef.png",
			Format:   "png",
			Path:     "logos/example_com_deadbeef.png",
		}},
		Results: map[int]table.Result{
			3: {Found: true, Filename: "example_com_deadbeef.png"},
			4: {},
		},
	}
	if err := saveState(path, src); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := loadState(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cursor != 40 {
		t.Fatalf("cursor mismatch: %d", got.Cursor)
	}
	if len(got.Records) != 1 || got.Records[0].Filename != "example_com_deadbeef.png" {
		t.Fatalf("records mismatch: %+v", got.Records)
	}
	if r := got.Results[3]; !r.Found || r.Filename != "example_com_deadbeef.png" {
		t.Fatalf("results mismatch: %+v", got.Results)
	}
}

func TestState_MissingFileIsFresh(t *testing.T) {
	st, err := loadState(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.Cursor != 0 || len(st.Records) != 0 || st.Results == nil {
		t.Fatalf("expected fresh state, got %+v", st)
	}
}
