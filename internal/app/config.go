package app

import "time"

type Config struct {
	InputPath string
	URLColumn string

	// Outputs
	OutDir      string
	ResultsPath string
	MappingPath string
	ArchivePath string
	// SheetPath enables the PDF contact sheet when non-empty.
	SheetPath string
	StatePath string

	// Batching
	BatchSize   int
	SingleBatch bool
	Reset       bool

	// Network behavior
	Delay     time.Duration
	Timeout   time.Duration
	UserAgent string

	Verbose bool
}
