package entities

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisRun records one saved stage artifact in the run ledger.
type AnalysisRun struct {
	ID         uuid.UUID `json:"id"`
	Transcript string    `json:"transcript"`
	Stage      string    `json:"stage"`
	Path       string    `json:"path"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewAnalysisRun creates a ledger record for a saved artifact.
func NewAnalysisRun(transcript, stage, path string) *AnalysisRun {
	return &AnalysisRun{
		ID:         uuid.New(),
		Transcript: transcript,
		Stage:      stage,
		Path:       path,
		CreatedAt:  time.Now(),
	}
}
