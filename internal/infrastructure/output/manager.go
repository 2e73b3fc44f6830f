// Package output maps analysis stages and research titles to artifact paths
// on the local filesystem. Writes are direct create/overwrite; there is no
// locking or atomic replace.
package output

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/transcriptlab/insights/errors"
)

// Stage artifact names, in workflow order.
const (
	StageAnalysis  = "1_analysis"
	StageFinal     = "2_final_output"
	StageIteration = "3_iteration"
)

// Manager writes stage artifacts under a per-run versioned directory:
// <base>/<transcript-name>/<timestamp>/<stage>.md.
type Manager struct {
	baseDir        string
	transcriptName string
	timestamp      string
}

// NewManager creates a Manager for one transcript run. The timestamp is
// fixed at construction so every stage of the run lands in one directory.
func NewManager(baseDir, transcriptName string) *Manager {
	return &Manager{
		baseDir:        baseDir,
		transcriptName: transcriptName,
		timestamp:      time.Now().Format("20060102_150405"),
	}
}

// SaveStage writes content to the stage artifact and returns its path.
func (m *Manager) SaveStage(content, stage string) (string, error) {
	dir := filepath.Join(m.baseDir, m.transcriptName, m.timestamp)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.ErrIO(err)
	}

	path := filepath.Join(dir, stage+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", apperrors.ErrIO(err)
	}
	return path, nil
}

// SaveResearch writes a research document under dir with a slugified name
// derived from the title and returns its path.
func SaveResearch(dir, title, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.ErrIO(err)
	}

	path := filepath.Join(dir, Slugify(title)+".md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", apperrors.ErrIO(err)
	}
	return path, nil
}

// Slugify lowercases the title, replaces spaces with underscores, and caps
// the result at 50 characters.
func Slugify(title string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "_")
	slug = strings.TrimPrefix(slug, "#_")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	if slug == "" {
		slug = "research"
	}
	return slug
}
