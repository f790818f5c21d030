// Package state records annotation runs and the files they processed in a
// SQLite database, so repeated runs can report what changed.
package state

import "time"

// RunStatus is the lifecycle state of a run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of the annotator over a set of files.
type Run struct {
	ID          string     `json:"id" yaml:"id"`
	Status      RunStatus  `json:"status" yaml:"status"`
	StartedAt   time.Time  `json:"started_at" yaml:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty" yaml:"error,omitempty"`
	Files       int        `json:"files" yaml:"files"`
}

// FileRecord is the outcome of annotating one file within a run.
type FileRecord struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	SourceID    int       `json:"source_id" yaml:"source_id"`
	Path        string    `json:"path" yaml:"path"`
	ContentHash string    `json:"content_hash" yaml:"content_hash"`
	Nodes       int       `json:"nodes" yaml:"nodes"`
	Folded      int       `json:"folded" yaml:"folded"`
	Spanned     int       `json:"spanned" yaml:"spanned"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	RecordedAt  time.Time `json:"recorded_at" yaml:"recorded_at"`
}

// Store persists run history.
type Store interface {
	Open(path string) error
	Close() error
	Migrate() error

	CreateRun() (*Run, error)
	CompleteRun(id string, status RunStatus, errMsg string) error
	GetRun(id string) (*Run, error)
	ListRuns(limit int) ([]*Run, error)

	RecordFile(rec *FileRecord) error
	ListFiles(runID string) ([]*FileRecord, error)
	LastHash(path string) (string, error)
}

var _ Store = (*SQLiteStore)(nil)
