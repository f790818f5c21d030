// Package engine annotates a compilation unit of contract source files and
// records each run in the state store.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/vyast/internal/state"
	"github.com/leapstack-labs/vyast/pkg/annotate"
	"github.com/leapstack-labs/vyast/pkg/ast"
	"github.com/leapstack-labs/vyast/pkg/parser"
)

// Engine parses and annotates source files.
type Engine struct {
	logger    *slog.Logger
	store     state.Store // nil when run history is disabled
	declKinds map[string]string
}

// Config holds engine configuration.
type Config struct {
	// StatePath is the path to the SQLite state database
	StatePath string
	// NoState disables run history; StatePath is ignored
	NoState bool
	// DeclKinds overrides the declaration kinds found by the parser
	DeclKinds map[string]string
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. Unless cfg.NoState is set, the state database is
// opened and migrated.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		logger:    logger,
		declKinds: cfg.DeclKinds,
	}
	if cfg.NoState {
		return e, nil
	}

	logger.Debug("opening state store", "path", cfg.StatePath)
	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize state schema: %w", err)
	}
	e.store = store
	return e, nil
}

// Close releases the state store.
func (e *Engine) Close() error {
	if e.store != nil {
		return e.store.Close()
	}
	return nil
}

// Store returns the state store, or nil when run history is disabled.
func (e *Engine) Store() state.Store {
	return e.store
}

// Summary counts the nodes of one annotated file.
type Summary struct {
	Nodes     int `json:"nodes" yaml:"nodes"`         // nodes in the final tree
	Numbered  int `json:"numbered" yaml:"numbered"`   // ids handed out, folded nodes included
	Folded    int `json:"folded" yaml:"folded"`       // negative literals folded
	Spanned   int `json:"spanned" yaml:"spanned"`     // nodes with a source span
	Constants int `json:"constants" yaml:"constants"` // Constant nodes
}

// File is one source file of a unit.
type File struct {
	Path     string
	SourceID int
	Source   string
	Hash     string
	// Changed is false when the state store holds the same hash for Path
	// from an earlier run. Always true without a store.
	Changed   bool
	Module    *ast.Module
	DeclKinds map[string]string
	Summary   Summary
	// Err is the parse or annotation error of the file, if any.
	Err error
}

// Unit is the result of annotating a set of files together.
type Unit struct {
	RunID string // empty without a store
	Files []*File
}

// Err joins the errors of all files.
func (u *Unit) Err() error {
	var errs []error
	for _, f := range u.Files {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Path, f.Err))
		}
	}
	return errors.Join(errs...)
}

// AnnotateFiles reads, parses and annotates every file of paths. Source ids
// follow the argument order. Files are processed concurrently; a file that
// fails to parse or annotate keeps its error in File.Err and does not stop
// the others. The returned error is reserved for I/O, context and state
// store failures.
func (e *Engine) AnnotateFiles(ctx context.Context, paths []string) (*Unit, error) {
	unit := &Unit{Files: make([]*File, len(paths))}

	var run *state.Run
	if e.store != nil {
		var err error
		if run, err = e.store.CreateRun(); err != nil {
			return nil, err
		}
		unit.RunID = run.ID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			f, err := e.annotateFile(path, i)
			if err != nil {
				return err
			}
			unit.Files[i] = f
			return nil
		})
	}
	err := g.Wait()

	if run != nil {
		if recErr := e.record(run.ID, unit, err); recErr != nil && err == nil {
			err = recErr
		}
	}
	if err != nil {
		return nil, err
	}

	e.logger.Info("annotated files", "files", len(paths), "run_id", unit.RunID)
	return unit, nil
}

func (e *Engine) annotateFile(path string, sourceID int) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := &File{
		Path:     path,
		SourceID: sourceID,
		Source:   string(content),
		Hash:     state.HashContent(content),
		Changed:  true,
	}
	if e.store != nil {
		last, err := e.store.LastHash(path)
		if err != nil {
			return nil, err
		}
		f.Changed = last != f.Hash
	}

	res, err := parser.Parse(f.Source)
	if err != nil {
		f.Err = err
		e.logger.Debug("parse failed", "path", path, "error", err)
		return f, nil
	}
	f.Module = res.Module
	f.DeclKinds = mergeDeclKinds(res.DeclKinds, e.declKinds)

	var stats annotate.Stats
	err = annotate.Annotate(f.Module, f.Source,
		annotate.WithSourceID(sourceID),
		annotate.WithDeclKinds(f.DeclKinds),
		annotate.WithLogger(e.logger.With("path", path)),
		annotate.WithStats(&stats),
	)
	if err != nil {
		f.Err = err
		return f, nil
	}
	f.Summary = summarize(f.Module, stats)
	return f, nil
}

// mergeDeclKinds lays overrides over the parser's table.
func mergeDeclKinds(parsed, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(parsed)+len(overrides))
	maps.Copy(out, parsed)
	maps.Copy(out, overrides)
	return out
}

func summarize(mod *ast.Module, stats annotate.Stats) Summary {
	s := Summary{
		Numbered: stats.Numbered,
		Folded:   stats.Folded,
		Spanned:  stats.Spanned,
	}
	ast.Inspect(mod, func(n ast.Node) {
		s.Nodes++
		if _, ok := n.(*ast.Constant); ok {
			s.Constants++
		}
	})
	return s
}

// record stores the files of unit under runID and completes the run.
// runErr is the error that aborted processing, if any.
func (e *Engine) record(runID string, unit *Unit, runErr error) error {
	for _, f := range unit.Files {
		if f == nil {
			continue
		}
		rec := &state.FileRecord{
			RunID:       runID,
			SourceID:    f.SourceID,
			Path:        f.Path,
			ContentHash: f.Hash,
			Nodes:       f.Summary.Nodes,
			Folded:      f.Summary.Folded,
			Spanned:     f.Summary.Spanned,
		}
		if f.Err != nil {
			rec.Error = f.Err.Error()
		}
		if err := e.store.RecordFile(rec); err != nil {
			return err
		}
	}

	status, msg := state.RunStatusCompleted, ""
	if runErr == nil {
		runErr = unit.Err()
	}
	if runErr != nil {
		status, msg = state.RunStatusFailed, runErr.Error()
	}
	return e.store.CompleteRun(runID, status, msg)
}
