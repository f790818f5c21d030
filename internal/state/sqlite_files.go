package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RecordFile stores the outcome of annotating one file. A record for the
// same run and source id is replaced.
func (s *SQLiteStore) RecordFile(rec *FileRecord) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	var errorPtr *string
	if rec.Error != "" {
		errorPtr = &rec.Error
	}

	_, err := s.db.ExecContext(ctx(), `
		INSERT OR REPLACE INTO run_files
			(run_id, source_id, path, content_hash, nodes, folded, spanned, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID, rec.SourceID, rec.Path, rec.ContentHash,
		rec.Nodes, rec.Folded, rec.Spanned, errorPtr, rec.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record file %s: %w", rec.Path, err)
	}
	return nil
}

// ListFiles returns the files of a run ordered by source id.
func (s *SQLiteStore) ListFiles(runID string) ([]*FileRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	rows, err := s.db.QueryContext(ctx(), `
		SELECT run_id, source_id, path, content_hash, nodes, folded, spanned, error, recorded_at
		FROM run_files WHERE run_id = ? ORDER BY source_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	defer rows.Close()

	var files []*FileRecord
	for rows.Next() {
		rec := &FileRecord{}
		var errMsg sql.NullString
		if err := rows.Scan(&rec.RunID, &rec.SourceID, &rec.Path, &rec.ContentHash,
			&rec.Nodes, &rec.Folded, &rec.Spanned, &errMsg, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan file: %w", err)
		}
		rec.Error = errMsg.String
		files = append(files, rec)
	}
	return files, rows.Err()
}

// LastHash returns the content hash recorded for path by the most recent
// run that saw it, or "" if no run has.
func (s *SQLiteStore) LastHash(path string) (string, error) {
	if s.db == nil {
		return "", fmt.Errorf("database not opened")
	}

	var hash string
	err := s.db.QueryRowContext(ctx(), `
		SELECT content_hash FROM run_files
		WHERE path = ? ORDER BY recorded_at DESC, rowid DESC LIMIT 1`, path).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get content hash: %w", err)
	}
	return hash, nil
}
