package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sadopc/trackit/internal/model"
)

// draftKey is the single row key in the drafts collection. A second edit
// session overwrites an unrelated prior draft; last writer wins.
const draftKey = "current"

// SaveDraft overwrites the singleton draft record, stamping SavedAt.
func (s *Store) SaveDraft(d model.Draft) error {
	d.SavedAt = time.Now()
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO drafts (key, saved_at, data) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET saved_at = excluded.saved_at, data = excluded.data`,
		draftKey, d.SavedAt.UTC().Format(time.RFC3339), string(data),
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

// Draft returns the current draft, or (nil, nil) when none exists.
func (s *Store) Draft() (*model.Draft, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM drafts WHERE key = ?`, draftKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get draft: %w", err)
	}
	var d model.Draft
	if err := json.Unmarshal([]byte(data), &d); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	return &d, nil
}

// ClearDraft deletes the draft record. Clearing an absent draft is a no-op.
func (s *Store) ClearDraft() error {
	_, err := s.db.Exec(`DELETE FROM drafts WHERE key = ?`, draftKey)
	if err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
