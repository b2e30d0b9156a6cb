package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed keys the storefront persists under. Other keys are rejected so a
// handler bug cannot grow an unbounded keyspace.
const (
	KeyCart  = "smartcart_cart"
	KeyTheme = "theme"
)

var knownKeys = map[string]struct{}{
	KeyCart:  {},
	KeyTheme: {},
}

// KVEntry is one persisted value for a session. The (session_id, key) pair is
// the primary key; writes are upserts.
type KVEntry struct {
	SessionID string    `gorm:"column:session_id;primaryKey;size:64"`
	Key       string    `gorm:"column:key;primaryKey;size:64"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName pins the table name for GORM.
func (KVEntry) TableName() string {
	return "kv_entries"
}

// Repo persists session-scoped key-value entries.
type Repo struct {
	db *gorm.DB
}

// NewRepo builds a repository tied to the provided GORM DB.
func NewRepo(db *gorm.DB) (*Repo, error) {
	if db == nil {
		return nil, fmt.Errorf("gorm db required")
	}
	return &Repo{db: db}, nil
}

// Migrate creates the kv_entries table when missing.
func (r *Repo) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&KVEntry{})
}

// Get loads the value stored for (sessionID, key). The second return value is
// false when no row exists.
func (r *Repo) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	var entry KVEntry
	err := r.db.WithContext(ctx).
		First(&entry, "session_id = ? AND key = ?", sessionID, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Put upserts the value for (sessionID, key).
func (r *Repo) Put(ctx context.Context, sessionID, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if sessionID == "" {
		return fmt.Errorf("session id required")
	}
	entry := KVEntry{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

// Delete removes the row for (sessionID, key). Deleting a missing row is not
// an error.
func (r *Repo) Delete(ctx context.Context, sessionID, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Delete(&KVEntry{}, "session_id = ? AND key = ?", sessionID, key).Error
}

func validateKey(key string) error {
	if _, ok := knownKeys[key]; !ok {
		return fmt.Errorf("unknown storage key %q", key)
	}
	return nil
}
