package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// BackupStore writes debounced JSON snapshots of the working session to
// the local filesystem. Backups are best effort and not part of the
// correctness contract; a failed write only logs.
type BackupStore struct {
	dir string

	mu          sync.Mutex
	pending     *time.Timer
	pendingSnap *BackupSnapshot
}

// BackupSnapshot is the on-disk backup shape.
type BackupSnapshot struct {
	Employees   []*schema.Employee `json:"employees"`
	TotalBudget float64            `json:"totalBudget"`
	Currency    string             `json:"currency"`
	SavedAt     time.Time          `json:"savedAt"`
}

const defaultBackupDebounce = 2 * time.Second

// NewBackupStore creates a backup store rooted at dir, defaulting to
// .cache/backups.
func NewBackupStore(dir string) *BackupStore {
	if dir == "" {
		dir = filepath.Join(".cache", "backups")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logrus.WithError(err).Warn("could not create backup directory")
	}
	return &BackupStore{dir: dir}
}

// ScheduleBackup queues a snapshot write after the debounce interval,
// replacing any not-yet-fired write. debounce <= 0 uses the default.
func (b *BackupStore) ScheduleBackup(employees []*schema.Employee, totalBudget float64, currency string, debounce time.Duration) {
	if debounce <= 0 {
		debounce = defaultBackupDebounce
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.pendingSnap = &BackupSnapshot{
		Employees:   employees,
		TotalBudget: totalBudget,
		Currency:    currency,
	}
	if b.pending != nil {
		b.pending.Stop()
	}
	b.pending = time.AfterFunc(debounce, b.flushPending)
}

// Flush writes any pending snapshot immediately. Used on shutdown.
func (b *BackupStore) Flush() {
	b.mu.Lock()
	if b.pending != nil {
		b.pending.Stop()
	}
	b.mu.Unlock()
	b.flushPending()
}

func (b *BackupStore) flushPending() {
	b.mu.Lock()
	snap := b.pendingSnap
	b.pendingSnap = nil
	b.pending = nil
	b.mu.Unlock()

	if snap == nil {
		return
	}
	if err := b.write(snap); err != nil {
		logrus.WithError(err).Warn("backup write failed")
	}
}

// RestoreFromStorage loads the latest snapshot, nil when none exists.
func (b *BackupStore) RestoreFromStorage() (*BackupSnapshot, error) {
	data, err := os.ReadFile(b.snapshotPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read backup: %w", err)
	}
	var snap BackupSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("could not parse backup: %w", err)
	}
	return &snap, nil
}

// ResetAllBackups removes every snapshot and cancels pending writes.
func (b *BackupStore) ResetAllBackups() error {
	b.mu.Lock()
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.pendingSnap = nil
	b.mu.Unlock()

	if err := os.Remove(b.snapshotPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not remove backup: %w", err)
	}
	return nil
}

func (b *BackupStore) write(snap *BackupSnapshot) error {
	snap.SavedAt = time.Now()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := b.snapshotPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, b.snapshotPath())
}

func (b *BackupStore) snapshotPath() string {
	return filepath.Join(b.dir, "session_backup.json")
}
