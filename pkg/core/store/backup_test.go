package store

import (
	"testing"
	"time"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

func testEmployees() []*schema.Employee {
	salary := 95000.0
	return []*schema.Employee{
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E1", Name: "Jane Doe", BaseSalary: &salary}},
		{SalaryRecord: schema.SalaryRecord{EmployeeID: "E2", Name: "Bob Lee", BaseSalary: &salary}, ProposedRaise: 4000},
	}
}

func TestBackupRoundTrip(t *testing.T) {
	b := NewBackupStore(t.TempDir())

	b.ScheduleBackup(testEmployees(), 50000, "USD", time.Hour)
	b.Flush()

	snap, err := b.RestoreFromStorage()
	if err != nil {
		t.Fatalf("RestoreFromStorage: %v", err)
	}
	if snap == nil {
		t.Fatal("no snapshot after flush")
	}
	if len(snap.Employees) != 2 || snap.TotalBudget != 50000 || snap.Currency != "USD" {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Employees[1].ProposedRaise != 4000 {
		t.Errorf("proposedRaise = %v, want 4000", snap.Employees[1].ProposedRaise)
	}
	if snap.SavedAt.IsZero() {
		t.Error("savedAt not stamped")
	}
}

func TestBackupDebounceCoalesces(t *testing.T) {
	b := NewBackupStore(t.TempDir())

	b.ScheduleBackup(testEmployees()[:1], 10000, "USD", time.Hour)
	b.ScheduleBackup(testEmployees(), 50000, "EUR", time.Hour)
	b.Flush()

	snap, err := b.RestoreFromStorage()
	if err != nil || snap == nil {
		t.Fatalf("RestoreFromStorage: %v, %v", snap, err)
	}
	// Only the latest queued snapshot survives the debounce window.
	if len(snap.Employees) != 2 || snap.Currency != "EUR" {
		t.Errorf("snapshot = budget %v currency %s with %d employees, want the second write",
			snap.TotalBudget, snap.Currency, len(snap.Employees))
	}
}

func TestBackupDebounceTimerFires(t *testing.T) {
	b := NewBackupStore(t.TempDir())

	b.ScheduleBackup(testEmployees(), 50000, "USD", 10*time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for {
		snap, err := b.RestoreFromStorage()
		if err != nil {
			t.Fatalf("RestoreFromStorage: %v", err)
		}
		if snap != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("debounced backup never fired")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestBackupRestoreEmpty(t *testing.T) {
	b := NewBackupStore(t.TempDir())
	snap, err := b.RestoreFromStorage()
	if err != nil {
		t.Fatalf("RestoreFromStorage: %v", err)
	}
	if snap != nil {
		t.Errorf("snapshot = %+v, want nil with no backups", snap)
	}
}

func TestResetAllBackups(t *testing.T) {
	b := NewBackupStore(t.TempDir())
	b.ScheduleBackup(testEmployees(), 50000, "USD", time.Hour)
	b.Flush()

	if err := b.ResetAllBackups(); err != nil {
		t.Fatalf("ResetAllBackups: %v", err)
	}
	snap, err := b.RestoreFromStorage()
	if err != nil || snap != nil {
		t.Errorf("snapshot survived reset: %v, %v", snap, err)
	}
	// Resetting an already-empty store is not an error.
	if err := b.ResetAllBackups(); err != nil {
		t.Errorf("second reset: %v", err)
	}
}
