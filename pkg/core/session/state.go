// Package session holds the application state for one running process:
// the employee list, its budget, and where it came from. State is
// constructed exactly once at startup by Recover, a pure function of
// store contents; there is no module-level mutable state.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/store"
)

// State is the in-memory working session. All access is mutex-guarded
// so HTTP handlers can share it. Employees are treated as read-only
// after ingestion except for the proposed raise.
type State struct {
	mu          sync.RWMutex
	sessionID   string
	employees   []*schema.Employee
	totalBudget float64
	currency    string
}

// Recover builds the initial state from persisted data: the current
// session wins, a backup snapshot is second choice, and an empty state
// is the fallback. Store errors degrade to the next source rather than
// failing startup.
func Recover(ctx context.Context, repo *store.SessionRepo, backups *store.BackupStore) *State {
	st := &State{currency: "USD"}

	if repo != nil && store.GetPool() != nil {
		s, err := repo.GetCurrentSession(ctx)
		if err != nil {
			logrus.WithError(err).Warn("session recovery from database failed")
		} else if s != nil {
			st.sessionID = s.ID
			st.employees = s.Employees
			st.totalBudget = s.TotalBudget
			if s.Currency != "" {
				st.currency = s.Currency
			}
			logrus.WithFields(logrus.Fields{"session": s.ID, "employees": len(s.Employees)}).
				Info("session recovered from database")
			return st
		}
	}

	if backups != nil {
		snap, err := backups.RestoreFromStorage()
		if err != nil {
			logrus.WithError(err).Warn("session recovery from backup failed")
		} else if snap != nil {
			st.employees = snap.Employees
			st.totalBudget = snap.TotalBudget
			if snap.Currency != "" {
				st.currency = snap.Currency
			}
			logrus.WithField("employees", len(snap.Employees)).
				Info("session recovered from backup snapshot")
			return st
		}
	}
	return st
}

// Employees returns a copy of the employee slice; the pointed-to
// records are shared and must be treated as read-only by callers.
func (s *State) Employees() []*schema.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*schema.Employee, len(s.employees))
	copy(out, s.employees)
	return out
}

// Find returns the employee with the given id, nil when absent.
func (s *State) Find(employeeID string) *schema.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(employeeID))
	for _, emp := range s.employees {
		if strings.ToLower(strings.TrimSpace(emp.EmployeeID)) == needle {
			return emp
		}
	}
	return nil
}

// SetEmployees replaces the working employee list.
func (s *State) SetEmployees(employees []*schema.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = employees
}

// SetBudget replaces the budget total and currency.
func (s *State) SetBudget(total float64, currency string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalBudget = total
	if currency != "" {
		s.currency = strings.ToUpper(currency)
	}
}

// Budget returns the configured budget total and currency.
func (s *State) Budget() (float64, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalBudget, s.currency
}

// SetProposedRaise updates the one mutable employee field. Analysis and
// commit against a shared budget must be serialized by the caller; this
// method only guards the write itself.
func (s *State) SetProposedRaise(employeeID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("proposed raise cannot be negative")
	}
	emp := s.Find(employeeID)
	if emp == nil {
		return fmt.Errorf("employee %s not found", employeeID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	emp.ProposedRaise = amount
	return nil
}

// CommittedRaises sums every proposed raise, i.e. the budget already
// spoken for.
func (s *State) CommittedRaises() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0.0
	for _, emp := range s.employees {
		total += emp.ProposedRaise
	}
	return total
}

// Snapshot captures the state for persistence.
func (s *State) Snapshot() *store.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &store.Session{
		ID:          s.sessionID,
		Employees:   s.employees,
		TotalBudget: s.totalBudget,
		Currency:    s.currency,
	}
}

// SetSessionID records the persisted session id after the first save.
func (s *State) SetSessionID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = id
}

// Reset clears the working state.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.employees = nil
	s.totalBudget = 0
	s.currency = "USD"
}
