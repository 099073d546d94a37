package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

// Session is the persisted unit of work: the employee list plus its
// budget state. One session is "current" at a time; saving upserts by id.
type Session struct {
	ID          string             `json:"id"`
	Employees   []*schema.Employee `json:"employees"`
	TotalBudget float64            `json:"totalBudget"`
	Currency    string             `json:"currency"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// SessionRepo stores sessions in Postgres as JSONB blobs, keyed by
// session id.
type SessionRepo struct{}

// NewSessionRepo creates a repository instance.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{}
}

// Save upserts a session. A zero id gets one assigned.
func (r *SessionRepo) Save(ctx context.Context, s *Session) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.UpdatedAt = time.Now()

	employees, err := json.Marshal(s.Employees)
	if err != nil {
		return fmt.Errorf("failed to marshal employees: %w", err)
	}

	query := `
		INSERT INTO comp_sessions (id, employees, total_budget, currency, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET
			employees = EXCLUDED.employees,
			total_budget = EXCLUDED.total_budget,
			currency = EXCLUDED.currency,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, s.ID, employees, s.TotalBudget, s.Currency, s.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetCurrentSession returns the most recently updated session, or nil
// when none exists.
func (r *SessionRepo) GetCurrentSession(ctx context.Context) (*Session, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, employees, total_budget, currency, updated_at
		FROM comp_sessions
		ORDER BY updated_at DESC
		LIMIT 1
	`
	var (
		s         Session
		employees []byte
	)
	err := pool.QueryRow(ctx, query).Scan(&s.ID, &employees, &s.TotalBudget, &s.Currency, &s.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if err := json.Unmarshal(employees, &s.Employees); err != nil {
		return nil, fmt.Errorf("failed to unmarshal employees: %w", err)
	}
	return &s, nil
}

// GetEmployees returns the employee list of the current session, empty
// when no session exists.
func (r *SessionRepo) GetEmployees(ctx context.Context) ([]*schema.Employee, error) {
	s, err := r.GetCurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return []*schema.Employee{}, nil
	}
	return s.Employees, nil
}

// ResetAllData removes every stored session.
func (r *SessionRepo) ResetAllData(ctx context.Context) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := pool.Exec(ctx, `DELETE FROM comp_sessions`); err != nil {
		return fmt.Errorf("failed to reset sessions: %w", err)
	}
	return nil
}
