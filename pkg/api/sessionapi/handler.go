package sessionapi

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/session"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/store"
)

// Handler exposes session metadata, budget configuration, and the
// full-reset operation.
type Handler struct {
	State   *session.State
	Repo    *store.SessionRepo
	Backups *store.BackupStore
}

// NewHandler creates a session handler.
func NewHandler(state *session.State, repo *store.SessionRepo, backups *store.BackupStore) *Handler {
	return &Handler{State: state, Repo: repo, Backups: backups}
}

type sessionInfo struct {
	Employees   int     `json:"employees"`
	TotalBudget float64 `json:"totalBudget"`
	Committed   float64 `json:"committed"`
	Currency    string  `json:"currency"`
}

type budgetRequest struct {
	TotalBudget float64 `json:"totalBudget"`
	Currency    string  `json:"currency"`
}

// HandleInfo reports the current session shape.
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	budget, currency := h.State.Budget()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sessionInfo{
		Employees:   len(h.State.Employees()),
		TotalBudget: budget,
		Committed:   h.State.CommittedRaises(),
		Currency:    currency,
	})
}

// HandleBudget sets the raise budget for the session.
func (h *Handler) HandleBudget(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TotalBudget < 0 {
		http.Error(w, "budget cannot be negative", http.StatusBadRequest)
		return
	}

	h.State.SetBudget(req.TotalBudget, req.Currency)
	h.persist(r)
	h.HandleInfo(w, r)
}

// HandleReset wipes the working state, the persisted sessions, and all
// backups.
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.State.Reset()
	if store.GetPool() != nil {
		if err := h.Repo.ResetAllData(r.Context()); err != nil {
			logrus.WithError(err).Warn("could not reset persisted sessions")
		}
	}
	if err := h.Backups.ResetAllBackups(); err != nil {
		logrus.WithError(err).Warn("could not reset backups")
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) persist(r *http.Request) {
	budget, currency := h.State.Budget()
	h.Backups.ScheduleBackup(h.State.Employees(), budget, currency, 0)
	if store.GetPool() != nil {
		snap := h.State.Snapshot()
		if err := h.Repo.Save(r.Context(), snap); err != nil {
			logrus.WithError(err).Warn("could not persist session")
		} else {
			h.State.SetSessionID(snap.ID)
		}
	}
}
