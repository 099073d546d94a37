package employees

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/session"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/store"
)

// Handler serves the working employee list and the proposed-raise edit,
// the single post-ingestion mutation the system allows.
type Handler struct {
	State   *session.State
	Repo    *store.SessionRepo
	Backups *store.BackupStore
}

// NewHandler creates an employees handler.
func NewHandler(state *session.State, repo *store.SessionRepo, backups *store.BackupStore) *Handler {
	return &Handler{State: state, Repo: repo, Backups: backups}
}

type raiseRequest struct {
	EmployeeID string  `json:"employeeId"`
	Amount     float64 `json:"amount"`
}

// HandleList returns every employee in the working session.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.State.Employees())
}

// HandleRaise sets an employee's proposed raise and persists the change.
func (h *Handler) HandleRaise(w http.ResponseWriter, r *http.Request) {
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

	var req raiseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.State.SetProposedRaise(req.EmployeeID, req.Amount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	budget, currency := h.State.Budget()
	h.Backups.ScheduleBackup(h.State.Employees(), budget, currency, 0)
	if store.GetPool() != nil {
		snap := h.State.Snapshot()
		if err := h.Repo.Save(r.Context(), snap); err != nil {
			logrus.WithError(err).Warn("could not persist session after raise edit")
		} else {
			h.State.SetSessionID(snap.ID)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"employeeId":    req.EmployeeID,
		"proposedRaise": req.Amount,
		"committed":     h.State.CommittedRaises(),
	})
}
