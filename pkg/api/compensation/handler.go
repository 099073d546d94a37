package compensation

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/analysis"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/session"
)

// Handler serves on-demand compensation analyses. Nothing is cached:
// every request recomputes from the current employee list and budget so
// raise edits are reflected immediately.
type Handler struct {
	State  *session.State
	Engine *analysis.Engine
}

// NewHandler creates an analysis handler.
func NewHandler(state *session.State, engine *analysis.Engine) *Handler {
	return &Handler{State: state, Engine: engine}
}

// HandleAnalyze returns the analysis for one employee
// (?employeeId=E100) or, with no id, for every employee in the session.
// Query params totalBudget / committed / maxPercent override the
// session budget for what-if views.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	now := time.Now()
	employeeID := r.URL.Query().Get("employeeId")
	w.Header().Set("Content-Type", "application/json")

	if employeeID != "" {
		emp := h.State.Find(employeeID)
		if emp == nil {
			http.Error(w, "employee not found: "+employeeID, http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(h.Engine.Analyze(emp, h.budgetFor(r, emp.ProposedRaise), now))
		return
	}

	results := make([]*analysis.EmployeeAnalysis, 0)
	for _, emp := range h.State.Employees() {
		results = append(results, h.Engine.Analyze(emp, h.budgetFor(r, emp.ProposedRaise), now))
	}
	json.NewEncoder(w).Encode(results)
}

// HandleConfig returns the scoring constants the engine runs with, so
// the client can label its sliders and explain the caps.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Config())
}

// budgetFor assembles the budget context. Committed defaults to the sum
// of proposed raises minus the analyzed employee's own, so an employee's
// pending edit does not shrink their own recommendation.
func (h *Handler) budgetFor(r *http.Request, ownRaise float64) analysis.BudgetContext {
	total, _ := h.State.Budget()
	ctx := analysis.BudgetContext{
		TotalBudget: total,
		Committed:   h.State.CommittedRaises() - ownRaise,
	}

	q := r.URL.Query()
	if v, err := strconv.ParseFloat(q.Get("totalBudget"), 64); err == nil && v >= 0 {
		ctx.TotalBudget = v
	}
	if v, err := strconv.ParseFloat(q.Get("committed"), 64); err == nil && v >= 0 {
		ctx.Committed = v
	}
	if v, err := strconv.ParseFloat(q.Get("maxPercent"), 64); err == nil && v > 0 {
		ctx.MaxPercent = v
	}
	return ctx
}
