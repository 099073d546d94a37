package upload

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/ingest"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/session"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/store"
)

// Handler accepts spreadsheet uploads and folds the ingested rows into
// the working session.
type Handler struct {
	State   *session.State
	Repo    *store.SessionRepo
	Backups *store.BackupStore
}

// NewHandler creates an upload handler.
func NewHandler(state *session.State, repo *store.SessionRepo, backups *store.BackupStore) *Handler {
	return &Handler{State: state, Repo: repo, Backups: backups}
}

// HandleUpload ingests one multipart file. The optional "type" form
// field pins the expected sheet type; otherwise both mappings compete.
// The response is always a FileUploadResult, including for rejected
// files, so the client can render errors directly.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	r.Body = http.MaxBytesReader(w, r.Body, ingest.MaxFileSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "could not read upload", http.StatusBadRequest)
		return
	}

	expected := schema.FileType(r.FormValue("type"))
	if expected != schema.FileTypeSalary && expected != schema.FileTypePerformance {
		expected = schema.FileTypeUnknown
	}

	result := ingest.ProcessFile(r.Context(), header.Filename, data, expected)
	if result.ValidRows > 0 {
		h.applyUpload(r, result)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// applyUpload folds valid rows into the session: salary rows upsert the
// employee list, performance rows enrich matched employees by id.
func (h *Handler) applyUpload(r *http.Request, result *schema.FileUploadResult) {
	if result.FileType == schema.FileTypePerformance {
		h.State.SetEmployees(ingest.MergeEmployees(h.State.Employees(), result.Data))
	} else {
		h.State.SetEmployees(ingest.UpsertEmployees(h.State.Employees(), result.Data))
	}

	budget, currency := h.State.Budget()
	h.Backups.ScheduleBackup(h.State.Employees(), budget, currency, 0)

	if store.GetPool() != nil {
		snap := h.State.Snapshot()
		if err := h.Repo.Save(r.Context(), snap); err != nil {
			logrus.WithError(err).Warn("could not persist session after upload")
		} else {
			h.State.SetSessionID(snap.ID)
		}
	}
}
