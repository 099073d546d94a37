package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/api/compensation"
	"github.com/Raleighawesome/salary-dashboard/pkg/api/employees"
	"github.com/Raleighawesome/salary-dashboard/pkg/api/sessionapi"
	"github.com/Raleighawesome/salary-dashboard/pkg/api/upload"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/analysis"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/session"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/store"
)

func main() {
	godotenv.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := analysis.LoadConfig("config/scoring.yaml")
	if err != nil {
		logrus.WithError(err).Warn("scoring config invalid, using defaults")
	}
	engine := analysis.NewEngine(cfg)

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		logrus.WithError(err).Warn("database unavailable, running without session persistence")
	} else {
		defer store.Close()
	}

	repo := store.NewSessionRepo()
	backups := store.NewBackupStore(os.Getenv("BACKUP_DIR"))
	state := session.Recover(ctx, repo, backups)

	uploadHandler := upload.NewHandler(state, repo, backups)
	http.HandleFunc("/api/upload", uploadHandler.HandleUpload)

	employeesHandler := employees.NewHandler(state, repo, backups)
	http.HandleFunc("/api/employees", employeesHandler.HandleList)
	http.HandleFunc("/api/employees/raise", employeesHandler.HandleRaise)

	analysisHandler := compensation.NewHandler(state, engine)
	http.HandleFunc("/api/analysis", analysisHandler.HandleAnalyze)
	http.HandleFunc("/api/analysis/config", analysisHandler.HandleConfig)

	sessionHandler := sessionapi.NewHandler(state, repo, backups)
	http.HandleFunc("/api/session", sessionHandler.HandleInfo)
	http.HandleFunc("/api/session/budget", sessionHandler.HandleBudget)
	http.HandleFunc("/api/session/reset", sessionHandler.HandleReset)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logrus.WithField("port", port).Info("compensation analysis API listening")
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
