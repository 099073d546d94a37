package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Raleighawesome/salary-dashboard/pkg/core/analysis"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/format"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/ingest"
	"github.com/Raleighawesome/salary-dashboard/pkg/core/schema"
)

func main() {
	godotenv.Load()

	salaryPath := flag.String("salary", "", "salary export (.csv/.xlsx/.xls)")
	perfPath := flag.String("performance", "", "performance export (optional)")
	budget := flag.Float64("budget", 0, "total raise budget in USD")
	configPath := flag.String("config", "config/scoring.yaml", "scoring config")
	flag.Parse()

	if *salaryPath == "" {
		fmt.Fprintln(os.Stderr, "usage: pipeline -salary FILE [-performance FILE] [-budget N]")
		os.Exit(2)
	}

	cfg, err := analysis.LoadConfig(*configPath)
	if err != nil {
		logrus.WithError(err).Warn("scoring config invalid, using defaults")
	}
	engine := analysis.NewEngine(cfg)
	ctx := context.Background()

	employees := ingestFile(ctx, *salaryPath, schema.FileTypeSalary)
	if *perfPath != "" {
		perf := ingestFile(ctx, *perfPath, schema.FileTypePerformance)
		employees = ingest.MergeEmployees(employees, perf)
	}
	if len(employees) == 0 {
		logrus.Fatal("no valid employee rows ingested")
	}

	now := time.Now()
	committed := 0.0
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMPLOYEE\tNAME\tSALARY\tCOMPARATIO\tRISK\tRAISE\tPRIORITY")
	for _, emp := range employees {
		// Analysis and budget commit are serialized per employee so the
		// shared budget is never over-allocated.
		res := engine.Analyze(emp, analysis.BudgetContext{TotalBudget: *budget, Committed: committed}, now)
		committed += res.Recommendation.RecommendedAmount
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.0f (%s)\t%s\t%s\n",
			res.EmployeeID,
			res.Name,
			format.Currency(res.Salary.CurrentSalary, emp.Currency),
			format.Percent(res.Salary.Comparatio),
			res.Risk.TotalRisk,
			res.Risk.RiskLevel,
			format.Currency(res.Recommendation.RecommendedAmount, "USD"),
			res.Recommendation.Priority,
		)
	}
	tw.Flush()
	fmt.Printf("\nBudget: %s  Committed: %s  Remaining: %s\n",
		format.Currency(*budget, "USD"),
		format.Currency(committed, "USD"),
		format.Currency(*budget-committed, "USD"))
}

func ingestFile(ctx context.Context, path string, expected schema.FileType) []*schema.Employee {
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Fatalf("could not read %s", path)
	}
	result := ingest.ProcessFile(ctx, path, data, expected)
	for _, msg := range result.Errors {
		fmt.Fprintln(os.Stderr, msg)
	}
	logrus.WithFields(logrus.Fields{
		"file": path, "rows": result.RowCount, "valid": result.ValidRows,
	}).Info("ingested")
	return result.Data
}
