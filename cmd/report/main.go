package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"carelog-service/internal/app/config"
	"carelog-service/internal/app/drivers/logger"
	"carelog-service/internal/app/models"
	"carelog-service/internal/app/services/core/sleeps"
	"carelog-service/internal/app/services/remote"
	"carelog-service/internal/app/services/remote/residents"
	remoteSleeps "carelog-service/internal/app/services/remote/sleeps"
	"carelog-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	residentID string
	month      int
	year       int
	token      string
	outputDir  string
	verbose    bool
)

// rootCmd is the offline companion of the report export endpoint
var rootCmd = &cobra.Command{
	Use:   "carelog-report",
	Short: "Export monthly sleep reports from the records API",
	Long: `Export the monthly sleep grid of a resident as CSV.

The report is built from the entries held by the records API, the same way
the report export endpoint builds it. Entries recorded outside the month are
ignored and the first entry recorded for a slot wins.`,
	SilenceUsage: true,
	RunE:         runExport,
}

func init() {
	now := time.Now()
	rootCmd.Flags().StringVarP(&residentID, "resident", "r", "", "resident ID to export (required)")
	rootCmd.Flags().IntVarP(&month, "month", "m", int(now.Month()), "report month, 1-12")
	rootCmd.Flags().IntVarP(&year, "year", "y", now.Year(), "report year")
	rootCmd.Flags().StringVar(&token, "token", "", "bearer token for the records API (defaults to REMOTE_API_SERVICE_TOKEN)")
	rootCmd.Flags().StringVarP(&outputDir, "out", "o", "", "directory to write the CSV into; stdout when empty")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = rootCmd.MarkFlagRequired("resident")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.NewLogrusLogger(cmd.ErrOrStderr(), verbose)
	internalConfig := config.NewInternalConfig()

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", internalConfig.App.Timezone, err)
	}
	time.Local = location

	if err := sleeps.ValidatePeriod(month, year); err != nil {
		return err
	}

	if token == "" {
		token = internalConfig.RemoteAPI.ServiceToken
	}
	session := models.AuthSession{
		Token:  token,
		Role:   constvars.RoleSuperuser,
		UserID: constvars.ReminderWorkerUserID,
	}

	remoteClient := remote.NewRemoteClient(
		internalConfig.RemoteAPI.BaseUrl,
		time.Duration(internalConfig.RemoteAPI.TimeoutInSeconds)*time.Second,
		rate.NewLimiter(rate.Limit(internalConfig.RemoteAPI.MaxRequestsPerSecond), internalConfig.RemoteAPI.MaxBurstRequests),
		zap.NewNop(),
	)
	sleepClient := remoteSleeps.NewSleepApiClient(remoteClient, zap.NewNop())
	residentClient := residents.NewResidentApiClient(remoteClient, zap.NewNop())

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	log.WithFields(logrus.Fields{
		"resident": residentID,
		"month":    month,
		"year":     year,
	}).Debug("Fetching sleep entries")

	entries, err := sleepClient.FindSleepsByResident(ctx, session, residentID)
	if err != nil {
		return fmt.Errorf("fetch sleep entries: %w", err)
	}

	name := residentID
	resident, err := residentClient.FindResidentByID(ctx, session, residentID)
	if err != nil {
		log.WithError(err).Warn("Resident lookup failed, naming the report after the resident ID")
	} else if fullName := resident.FullName(); fullName != "" {
		name = fullName
	}

	report, err := sleeps.BuildReport(residentID, name, entries, month, year)
	if err != nil {
		return err
	}
	content, err := sleeps.RenderReportCSV(report)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if outputDir == "" {
		_, err = cmd.OutOrStdout().Write(content)
		return err
	}

	path := filepath.Join(outputDir, sleeps.ReportFileName(name, month, year))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	log.WithFields(logrus.Fields{
		"path":     path,
		"recorded": report.Summary.TotalRecorded,
	}).Info("Sleep report exported")
	return nil
}
