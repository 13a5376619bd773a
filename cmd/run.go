package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/AzielCF/az-courier/infrastructure/whatsapp"
	"github.com/AzielCF/az-courier/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the scheduler loop and block until interrupted",
	RunE:  runScheduler,
}

var pollInterval time.Duration

func init() {
	runCmd.Flags().DurationVar(
		&pollInterval,
		"poll-interval",
		time.Minute,
		"how often the scheduler checks for due jobs; jobs are minute-resolution",
	)
	rootCmd.AddCommand(runCmd)
}

func runScheduler(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfigModel()

	client, err := connectWhatsApp(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect()

	transport := whatsapp.NewTransport(client)
	dispatcher := usecase.NewDispatchService(transport, cfg.Settings)
	scheduler := usecase.NewScheduleService(cfg, dispatcher)

	logrus.WithField("jobs", len(scheduler.Jobs())).Info("[APP] All messages scheduled, press Ctrl+C to stop")
	scheduler.Run(ctx, pollInterval)

	logrus.Info("[APP] Stopped by user")
	return nil
}
