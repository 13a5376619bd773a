package cmd

import (
	"fmt"
	"time"

	"github.com/AzielCF/az-courier/pkg/timeutils"
	"github.com/AzielCF/az-courier/usecase"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Enumerate the jobs the configuration registers, without dispatching",
	RunE:  listJobs,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listJobs(_ *cobra.Command, _ []string) error {
	cfg := loadConfigModel()

	// No dispatcher: nothing is dispatched from this command.
	scheduler := usecase.NewScheduleService(cfg, nil)
	jobs := scheduler.Jobs()
	if len(jobs) == 0 {
		fmt.Println("No jobs scheduled.")
		return nil
	}

	now := time.Now()
	fmt.Println("Scheduled Jobs:")
	for i, job := range jobs {
		line := fmt.Sprintf("%d. [%s] %s at %s (%s)", i+1, job.Target.Kind, job.Target.Name, job.TimeOfDay, job.Message.Type)
		if next, err := timeutils.NextOccurrence(job.TimeOfDay, now); err == nil {
			line += fmt.Sprintf(", next fire %s", next.Format("2006-01-02 15:04"))
		}
		fmt.Println(line)
	}
	return nil
}
