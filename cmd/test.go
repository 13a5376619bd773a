package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/AzielCF/az-courier/config"
	domainSend "github.com/AzielCF/az-courier/domains/send"
	"github.com/AzielCF/az-courier/infrastructure/whatsapp"
	"github.com/AzielCF/az-courier/usecase"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test <phone|group> [message...]",
	Short: "Send one message immediately, bypassing the scheduler",
	Long: `Sends a single text message right away to verify the setup.
The target is a phone number unless --group is set, in which case it is
the name of a joined group.`,
	Args: cobra.MinimumNArgs(1),
	RunE: sendTestMessage,
}

var testGroup bool

func init() {
	testCmd.Flags().BoolVar(&testGroup, "group", false, "treat the target as a group name instead of a phone number")
	rootCmd.AddCommand(testCmd)
}

func sendTestMessage(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfigModel()

	message := config.Message{
		Type:    config.MessageTypeText,
		Content: "Test message from az-courier",
	}
	if len(args) > 1 {
		message.Content = strings.Join(args[1:], " ")
	}

	target := domainSend.IndividualTarget("Test Contact", args[0])
	if testGroup {
		target = domainSend.GroupTarget(args[0])
	}

	client, err := connectWhatsApp(ctx)
	if err != nil {
		return err
	}
	defer client.Disconnect()

	logrus.WithField("target", args[0]).Info("[APP] Sending test message")
	dispatcher := usecase.NewDispatchService(whatsapp.NewTransport(client), cfg.Settings)
	outcome := dispatcher.Process(ctx, target, message)

	if outcome.Status != domainSend.StatusSent {
		return fmt.Errorf("test message %s: %s", outcome.Status, outcome.Reason)
	}

	fmt.Println("Test message sent.")
	return nil
}
