package cmd

import (
	"io"
	"os"

	"github.com/AzielCF/az-courier/config"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "az-courier",
	Short: "Scheduled WhatsApp message courier",
	Long: `az-courier sends time-triggered text and image messages to WhatsApp
contacts and groups from a declarative config.yaml, firing each message
once per day at its configured time.`,
	Version: config.AppVersion,
}

func init() {
	// Load environment variables first
	_ = godotenv.Load()

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	initFlags()
	cobra.OnInitialize(initEnvConfig, initLogging)
}

func initFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&config.ConfigFile,
		"config", "c",
		config.ConfigFile,
		"path to the contacts/messages configuration | example: --config=config.yaml",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&config.AppDebug,
		"debug", "d",
		config.AppDebug,
		"hide or displaying log with --debug <true/false> | example: --debug=true",
	)
}

// initEnvConfig loads configuration overrides from environment variables
func initEnvConfig() {
	viper.SetEnvPrefix("app")
	viper.AutomaticEnv()

	if envConfig := viper.GetString("config_file"); envConfig != "" {
		config.ConfigFile = envConfig
	}
	if viper.GetBool("debug") {
		config.AppDebug = true
	}
	if envDBURI := viper.GetString("db_uri"); envDBURI != "" {
		config.DBURI = envDBURI
	}
}

func initLogging() {
	if config.AppDebug {
		config.WhatsappLogLevel = "DEBUG"
		logrus.SetLevel(logrus.DebugLevel)
	}

	if err := os.MkdirAll(config.PathStorages, 0755); err != nil {
		logrus.Errorln(err)
		return
	}

	// Mirror logs to a file next to the session store, like the log the
	// bot keeps alongside stdout output.
	logFile, err := os.OpenFile(config.PathLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logrus.WithError(err).Warn("[APP] Could not open log file, logging to stdout only")
		return
	}
	logrus.SetOutput(io.MultiWriter(os.Stdout, logFile))
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
