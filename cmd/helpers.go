package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/AzielCF/az-courier/config"
	"github.com/AzielCF/az-courier/infrastructure/whatsapp"
	"github.com/AzielCF/az-courier/validations"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
)

// loadConfigModel loads and validates config.yaml. A missing file gets a
// documented sample materialized in its place; missing or invalid
// configuration both degrade to zero scheduled jobs instead of aborting.
func loadConfigModel() *config.Config {
	cfg, err := config.Load(config.ConfigFile)
	if err == nil {
		if err := validations.ValidateConfig(cfg); err != nil {
			logrus.WithError(err).Error("[CONFIG] Invalid configuration, proceeding with zero jobs")
			return config.Empty()
		}
		logrus.WithField("path", config.ConfigFile).Info("[CONFIG] Configuration loaded")
		return cfg
	}

	if errors.Is(err, os.ErrNotExist) {
		logrus.WithField("path", config.ConfigFile).Error("[CONFIG] Configuration file not found")
		if writeErr := config.WriteSample(config.ConfigFile); writeErr != nil {
			logrus.WithError(writeErr).Error("[CONFIG] Failed to create sample configuration")
		} else {
			logrus.WithField("path", config.ConfigFile).Info("[CONFIG] Sample configuration created, edit it with your contacts and messages")
		}
		return config.Empty()
	}

	logrus.WithError(err).Error("[CONFIG] Failed to load configuration, proceeding with zero jobs")
	return config.Empty()
}

// connectWhatsApp opens the session store and brings up a connected
// client, running QR pairing on first use. Failures here are fatal
// startup conditions for commands that dispatch.
func connectWhatsApp(ctx context.Context) (*whatsmeow.Client, error) {
	container, err := whatsapp.InitWaDB(ctx, config.DBURI)
	if err != nil {
		return nil, err
	}

	client, err := whatsapp.InitWaCLI(ctx, container)
	if err != nil {
		return nil, err
	}

	if err := whatsapp.Login(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}
