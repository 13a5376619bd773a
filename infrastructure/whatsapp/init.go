package whatsapp

import (
	"context"
	"fmt"

	"github.com/AzielCF/az-courier/config"
	pkgError "github.com/AzielCF/az-courier/pkg/error"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"
)

// InitWaDB opens the session store container backing the WhatsApp client.
func InitWaDB(ctx context.Context, dbURI string) (*sqlstore.Container, error) {
	dbLog := waLog.Stdout("Database", config.WhatsappLogLevel, true)
	container, err := sqlstore.New(ctx, "sqlite3", dbURI, dbLog)
	if err != nil {
		return nil, pkgError.ConfigurationError(fmt.Sprintf("database initialization error: %v", err))
	}
	return container, nil
}

// InitWaCLI builds the WhatsApp client from the first stored device,
// registering a fresh device when none exists yet.
func InitWaCLI(ctx context.Context, storeContainer *sqlstore.Container) (*whatsmeow.Client, error) {
	device, err := storeContainer.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}

	osName := config.WhatsappOs
	store.DeviceProps.Os = proto.String(osName)

	client := whatsmeow.NewClient(device, waLog.Stdout("Client", config.WhatsappLogLevel, true))
	client.EnableAutoReconnect = true
	client.AutoTrustIdentity = true
	return client, nil
}

// Login connects the client, driving the QR pairing flow on first run.
// Blocks until the session is connected or pairing fails.
func Login(ctx context.Context, client *whatsmeow.Client) error {
	if client.Store.ID != nil {
		if err := client.Connect(); err != nil {
			return pkgError.TransportError(fmt.Sprintf("failed to connect: %v", err))
		}
		logrus.Info("[WHATSAPP] Connected with stored session")
		return nil
	}

	qrChan, err := client.GetQRChannel(ctx)
	if err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to get QR channel: %v", err))
	}
	if err := client.Connect(); err != nil {
		return pkgError.TransportError(fmt.Sprintf("failed to connect: %v", err))
	}

	logrus.Info("[WHATSAPP] No stored session, starting QR pairing")
	for evt := range qrChan {
		switch evt.Event {
		case "code":
			fmt.Printf("Pair this device: open WhatsApp > Linked Devices and scan the code below\n%s\n", evt.Code)
		case "success":
			logrus.Info("[WHATSAPP] QR pairing successful")
			return nil
		case "timeout":
			return pkgError.TransportError("QR pairing timed out")
		default:
			logrus.WithField("event", evt.Event).Debug("[WHATSAPP] QR channel event")
		}
	}

	if !client.IsConnected() {
		return pkgError.TransportError("QR pairing ended without a connected session")
	}
	return nil
}
