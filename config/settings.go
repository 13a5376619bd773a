package config

var (
	AppVersion = "v1.0.0"
	AppDebug   = false

	ConfigFile = "config.yaml"

	PathStorages = "storages"
	PathLogFile  = "storages/az-courier.log"

	DBURI = "file:storages/whatsapp.db?_foreign_keys=on"

	WhatsappOs       = "AzielCf"
	WhatsappLogLevel = "ERROR"
	WhatsappTypeUser = "@s.whatsapp.net"

	// Defaults applied when the settings block is absent from config.yaml.
	DefaultWaitTime     = 20
	DefaultCloseTab     = true
	DefaultImageFormats = []string{".jpg", ".jpeg", ".png", ".gif"}
	DefaultTimezone     = "local"

	MessageTypeText  = "text"
	MessageTypeImage = "image"
)
