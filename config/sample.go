package config

import "os"

// sampleConfig is the documented starting configuration written when no
// config file is present. Edit it with real contacts before running.
const sampleConfig = `# az-courier configuration
#
# contacts.personal: individual recipients, addressed by phone number
#   (international format, with country code).
# contacts.groups: WhatsApp groups your account has joined, addressed by
#   the exact group name. Groups support text messages only.
#
# Each message carries a mandatory 24-hour "time" (HH:MM) and fires once
# per day at that time while the scheduler is running.
contacts:
  personal:
    - name: John Doe
      phone: "+1234567890"
      messages:
        - type: text
          content: "Good morning! Have a great day!"
          time: "09:00"
  groups:
    - name: Family Group
      messages:
        - type: text
          content: "Good morning everyone!"
          time: "08:30"
        - type: image
          image_path: images/motivational_quote.jpg
          caption: "Daily motivation!"
          time: "18:00"

settings:
  # Seconds to pause before each send.
  wait_time: 20
  # Close the messaging session after each send.
  close_tab: true
  image_formats: [".jpg", ".jpeg", ".png", ".gif"]
  timezone: local
`

// WriteSample materializes the sample configuration at path.
func WriteSample(path string) error {
	return os.WriteFile(path, []byte(sampleConfig), 0644)
}
