package validations

import (
	"os"
	"path/filepath"
	"strings"
)

var phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// NormalizePhone strips spaces, hyphens and parentheses from a phone
// number. Digits and any leading + are preserved in order. The second
// return is false when the result does not start with a country code (+),
// a non-fatal anomaly the caller decides how to handle.
func NormalizePhone(raw string) (string, bool) {
	phone := phoneStripper.Replace(raw)
	return phone, strings.HasPrefix(phone, "+")
}

// IsSendableImage reports whether path points to an existing local file
// whose extension is one of the allowed formats. The comparison is
// case-insensitive and tolerates formats configured without a leading
// dot. No image content inspection is performed.
func IsSendableImage(path string, allowedFormats []string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}

	for _, format := range allowedFormats {
		format = strings.ToLower(strings.TrimSpace(format))
		if !strings.HasPrefix(format, ".") {
			format = "." + format
		}
		if ext == format {
			return true
		}
	}
	return false
}
