package internal

import (
	"log"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/earthboundkid/versioninfo/v2"
)

var sensitiveRegex = regexp.MustCompile(`(?i)(PASSWORD|API_KEY|ACCESS_KEY|SECRET|TOKEN)`)

func ShowVersion() {
	log.Printf("Version: %s\n", versioninfo.Short())
}

// EnvironmentVars logs the variables starting with prefix, masking anything
// that looks like a credential.
func EnvironmentVars(prefix string) {
	log.Printf("Environment variables (%s*)", prefix)

	environ := os.Environ()
	sort.Strings(environ)

	for _, entry := range environ {
		key, value, _ := strings.Cut(entry, "=")
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		log.Printf("  %s: %s\n", key, maskValue(key, value))
	}
}

func maskValue(key, value string) string {
	if sensitiveRegex.MatchString(key) {
		return "********"
	}
	return value
}
