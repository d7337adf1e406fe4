// Package device derives display names for responder channel clients from
// user-agent strings, so a circle operator can see what a draft session
// was filled in from.
package device

import (
	"strings"

	"github.com/mssola/useragent"
)

// ParseUserAgent returns a human-readable "Browser on Platform" name for a
// raw user-agent string.
func ParseUserAgent(rawUA string) string {
	if rawUA == "" {
		return "Unknown Device"
	}

	ua := useragent.New(rawUA)
	browser, _ := ua.Browser()
	platform := ua.Platform()
	osInfo := ua.OSInfo()

	if browser == "" {
		// Fall back to the product token of unrecognized agents.
		if i := strings.IndexByte(rawUA, '/'); i > 0 {
			browser = rawUA[:i]
		} else {
			browser = rawUA
		}
	}

	where := osInfo.Name
	if where == "" {
		where = platform
	}
	if where == "" {
		where = "Unknown Platform"
	}
	return strings.TrimSpace(browser + " on " + where)
}
