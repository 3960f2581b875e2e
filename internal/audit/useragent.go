package audit

import "strings"

// ClassifyUserAgent derives a coarse device/browser/os triple from a raw
// User-Agent header. Order matters: Chrome ships "Safari" in its UA and
// Edge ships "Chrome", so the more specific products are checked first.
func ClassifyUserAgent(ua string) (device, browser, osName string) {
	device, browser, osName = "desktop", "unknown", "unknown"
	if ua == "" || ua == "unknown" {
		return device, browser, osName
	}
	lower := strings.ToLower(ua)

	switch {
	case strings.Contains(lower, "ipad") || strings.Contains(lower, "tablet"):
		device = "tablet"
	case strings.Contains(lower, "mobile") || strings.Contains(lower, "iphone") || strings.Contains(lower, "android"):
		device = "mobile"
	}

	switch {
	case strings.Contains(lower, "edg/"):
		browser = "Edge"
	case strings.Contains(lower, "opr/") || strings.Contains(lower, "opera"):
		browser = "Opera"
	case strings.Contains(lower, "chrome"):
		browser = "Chrome"
	case strings.Contains(lower, "firefox"):
		browser = "Firefox"
	case strings.Contains(lower, "safari"):
		browser = "Safari"
	}

	switch {
	case strings.Contains(lower, "windows"):
		osName = "Windows"
	case strings.Contains(lower, "android"):
		osName = "Android"
	case strings.Contains(lower, "iphone"), strings.Contains(lower, "ipad"), strings.Contains(lower, "ios"):
		osName = "iOS"
	case strings.Contains(lower, "mac os"):
		osName = "macOS"
	case strings.Contains(lower, "linux"):
		osName = "Linux"
	}

	return device, browser, osName
}
