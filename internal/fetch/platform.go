package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps host suffixes to their platform.
var platformHosts = []struct {
	platform Platform
	suffixes []string
}{
	{PlatformGreenhouse, []string{"greenhouse.io"}},
	{PlatformLever, []string{"lever.co"}},
	{PlatformWorkday, []string{"workday.com", "myworkdayjobs.com"}},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(rawURL string) Platform {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, ph := range platformHosts {
		for _, suffix := range ph.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return ph.platform
			}
		}
	}
	return PlatformUnknown
}

// genericContent is tried for pages on unknown platforms.
var genericContent = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// commonNoise covers application forms, legal notices and share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".eeo-section",
	".voluntary-disclosure",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-banner",
	".cookie-consent",
}

var platformSelectors = map[Platform]struct {
	content []string
	noise   []string
}{
	PlatformGreenhouse: {
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		content: []string{".posting-page", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".posting-apply"},
	},
	PlatformWorkday: {
		content: []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// ContentSelectors returns the main-content selectors for a platform, most specific first.
func ContentSelectors(p Platform) []string {
	if sel, ok := platformSelectors[p]; ok {
		return sel.content
	}
	return genericContent
}

// NoiseSelectors returns the elements to strip for a platform.
func NoiseSelectors(p Platform) []string {
	noise := append([]string(nil), commonNoise...)
	if sel, ok := platformSelectors[p]; ok {
		noise = append(noise, sel.noise...)
	}
	return noise
}
