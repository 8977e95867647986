package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://greenhouse.io/jobs/456", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://workday.com/jobs", PlatformWorkday},
		{"https://notgreenhouse.io.example.com/jobs", PlatformUnknown},
		{"https://example.com/careers/123", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestContentSelectors(t *testing.T) {
	assert.Equal(t, ".job__description.body", ContentSelectors(PlatformGreenhouse)[0])
	assert.Contains(t, ContentSelectors(PlatformUnknown), "main")
	assert.Contains(t, ContentSelectors(PlatformUnknown), ".job-description")
}

func TestNoiseSelectors(t *testing.T) {
	common := NoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")

	lever := NoiseSelectors(PlatformLever)
	assert.Contains(t, lever, "form")
	assert.Contains(t, lever, ".posting-apply")
	assert.Len(t, lever, len(common)+2)

	// platform noise must not leak into the shared list
	assert.NotContains(t, NoiseSelectors(PlatformUnknown), ".posting-apply")
}
