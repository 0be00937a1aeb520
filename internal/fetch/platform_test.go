package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/careers/job/1", PlatformWorkday},
		{"https://github.com/jdoe/resume", PlatformGitHub},
		{"https://gist.github.com/jdoe/abc", PlatformGitHub},
		{"https://notgithub.com/jdoe", PlatformUnknown},
		{"https://example.com/cv.html", PlatformUnknown},
		{"::bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestSelectorsFor(t *testing.T) {
	content, noise := SelectorsFor("https://boards.greenhouse.io/acme/jobs/1")
	assert.Equal(t, ".job__description.body", content[0])
	assert.Contains(t, content, "main")
	assert.Contains(t, noise, "form")
	assert.Contains(t, noise, ".voluntary-self-id")

	content, noise = SelectorsFor("https://example.com")
	assert.Equal(t, DefaultTextSelectors(), content)
	assert.Equal(t, commonNoise, noise)
}
