package fetch

import (
	"net/url"
	"slices"
	"strings"
)

// Platform identifies a hosting site with known page structure.
type Platform string

// Known platforms
const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformGitHub     Platform = "github"
	PlatformUnknown    Platform = "unknown"
)

type profile struct {
	platform Platform
	hosts    []string
	content  []string
	noise    []string
}

// commonNoise covers application forms and legal boilerplate found on job boards.
var commonNoise = []string{
	"form", "#application-form", ".application-form", ".apply-button-container",
	".eeo-statement", ".eeo-section", ".voluntary-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".cookie-consent", ".gdpr-notice",
}

var profiles = []profile{
	{
		platform: PlatformGreenhouse,
		hosts:    []string{"greenhouse.io"},
		content:  []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:    []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section"},
	},
	{
		platform: PlatformLever,
		hosts:    []string{"lever.co"},
		content:  []string{".posting-page", ".posting-description", ".content"},
		noise:    []string{".apply-section", ".posting-apply"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"workday.com", "myworkdayjobs.com"},
		content:  []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']"},
	},
	{
		// Rendered README or gist hosting a resume.
		platform: PlatformGitHub,
		hosts:    []string{"github.com", "gist.github.com"},
		content:  []string{"article.markdown-body", ".markdown-body", "#readme"},
	},
}

// DefaultTextSelectors are tried for pages on unknown hosts.
func DefaultTextSelectors() []string {
	return []string{
		".resume", "#resume", ".job-description", "#job-description",
		"main", "article", ".content", "#content",
	}
}

// DetectPlatform identifies the hosting platform from a URL.
func DetectPlatform(rawURL string) Platform {
	if p, ok := lookupProfile(rawURL); ok {
		return p.platform
	}
	return PlatformUnknown
}

// SelectorsFor returns the content and noise selectors to use for rawURL.
func SelectorsFor(rawURL string) (content, noise []string) {
	p, ok := lookupProfile(rawURL)
	if !ok {
		return DefaultTextSelectors(), slices.Clone(commonNoise)
	}
	content = slices.Concat(p.content, DefaultTextSelectors())
	noise = slices.Concat(commonNoise, p.noise)
	return content, noise
}

func lookupProfile(rawURL string) (profile, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return profile{}, false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, p := range profiles {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p, true
			}
		}
	}
	return profile{}, false
}
