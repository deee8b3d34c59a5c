package domain

import (
	"encoding/json"
	"strings"
)

// Icon is the closed set of icon identifiers services and social links may
// reference. Unknown persisted values decode to IconFallback.
type Icon string

const (
	IconCode      Icon = "code"
	IconDesign    Icon = "design"
	IconMarketing Icon = "marketing"
	IconAnalytics Icon = "analytics"
	IconCloud     Icon = "cloud"
	IconMobile    Icon = "mobile"
	IconSecurity  Icon = "security"
	IconSupport   Icon = "support"

	IconGitHub    Icon = "github"
	IconLinkedIn  Icon = "linkedin"
	IconTwitter   Icon = "twitter"
	IconInstagram Icon = "instagram"
	IconFacebook  Icon = "facebook"
	IconYouTube   Icon = "youtube"
	IconWebsite   Icon = "website"

	IconFallback Icon = "generic"
)

var knownIcons = []Icon{
	IconCode, IconDesign, IconMarketing, IconAnalytics, IconCloud, IconMobile, IconSecurity, IconSupport,
	IconGitHub, IconLinkedIn, IconTwitter, IconInstagram, IconFacebook, IconYouTube, IconWebsite,
	IconFallback,
}

// legacy names that older records still carry
var iconAliases = map[string]Icon{
	"x":          IconTwitter,
	"web":        IconWebsite,
	"globe":      IconWebsite,
	"shield":     IconSecurity,
	"chart":      IconAnalytics,
	"smartphone": IconMobile,
}

func ParseIcon(s string) Icon {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, icon := range knownIcons {
		if string(icon) == s {
			return icon
		}
	}
	if icon, ok := iconAliases[s]; ok {
		return icon
	}
	return IconFallback
}

func (i Icon) Valid() bool {
	for _, icon := range knownIcons {
		if icon == i {
			return true
		}
	}
	return false
}

func IconNames() []string {
	names := make([]string, 0, len(knownIcons))
	for _, icon := range knownIcons {
		names = append(names, string(icon))
	}
	return names
}

func (i *Icon) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*i = ParseIcon(s)
	return nil
}
