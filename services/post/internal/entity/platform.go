package entity

import (
	"errors"
	"fmt"
	"strings"
)

type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
	PlatformX         Platform = "X"
	PlatformDiscord   Platform = "Discord"
	PlatformYouTube   Platform = "YouTube"
)

// Platforms lists every target in display order. Drafts keep their
// selection in this order.
var Platforms = []Platform{
	PlatformFacebook,
	PlatformInstagram,
	PlatformTikTok,
	PlatformX,
	PlatformDiscord,
	PlatformYouTube,
}

var ErrUnknownPlatform = errors.New("unknown platform")

// ParsePlatform matches case-insensitively.
func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms {
		if strings.EqualFold(string(p), s) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, s)
}

func platformRank(p Platform) int {
	for i, candidate := range Platforms {
		if candidate == p {
			return i
		}
	}
	return len(Platforms)
}
