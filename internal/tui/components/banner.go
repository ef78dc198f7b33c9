package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/tablemap/internal/tui/styles"
)

// Banner messages
const (
	OfflineMessage    = "You're offline. Showing saved restaurants."
	BackOnlineMessage = "You're back online."
)

// BannerHideDelay is how long the back-online notice stays up
const BannerHideDelay = 3 * time.Second

// BannerState is what the connectivity banner currently shows
type BannerState int

const (
	BannerHidden BannerState = iota
	BannerOffline
	BannerBackOnline
)

// Banner tracks connectivity transitions. It shows a persistent notice while
// offline and a short-lived one after reconnecting.
type Banner struct {
	state      BannerState
	wasOffline bool
	seq        int
}

// NewBanner creates a hidden banner
func NewBanner() Banner {
	return Banner{}
}

// SetOnline feeds a connectivity value. When it returns hide == true the
// caller should deliver Hide(seq) after BannerHideDelay.
func (b *Banner) SetOnline(online bool) (seq int, hide bool) {
	switch {
	case !online:
		if b.state != BannerOffline {
			b.seq++
		}
		b.state = BannerOffline
		b.wasOffline = true
	case b.wasOffline:
		b.seq++
		b.state = BannerBackOnline
		b.wasOffline = false
		return b.seq, true
	}
	return b.seq, false
}

// Hide dismisses the back-online notice if seq is still the latest
// transition. A stale timer never hides a newer notice.
func (b *Banner) Hide(seq int) {
	if seq == b.seq && b.state == BannerBackOnline {
		b.state = BannerHidden
	}
}

// State returns the current banner state
func (b Banner) State() BannerState {
	return b.state
}

// Message returns the banner text, empty when hidden
func (b Banner) Message() string {
	switch b.state {
	case BannerOffline:
		return OfflineMessage
	case BannerBackOnline:
		return BackOnlineMessage
	}
	return ""
}

// View renders the banner across width. Hidden banners render as "".
func (b Banner) View(width int) string {
	var style lipgloss.Style
	switch b.state {
	case BannerOffline:
		style = styles.OfflineBannerStyle
	case BannerBackOnline:
		style = styles.OnlineBannerStyle
	default:
		return ""
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(b.Message())
}
