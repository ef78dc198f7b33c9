package tui

import "github.com/mmcdole/tablemap/internal/loader"

// Message types for the TUI

// ResultMsg carries a loader state change
type ResultMsg struct {
	Result loader.Result
}

// LoadStartedMsg signals that a load for Scope was kicked off
type LoadStartedMsg struct {
	Scope string
}

// HideBannerMsg asks the banner to drop the notice raised at Seq
type HideBannerMsg struct {
	Seq int
}
