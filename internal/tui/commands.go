package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tablemap/internal/loader"
)

// Command factories for async operations

// LoadCmd starts a load for scope right away, on the caller's goroutine, so
// loads begin in the order Update asked for them. Load does not block. The
// returned command only reports the start; progress arrives through the
// observer channel.
func LoadCmd(ctx context.Context, l *loader.Loader, scope string) tea.Cmd {
	if l != nil {
		l.Load(ctx, scope)
	}
	return func() tea.Msg {
		return LoadStartedMsg{Scope: scope}
	}
}

// WaitForResultCmd blocks until the loader reports a state change
func WaitForResultCmd(ch <-chan loader.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ResultMsg{Result: r}
	}
}

// HideBannerCmd asks the banner to hide the notice raised at seq after delay
func HideBannerCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return HideBannerMsg{Seq: seq}
	})
}
