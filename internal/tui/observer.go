package tui

import "github.com/mmcdole/tablemap/internal/loader"

// ChannelObserver adapts loader.Observer to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan loader.Result
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan loader.Result) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnResult sends the result without blocking. When the channel is full the
// oldest pending result is dropped.
func (o *ChannelObserver) OnResult(r loader.Result) {
	for {
		select {
		case o.ch <- r:
			return
		default:
		}
		select {
		case <-o.ch:
		default:
		}
	}
}
