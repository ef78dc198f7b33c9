package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBanner_StartsHiddenWhileOnline(t *testing.T) {
	b := NewBanner()
	_, hide := b.SetOnline(true)

	assert.False(t, hide)
	assert.Equal(t, BannerHidden, b.State())
	assert.Empty(t, b.Message())
	assert.Empty(t, b.View(40))
}

func TestBanner_OfflineThenBackOnlineThenHidden(t *testing.T) {
	b := NewBanner()

	_, hide := b.SetOnline(false)
	assert.False(t, hide)
	assert.Equal(t, BannerOffline, b.State())
	assert.Equal(t, OfflineMessage, b.Message())
	assert.Contains(t, b.View(60), OfflineMessage)

	seq, hide := b.SetOnline(true)
	assert.True(t, hide)
	assert.Equal(t, BannerBackOnline, b.State())
	assert.Equal(t, BackOnlineMessage, b.Message())

	b.Hide(seq)
	assert.Equal(t, BannerHidden, b.State())

	// Further online events do not bring it back
	_, hide = b.SetOnline(true)
	assert.False(t, hide)
	assert.Equal(t, BannerHidden, b.State())
}

func TestBanner_StaleHideIsIgnored(t *testing.T) {
	b := NewBanner()
	b.SetOnline(false)
	first, _ := b.SetOnline(true)

	// Drop again before the timer fires, then reconnect
	b.SetOnline(false)
	b.Hide(first)
	assert.Equal(t, BannerOffline, b.State())

	second, hide := b.SetOnline(true)
	assert.True(t, hide)
	b.Hide(first)
	assert.Equal(t, BannerBackOnline, b.State())

	b.Hide(second)
	assert.Equal(t, BannerHidden, b.State())
}

func TestBanner_RepeatedOfflineKeepsSequence(t *testing.T) {
	b := NewBanner()
	s1, _ := b.SetOnline(false)
	s2, _ := b.SetOnline(false)
	assert.Equal(t, s1, s2)
}
