package notify

import (
	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/state"
)

// Channel holds the one pending user-facing notification. A new Notify
// overwrites whatever is pending; nothing is queued and nothing auto-dismisses.
type Channel struct {
	state *state.Value[models.Notification]
}

// NewChannel wraps the given notification state.
func NewChannel(s *state.Value[models.Notification]) *Channel {
	return &Channel{state: s}
}

// Notify shows title and message.
func (c *Channel) Notify(title, message string) {
	c.state.Set(models.Notification{Show: true, Title: title, Message: message})
}

// Dismiss hides the current notification, keeping its text.
func (c *Channel) Dismiss() {
	c.state.Update(func(n models.Notification) models.Notification {
		n.Show = false
		return n
	})
}

func (c *Channel) Current() models.Notification {
	return c.state.Get()
}

// Subscribe calls fn with every new notification state.
func (c *Channel) Subscribe(fn func(models.Notification)) func() {
	return c.state.Subscribe(fn)
}
