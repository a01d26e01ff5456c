package notify

import (
	"testing"

	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/state"

	"github.com/stretchr/testify/assert"
)

func TestNotifyOverwritesPending(t *testing.T) {
	c := NewChannel(state.NewValue(models.Notification{}))

	c.Notify("First", "one")
	c.Notify("Second", "two")

	assert.Equal(t, models.Notification{Show: true, Title: "Second", Message: "two"}, c.Current())
}

func TestDismissKeepsText(t *testing.T) {
	c := NewChannel(state.NewValue(models.Notification{}))
	c.Notify("Data Error", "boom")

	c.Dismiss()

	assert.Equal(t, models.Notification{Show: false, Title: "Data Error", Message: "boom"}, c.Current())
}

func TestSubscribeSeesEveryChange(t *testing.T) {
	c := NewChannel(state.NewValue(models.Notification{}))
	var seen []bool
	unsubscribe := c.Subscribe(func(n models.Notification) { seen = append(seen, n.Show) })

	c.Notify("t", "m")
	c.Dismiss()
	unsubscribe()
	c.Notify("t", "m")

	assert.Equal(t, []bool{true, false}, seen)
}
