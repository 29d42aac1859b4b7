package notification

import (
	"testing"

	"github.com/raykavin/chanwatch/pkg/monitor"
	"github.com/stretchr/testify/require"
)

func TestUpdateMessage(t *testing.T) {
	msg := UpdateMessage("config/monitored_channels.py", []monitor.Entry{
		{Identifier: "@news", Title: "News", Category: "채널"},
		{Identifier: "555", Title: "Team", Category: "그룹"},
	})

	require.Equal(t, "Monitored list updated: 2 chats (config/monitored_channels.py)\n"+
		"• News @news [채널]\n"+
		"• Team 555 [그룹]", msg)
}

func TestNewTelegram_RequiresUsers(t *testing.T) {
	_, err := NewTelegram(Settings{Token: "123:abc"})
	require.ErrorIs(t, err, ErrNoRecipients)
}
