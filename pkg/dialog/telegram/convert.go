package telegram

import (
	"github.com/gotd/td/tg"
	"github.com/raykavin/chanwatch/pkg/dialog"
)

// channelIDShift turns MTProto channel ids into the -100... form used by
// the bot API and by the monitored list.
const channelIDShift = 1_000_000_000_000

// convert maps an MTProto dialog and its peer entities to a dialog.Raw.
// Dialog folders are skipped.
func convert(
	d tg.DialogClass,
	users map[int64]*tg.User,
	chats map[int64]*tg.Chat,
	channels map[int64]*tg.Channel,
) (dialog.Raw, bool) {
	dlg, ok := d.(*tg.Dialog)
	if !ok {
		return dialog.Raw{}, false
	}

	raw := dialog.Raw{Unread: dlg.UnreadCount}

	switch peer := dlg.Peer.(type) {
	case *tg.PeerUser:
		raw.ID = peer.UserID
		raw.Kind = dialog.KindPrivate
		if u, ok := users[peer.UserID]; ok {
			raw.FirstName = u.FirstName
			raw.LastName = u.LastName
			raw.Username = u.Username
			if u.Bot {
				raw.Kind = dialog.KindBot
			}
		}
	case *tg.PeerChat:
		raw.ID = -peer.ChatID
		raw.Kind = dialog.KindGroup
		if c, ok := chats[peer.ChatID]; ok {
			raw.Title = c.Title
			raw.Members = c.ParticipantsCount
		}
	case *tg.PeerChannel:
		raw.ID = -channelIDShift - peer.ChannelID
		raw.Kind = dialog.KindSupergroup
		if c, ok := channels[peer.ChannelID]; ok {
			raw.Title = c.Title
			raw.Username = c.Username
			if c.Broadcast {
				raw.Kind = dialog.KindChannel
			}
			if n, ok := c.GetParticipantsCount(); ok {
				raw.Members = n
			}
		}
	default:
		return dialog.Raw{}, false
	}

	return raw, true
}
