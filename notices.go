package twirc

import (
	"strings"

	"github.com/twirc/twirc/ircutil"
)

// A noticeGroup classifies service notices by their message id. Observable
// groups re-emit chat.notice to subscribers; groups with a handler also get
// to update client state.
type noticeGroup struct {
	name       string
	observable bool
	handler    func(client *Client, event *Event, group string)
}

var (
	noticeRoomMode   = &noticeGroup{name: "room_mode", observable: true}
	noticeHosting    = &noticeGroup{name: "hosting", observable: true}
	noticeModeration = &noticeGroup{name: "moderation", observable: true}
	noticePermission = &noticeGroup{name: "permission", observable: true}
	noticeModsRoster = &noticeGroup{name: "mods_roster", observable: false, handler: handleModsRoster}
)

// noticeGroupsByID maps the service's msg-id tag to its group. Ids missing
// here surface as plain notices and are logged as unhandled.
var noticeGroupsByID = map[string]*noticeGroup{
	"emote_only_on":   noticeRoomMode,
	"emote_only_off":  noticeRoomMode,
	"followers_on":    noticeRoomMode,
	"followers_off":   noticeRoomMode,
	"r9k_on":          noticeRoomMode,
	"r9k_off":         noticeRoomMode,
	"slow_on":         noticeRoomMode,
	"slow_off":        noticeRoomMode,
	"subs_on":         noticeRoomMode,
	"subs_off":        noticeRoomMode,

	"host_on":                  noticeHosting,
	"host_off":                 noticeHosting,
	"host_target_went_offline": noticeHosting,
	"bad_host_hosting":         noticeHosting,

	"ban_success":        noticeModeration,
	"unban_success":      noticeModeration,
	"timeout_success":    noticeModeration,
	"already_banned":     noticeModeration,
	"bad_unban_no_ban":   noticeModeration,
	"mod_success":        noticeModeration,
	"unmod_success":      noticeModeration,
	"bad_mod_mod":        noticeModeration,
	"bad_unmod_mod":      noticeModeration,

	"msg_banned":            noticePermission,
	"msg_channel_suspended": noticePermission,
	"msg_ratelimit":         noticePermission,
	"no_permission":         noticePermission,

	"room_mods": noticeModsRoster,
	"no_mods":   noticeModsRoster,
}

// handleNotice routes a NOTICE frame by its message id. Notices without a
// known group still reach subscribers; they're just logged as unhandled so
// new ids get noticed during development.
func (client *Client) handleNotice(event *Event) {
	id := event.Tags.String("msgId")

	notice := NewEvent("chat", "notice")
	notice.Channel = event.Channel
	notice.Tags = event.Tags
	notice.Text = event.Text
	notice.NoticeID = id

	group, ok := noticeGroupsByID[id]
	if !ok {
		client.debugln("unhandled notice:", id, event.Raw)
		client.EmitNonBlocking(notice)
		return
	}

	if group.observable {
		client.EmitNonBlocking(notice)
	}
	if group.handler != nil {
		group.handler(client, event, group.name)
	}
}

// handleModsRoster refreshes a channel's moderator set from the answer to
// the /mods command. The roster arrives as free text after a colon, comma
// separated; no_mods means the set is empty.
func handleModsRoster(client *Client, event *Event, group string) {
	channel := client.channelOrCreate(event.Channel)

	if event.NoticeID == "no_mods" || event.Tags.String("msgId") == "no_mods" {
		channel.setModerators(nil)
		return
	}

	roster := event.Text
	if colon := strings.LastIndexByte(roster, ':'); colon >= 0 {
		roster = roster[colon+1:]
	}

	names := make([]string, 0, 8)
	for _, name := range strings.Split(roster, ",") {
		name = ircutil.Username(name)
		if name != "" {
			names = append(names, name)
		}
	}

	channel.setModerators(names)
}
