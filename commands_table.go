package twirc

// ignoredCommands is handshake noise the dispatcher drops without emitting
// anything beyond the raw packet event.
var ignoredCommands = map[string]bool{
	"001": true, // welcome
	"002": true, // yourhost
	"003": true, // created
	"004": true, // myinfo
	"353": true, // namreply
	"366": true, // endofnames
	"375": true, // motdstart
	"376": true, // endofmotd
	"CAP": true, // capability ack
}

// commandNames maps wire commands to the semantic names reported through
// the unknowncommand event.
var commandNames = map[string]string{
	"001": "welcome",
	"002": "yourhost",
	"003": "created",
	"004": "myinfo",
	"353": "namreply",
	"366": "endofnames",
	"372": "motd",
	"375": "motdstart",
	"376": "endofmotd",
	"421": "unknown",

	"CAP":             "cap",
	"CLEARCHAT":       "clearchat",
	"GLOBALUSERSTATE": "globaluserstate",
	"HOSTTARGET":      "hosttarget",
	"JOIN":            "join",
	"MODE":            "mode",
	"NOTICE":          "notice",
	"PART":            "part",
	"PING":            "ping",
	"PRIVMSG":         "privmsg",
	"RECONNECT":       "reconnect",
	"ROOMSTATE":       "roomstate",
	"USERSTATE":       "userstate",
	"WHISPER":         "whisper",
}

// CommandName resolves a wire command to a human-readable name, falling
// back to the wire command itself when unmapped.
func CommandName(command string) string {
	if name, ok := commandNames[command]; ok {
		return name
	}

	return command
}
