package commands

// Slash commands understood by the bot
const (
	Start     = "/start"
	Help      = "/help"
	Subscribe = "/subscribe"
	Get       = "/get"
	Info      = "/info"
	List      = "/list"
	Broadcast = "/all"
)
