package telegram

const (
	LogPrefixWebhook = "internal.conversation.delivery.telegram.HandleWebhook"
	LogPrefixProcess = "internal.conversation.delivery.telegram.ProcessUpdate"
	LogPrefixPoller  = "internal.conversation.delivery.telegram.Poller"
)

const (
	CommandStart  = "/start"
	CommandHelp   = "/help"
	CommandQuote  = "/quote"
	CommandTask   = "/task"
	CommandCancel = "/cancel"
)

const (
	MessageWelcome = "Hi! I can put tasks on your Google Calendar.\n\nSend /task to create one, or /help to see what I can do."
	MessageHelp    = "*Commands*\n" +
		"/task - create a calendar event step by step\n" +
		"/cancel - stop the current task\n" +
		"/quote - get a quote\n" +
		"/help - show this message\n\n" +
		"Dates use the format `YYYY-MM-DD HH:MM:SS`. The timezone is taken from the location you share."
	MessageUnknownCommand = "Unknown command. Send /help to see what I can do."
	MessageNothingToStop  = "There is nothing to cancel."
	MessageNoQuote        = "Could not fetch a quote right now."
	MessageInternalError  = "Something went wrong while handling your message. Please try again."
	MessageSlowDown       = "You are sending messages too fast. Please wait a moment."
)

const (
	DefaultRateLimitPerMin = 30
	DefaultPollTimeout     = 20
)
