package conversation

const (
	PromptTitle      = "What is the title of your task?"
	PromptStart      = "Enter the start date of your task? (YYYY-MM-DD HH:MM:SS)"
	PromptEnd        = "Enter the end date of your task? (YYYY-MM-DD HH:MM:SS)"
	PromptLocation   = "Share your location so I can pick the right timezone."
	PromptCode       = "Paste the authorization code (or the full address you were redirected to) here."
	ButtonLocation   = "Share Location"
	MessageCanceled  = "Operation canceled."
	MessageCreated   = "Event created: "
	MessageFailed    = "Failed to create event: "
	MessageInvalid   = "That does not look right: "
	MessageAuthorize = "Authorize calendar access by opening this link:\n"
	MessageNoTask    = "There is no task in progress. Send /task to create one."
)
