package usecase

// Log prefixes
const (
	LogPrefixStart   = "internal.conversation.usecase.Start"
	LogPrefixHandle  = "internal.conversation.usecase.Handle"
	LogPrefixCancel  = "internal.conversation.usecase.Cancel"
	LogPrefixDiscard = "internal.conversation.usecase.Discard"
	LogPrefixExecute = "internal.conversation.usecase.execute"
	LogPrefixEvict   = "internal.conversation.usecase.OnEvict"
)

// Conversation outcomes, used as metric labels.
const (
	OutcomeCreated   = "created"
	OutcomeFailed    = "failed"
	OutcomeCanceled  = "canceled"
	OutcomeExpired   = "expired"
	OutcomeRestarted = "restarted"
	OutcomeDiscarded = "discarded"
)

// maxSteps bounds the effect loop of a single update.
const maxSteps = 16
