package telegram

// LocationRequestKeyboard returns a one-time keyboard with a single button
// that asks the client to share the device location.
func LocationRequestKeyboard(label string) ReplyKeyboardMarkup {
	return ReplyKeyboardMarkup{
		Keyboard:        [][]KeyboardButton{{{Text: label, RequestLocation: true}}},
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}

// RemoveKeyboard hides any custom keyboard.
func RemoveKeyboard() ReplyKeyboardRemove {
	return ReplyKeyboardRemove{RemoveKeyboard: true}
}
