// Package bot is the chat transport glue: webhook parsing, command routing,
// and the outbound Telegram send call. The access-control and graph logic
// lives behind it in auth and forest.
package bot

import "strings"

// Command is a parsed inbound bot command.
type Command struct {
	// PrincipalID identifies the sender.
	PrincipalID string

	// ChatID is the delivery address for replies.
	ChatID string

	// Name is the lowercased command keyword, including the leading slash.
	Name string

	// Args are the whitespace-separated words after the keyword.
	Args []string
}

// ParseCommand splits message text into a command keyword and arguments.
// ok is false when the text is empty or not a command.
func ParseCommand(principalID, chatID, text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}
	return Command{
		PrincipalID: principalID,
		ChatID:      chatID,
		Name:        strings.ToLower(fields[0]),
		Args:        fields[1:],
	}, true
}
