package models

import "strings"

type CommandKind int

const (
	CommandHelp CommandKind = iota + 1
	CommandStart
)

type Command struct {
	Kind        CommandKind
	Name        string
	Description string
}

// Commands is the catalog shown by /help and registered with Telegram.
var Commands = []Command{
	{Kind: CommandHelp, Name: "help", Description: "show this text"},
	{Kind: CommandStart, Name: "start", Description: "greet and explain how to set your timezone"},
}

// ParseCommand recognises "/name", "/name@bot" and "/name args", case-insensitively.
func ParseCommand(text string) (CommandKind, bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return 0, false
	}

	name := strings.TrimPrefix(text, "/")
	if i := strings.IndexAny(name, " \t\n"); i >= 0 {
		name = name[:i]
	}
	if i := strings.IndexByte(name, '@'); i >= 0 {
		name = name[:i]
	}
	name = strings.ToLower(name)

	for _, c := range Commands {
		if c.Name == name {
			return c.Kind, true
		}
	}
	return 0, false
}
