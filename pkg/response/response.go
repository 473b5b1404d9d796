// Package response turns semantic bot replies into Telegram MarkdownV2 text.
package response

import (
	"fmt"
	"strings"

	"tzbot/pkg/models"
)

// Response is a closed set of reply kinds. Only types in this package
// implement it, so Text can switch over all of them.
type Response interface {
	response()
}

type Hello struct{}

type IncorrectRequest struct{}

type ChosenTimezone struct {
	Timezone string
}

type FailedSetTimezone struct {
	Timezone string
}

// CommandList is the /help reply.
type CommandList struct {
	Commands []models.Command
}

func (Hello) response()             {}
func (IncorrectRequest) response()  {}
func (ChosenTimezone) response()    {}
func (FailedSetTimezone) response() {}
func (CommandList) response()       {}

const helloText = "Hello! I'm Rações bot. My purpose is to track how much ration you have given your pet! \n\n" +
	"Before we start, please send me your location so I can pick your timezone."

// Text returns the unescaped display text of r.
func Text(r Response) string {
	switch r := r.(type) {
	case Hello:
		return helloText
	case IncorrectRequest:
		return "Incorrect request"
	case ChosenTimezone:
		return fmt.Sprintf("Selected timezone: %s!", r.Timezone)
	case FailedSetTimezone:
		return fmt.Sprintf("Failed to set timezone %s", r.Timezone)
	case CommandList:
		var b strings.Builder
		b.WriteString("Commands:\n")
		for _, c := range r.Commands {
			fmt.Fprintf(&b, "\n/%s - %s", c.Name, c.Description)
		}
		return b.String()
	default:
		panic(fmt.Sprintf("response: unhandled kind %T", r))
	}
}

// Render is what goes over the wire: Text escaped for MarkdownV2.
func Render(r Response) string {
	return EscapeMarkdownV2(Text(r))
}

// Kind is a short stable label for logs and metrics.
func Kind(r Response) string {
	switch r.(type) {
	case Hello:
		return "hello"
	case IncorrectRequest:
		return "incorrect_request"
	case ChosenTimezone:
		return "chosen_timezone"
	case FailedSetTimezone:
		return "failed_set_timezone"
	case CommandList:
		return "command_list"
	default:
		panic(fmt.Sprintf("response: unhandled kind %T", r))
	}
}
