package bot

import (
	tele "gopkg.in/telebot.v3"

	"tzbot/pkg/models"
)

// toUpdate reports false for updates that carry no message or chat.
func toUpdate(c tele.Context) (models.Update, bool) {
	m := c.Message()
	if m == nil || m.Chat == nil {
		return models.Update{}, false
	}

	u := models.Update{
		ID: c.Update().ID,
		Chat: models.Chat{
			ID:      m.Chat.ID,
			Private: m.Chat.Type == tele.ChatPrivate,
		},
		Text: m.Text,
	}

	if s := m.Sender; s != nil {
		u.Sender = &models.Sender{
			ID:        s.ID,
			FirstName: s.FirstName,
			LastName:  optional(s.LastName),
			Username:  optional(s.Username),
		}
	}

	switch {
	case m.Location != nil:
		u.Location = toLocation(*m.Location)
	case m.Venue != nil:
		u.Location = toLocation(m.Venue.Location)
	}

	return u, true
}

func toLocation(l tele.Location) *models.Location {
	return &models.Location{Lat: float64(l.Lat), Lng: float64(l.Lng)}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
