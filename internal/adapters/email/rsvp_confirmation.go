package email

import (
	"fmt"
	"html"

	"eventrsvp/internal/domain"
)

// RSVPConfirmation renders the confirmation email for a newly created RSVP.
// Returns subject, html body, and text body.
func RSVPConfirmation(data *domain.RSVPConfirmationData) (string, string, string) {
	subject := fmt.Sprintf("RSVP confirmed: %s", data.EventTitle)

	text := fmt.Sprintf(
		"Hi %s,\n\nYour RSVP for %q has been recorded as %q.\n\nDate: %s\nStarts: %s\nLocation: %s\n",
		data.Name, data.EventTitle, data.Status, data.EventDate, data.StartTime, data.Location,
	)

	htmlBody := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your RSVP for <strong>%s</strong> has been recorded as <strong>%s</strong>.</p>"+
			"<ul><li>Date: %s</li><li>Starts: %s</li><li>Location: %s</li></ul>",
		html.EscapeString(data.Name),
		html.EscapeString(data.EventTitle),
		html.EscapeString(data.Status),
		html.EscapeString(data.EventDate),
		html.EscapeString(data.StartTime),
		html.EscapeString(data.Location),
	)

	return subject, htmlBody, text
}
