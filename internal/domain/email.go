package domain

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// RSVPConfirmationData holds data for the RSVP confirmation email sent when a
// new RSVP record is created.
type RSVPConfirmationData struct {
	Email      string
	Name       string
	EventTitle string
	EventDate  string
	StartTime  string
	Location   string
	Status     string
}
