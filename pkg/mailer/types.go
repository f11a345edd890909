package mailer

import "fmt"

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully-prepared message ready for a Sender.
type Email struct {
	Subject string   // Email subject
	HTML    string   // HTML body content
	Text    string   // Plain text alternative
	From    string   // Overrides the provider's default sender
	ReplyTo string   // Reply-to address
	To      []string // Recipients (at least one required)
}
