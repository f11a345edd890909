// Package emails embeds the transactional email templates.
package emails

import "embed"

// Template names.
const (
	Confirmation = "confirmation.md"
	BaseLayout   = "base.html"
)

// FS holds the markdown templates at its root and layouts under layouts/.
//
//go:embed *.md layouts/*.html
var FS embed.FS

// ConfirmationData is the data the confirmation template expects.
type ConfirmationData struct {
	ConfirmationLink string
}
