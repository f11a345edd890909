// Package mailer renders and sends transactional email.
//
// Templates are markdown files with optional YAML frontmatter, executed with
// text/template, converted to HTML by goldmark and wrapped in an HTML layout:
//
//	---
//	Subject: Welcome!
//	---
//	Welcome to our newsletter!
//
//	[!button|Click here to confirm your subscription]({{.ConfirmationLink}})
//
// The [!button|Label](URL) syntax renders as <a class="btn"> in HTML and as
// "Label: URL" in the plain-text alternative.
//
// Delivery goes through the [Sender] interface; see the postmark and resend
// subpackages for provider implementations.
//
//	renderer := mailer.NewRenderer(templatesFS)
//	m := mailer.New(postmark.New(cfg), renderer, mailer.Config{})
//	err := m.Send(ctx, mailer.SendParams{
//		To:       "ursula@example.com",
//		Template: "confirmation.md",
//		Data:     data,
//	})
//
// Errors wrap the package sentinels, so callers can use errors.Is with
// ErrRenderFailed, ErrSendFailed and the validation errors.
package mailer
