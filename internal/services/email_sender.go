package services

// EmailSender delivers a rendered message. Implementations return an
// error for diagnostics only; callers on the password-reset path must
// treat failures as non-fatal.
type EmailSender interface {
	Send(to string, subject string, textBody string, htmlBody string) error
}
