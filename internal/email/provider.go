package email

// Provider delivers transactional mail. Implementations must be safe for
// concurrent use.
type Provider interface {
	Send(to, subject, body string) error
}
