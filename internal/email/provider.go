package email

// Provider sends transactional mail. Implementations must be safe for
// concurrent use; the moderation notifier calls Send from goroutines.
type Provider interface {
	Send(to, subject, htmlBody string) error
}

// NoopProvider is used when email delivery is disabled. Every send
// succeeds without doing anything.
type NoopProvider struct{}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(to, subject, htmlBody string) error {
	return nil
}
