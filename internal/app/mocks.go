package app

// MockEmailProvider is used in tests and local development. Sends succeed
// without dispatching anything.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, htmlBody string) error { return nil }
