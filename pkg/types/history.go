package types

// MaxSendsPerDay is the advisory daily quota for outbound messages.
const MaxSendsPerDay = 10

// HistoryRecord is the durable log entry for one successfully sent message.
// Records are stored newest-first; the gateway prepends on every send.
type HistoryRecord struct {
	Date    string `json:"date"`    // display timestamp
	DateKey string `json:"dateKey"` // YYYY-MM-DD, used for the quota window
	Subject string `json:"subject"`
	Preview string `json:"preview"` // first 50 runes of the body
}

// RelayConfig holds the three opaque credential strings for the email relay.
type RelayConfig struct {
	ServiceID  string `json:"serviceId"`
	TemplateID string `json:"templateId"`
	Token      string `json:"token"`
}

// Complete reports whether all three credential strings are present.
func (c RelayConfig) Complete() bool {
	return c.ServiceID != "" && c.TemplateID != "" && c.Token != ""
}
