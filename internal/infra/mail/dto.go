package mail

type SaleAlertData struct {
	LeadName      string
	ContactHandle string
	City          string
	Origin        string
	OwnerName     string
	ClosedAt      string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
	dialer   dialer
}
