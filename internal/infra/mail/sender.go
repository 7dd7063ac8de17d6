package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"
	"time"
	_ "time/tzdata"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/sales-os/internal/entity"
)

//go:embed templates/sale_alert.txt
var templatesFS embed.FS

var saleAlertTmpl = template.Must(template.ParseFS(templatesFS, "templates/sale_alert.txt"))

var saoPaulo = loadLocation("America/Sao_Paulo")

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
		To:       to,
		dialer:   gomail.NewDialer(host, port, user, password),
	}
}

func renderSaleAlert(sale entity.LeadSale) (string, error) {
	data := SaleAlertData{
		LeadName:      sale.Name,
		ContactHandle: sale.ContactHandle,
		City:          sale.City,
		Origin:        sale.Origin,
		OwnerName:     sale.OwnerName,
		ClosedAt:      sale.ClosedAt.In(saoPaulo).Format("02/01/2006 15:04"),
	}

	var body bytes.Buffer
	if err := saleAlertTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// SendSaleAlert avisa a gestão por e-mail que um lead foi fechado.
func (s *EmailSender) SendSaleAlert(ctx context.Context, sale entity.LeadSale) error {
	if len(s.To) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderSaleAlert(sale)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", fmt.Sprintf("VENDA REALIZADA! 🏆 %s fechou %s", sale.OwnerName, sale.Name))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}
