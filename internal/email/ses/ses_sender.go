package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendInvoiceIssued(ctx context.Context, toEmail, toName string, inv *domain.Invoice) error {
	subject := fmt.Sprintf("Invoice %s from %s", inv.InvoiceNumber, inv.SellerName)
	htmlBody := buildInvoiceIssuedHTML(toName, inv)
	textBody := fmt.Sprintf(
		"Hi %s,\n\n%s has issued invoice %s dated %s to you.\n\nAmount due: Rs. %s (%s)\n\nPlease contact the seller for payment details.\n",
		toName, inv.SellerName, inv.InvoiceNumber, inv.Date.Format("02 Jan 2006"),
		inv.Total.StringFixed(2), inv.TotalInWords)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildInvoiceIssuedHTML(name string, inv *domain.Invoice) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Invoice %s</h2>
  <p>Hi %s,</p>
  <p>%s has issued the following tax invoice to you:</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Invoice number</td><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Date</td><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>
    <tr><td style="padding: 8px; border-bottom: 1px solid #eee;">Amount due</td><td style="padding: 8px; border-bottom: 1px solid #eee;"><strong>Rs. %s</strong></td></tr>
    <tr><td style="padding: 8px; border-bottom: 1px solid #eee;">In words</td><td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td></tr>
  </table>
  <p>Please contact the seller for payment details.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">GSTBill - GST Invoicing</p>
</body>
</html>`, inv.InvoiceNumber, name, inv.SellerName, inv.InvoiceNumber,
		inv.Date.Format("02 Jan 2006"), inv.Total.StringFixed(2), inv.TotalInWords)
}
