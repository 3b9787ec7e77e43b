package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"crs/src/config"
	"crs/src/lib"
	"crs/src/lib/mailer"
	"crs/src/models"
	"crs/src/types"
	"crs/src/utils"
)

// QueueReceiptGenerator hands receipt rendering to the PDF worker through
// the job queue and returns the deterministic URL the rendered document will
// be served from. Rendering itself happens outside this service.
type QueueReceiptGenerator struct {
	Cfg config.AppSettings
}

func (g *QueueReceiptGenerator) Generate(ctx context.Context, b *models.Booking, p *models.Payment) (string, error) {
	job := types.JSONB{
		"payment_id":     p.ID.String(),
		"booking_id":     b.ID,
		"reference_code": b.ReferenceCode,
		"amount":         p.Amount.String(),
		"currency":       p.Currency,
		"payment_intent": p.PaymentIntent,
	}
	queue := utils.WithSuffix(g.Cfg.ReceiptQueue)
	apiEnv := os.Getenv("API_ENV")
	if apiEnv == "local" {
		if err := lib.KafkaProduceMessage("receipts", queue, job); err != nil {
			return "", fmt.Errorf("error sending receipt job to queue: %s", err.Error())
		}
	} else {
		body, err := json.Marshal(&job)
		if err != nil {
			return "", err
		}
		if err := lib.SQSProduceMessage(queue, string(body)); err != nil {
			return "", fmt.Errorf("error sending receipt job to queue: %s", err.Error())
		}
	}
	return fmt.Sprintf("%s/receipts/%s.pdf", g.Cfg.AssetHost, p.ID), nil
}

// MailNotifier emails the client once a payment clears. Delivery goes
// through the mailer queue; callers treat failures as best-effort.
type MailNotifier struct {
	Cfg config.AppSettings
}

func (n *MailNotifier) SendPaymentReceipt(ctx context.Context, b *models.Booking, p *models.Payment, receiptURL string) error {
	if b.Client == nil || b.Client.Email == "" {
		return errors.New("booking has no client email on record")
	}
	subject := fmt.Sprintf("Payment received for booking %s", b.ReferenceCode)
	body := fmt.Sprintf(
		"Hi %s,\n\nWe have received your payment of %s for booking %s.\nYour receipt: %s\n\nThank you,\n%s\n",
		b.Client.Name,
		utils.FormatAmount(p.Amount, p.Currency),
		b.ReferenceCode,
		receiptURL,
		n.Cfg.MailFromName,
	)
	return mailer.NewMailerMessage(&lib.SendMailInput{
		From:     n.Cfg.MailFrom,
		FromName: n.Cfg.MailFromName,
		To:       []string{b.Client.Email},
		Subject:  subject,
		Body:     body,
	})
}
