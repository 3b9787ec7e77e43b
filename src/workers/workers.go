package workers

import (
	"encoding/json"
	"log"
	"os"

	"crs/src/lib"
	"crs/src/types"
	"crs/src/utils"

	awslib "crs/src/lib/aws"

	"github.com/tidwall/gjson"
)

func toStrings(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func str(m types.JSONB, key string) string {
	s, _ := m[key].(string)
	return s
}

// EmailQueueConsumer drains the outbound email queue and delivers each
// message over SMTP. Messages are the JSON bodies the mailer publishes.
func EmailQueueConsumer() {
	qname := utils.WithSuffix(os.Getenv("EMAIL_QUEUE"))
	log.Printf("%s: Listening for messages...", qname)
	c := awslib.NewSQSConsumer(qname, func(body string) {
		if !gjson.Valid(body) {
			log.Printf("[%s]: Received invalid json body. Aborting", qname)
			return
		}
		var msg types.JSONB
		if err := json.Unmarshal([]byte(body), &msg); err != nil {
			log.Printf("Error deserializing JSON: %s\n", err.Error())
			return
		}
		html, _ := msg["html"].(bool)
		input := &lib.SendMailInput{
			From:     str(msg, "from"),
			FromName: str(msg, "from-name"),
			To:       toStrings(msg["to"]),
			Cc:       toStrings(msg["cc"]),
			Bcc:      toStrings(msg["bcc"]),
			ReplyTo:  str(msg, "reply-to"),
			Subject:  str(msg, "subject"),
			Body:     str(msg, "body"),
			Html:     html,
		}
		if len(input.To) == 0 {
			log.Printf("[%s]: Message has no recipients. Aborting", qname)
			return
		}
		if err := lib.SendMail(input); err != nil {
			log.Printf("[%s]: Error sending email: %s\n", qname, err.Error())
			return
		}
		log.Printf("[%s]: Delivered email to %s\n", qname, input.To[0])
	})
	c.Listen()
}

// Start launches the queue consumers. Local environments publish to kafka
// and deliver nothing here; the receipt job queue is drained by the PDF
// renderer, not by this process.
func Start() {
	if os.Getenv("API_ENV") == "local" {
		return
	}
	if os.Getenv("EMAIL_QUEUE") == "" {
		return
	}
	go EmailQueueConsumer()
}
