package utils

import (
	"errors"
	"os"
	"time"

	resty "github.com/go-resty/resty/v2"
)

const (
	AlertNotification = 0
	InfoNotification  = 1
)

type SlackRequestBody struct {
	Text string `json:"text"`
}

// SendSlackNotification will post to an 'Incoming Webhook' url setup in Slack
// Apps. A missing webhook url disables the notification silently.
func SendSlackNotification(msg string, notiType int) error {
	var webhookURL string
	if notiType == AlertNotification {
		webhookURL = os.Getenv("ALERT_WEBHOOK_URL")
	} else if notiType == InfoNotification {
		webhookURL = os.Getenv("INFO_WEBHOOK_URL")
	} else {
		return errors.New("Notification type is not supported")
	}
	if webhookURL == "" {
		return nil
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(SlackRequestBody{Text: msg}).
		Post(webhookURL)
	if err != nil {
		return err
	}
	if resp.String() != "ok" {
		return errors.New("Non-ok response returned from Slack")
	}
	return nil
}
