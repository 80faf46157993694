package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// WebhookSender forwards mail to an external relay endpoint instead of
// speaking SMTP directly. The relay accepts a JSON payload and responds
// 200 on acceptance; anything else is a delivery failure.
type WebhookSender struct {
	URL        string
	httpClient *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *WebhookSender) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		s.httpClient = hc
	}
}

func (s *WebhookSender) Send(to string, subject string, textBody string, htmlBody string) error {
	payload := map[string]string{
		"to_email":     to,
		"subject":      subject,
		"message":      textBody,
		"html_message": htmlBody,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, s.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email relay failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
