package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// SMSSender posts a short notice to an SMS gateway webhook. Best-effort
// only: the reset flow ignores its result beyond logging.
type SMSSender struct {
	URL        string
	httpClient *http.Client
}

func NewSMSSender(url string) *SMSSender {
	return &SMSSender{
		URL:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SMSSender) SetHTTPClient(hc *http.Client) {
	if hc != nil {
		s.httpClient = hc
	}
}

func (s *SMSSender) Send(phone string, message string) error {
	if s.URL == "" {
		return fmt.Errorf("sms webhook url not configured")
	}

	payload := map[string]string{
		"to_phone": phone,
		"message":  message,
	}
	b, _ := json.Marshal(payload)

	req, err := http.NewRequest(http.MethodPost, s.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway failed: status=%d", resp.StatusCode)
	}
	return nil
}
