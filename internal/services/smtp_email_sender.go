package services

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

type SMTPSender struct {
	Host   string
	Port   string
	User   string
	Pass   string
	From   string
	UseTLS bool
}

func (s *SMTPSender) Send(to string, subject string, textBody string, htmlBody string) error {
	addr := net.JoinHostPort(s.Host, s.Port)
	msg := buildMIMEMessage(s.From, to, subject, textBody, htmlBody)

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)

	if s.UseTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.Host})
		if err != nil {
			return err
		}
		c, err := smtp.NewClient(conn, s.Host)
		if err != nil {
			return err
		}
		defer c.Quit()
		if err := c.Auth(auth); err != nil {
			return err
		}
		if err := c.Mail(s.From); err != nil {
			return err
		}
		if err := c.Rcpt(to); err != nil {
			return err
		}
		w, err := c.Data()
		if err != nil {
			return err
		}
		_, err = w.Write([]byte(msg))
		if closeErr := w.Close(); err == nil {
			err = closeErr
		}
		return err
	}

	return smtp.SendMail(addr, auth, s.From, []string{to}, []byte(msg))
}

// buildMIMEMessage assembles a multipart/alternative message so clients
// without HTML rendering still get the plaintext part.
func buildMIMEMessage(from, to, subject, textBody, htmlBody string) string {
	const boundary = "dojo-mime-boundary"

	var msg strings.Builder
	write := func(k, v string) {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	write("From", from)
	write("To", to)
	write("Subject", subject)
	write("MIME-Version", "1.0")

	if htmlBody == "" {
		write("Content-Type", "text/plain; charset=\"utf-8\"")
		msg.WriteString("\r\n")
		msg.WriteString(textBody)
		return msg.String()
	}

	write("Content-Type", "multipart/alternative; boundary="+boundary)
	msg.WriteString("\r\n")

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(textBody)
	msg.WriteString("\r\n")

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	msg.WriteString("--" + boundary + "--\r\n")
	return msg.String()
}
