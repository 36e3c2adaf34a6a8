package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"nearby/internal/config"
)

type IMailService interface {
	SendSuggestionApproved(to, placeName, notes string) error
}

type smtpMailService struct {
	cfg      config.SMTPConfig
	htmlTpl  *template.Template
	textTpl  *template.Template
	dialWait time.Duration
}

func NewSMTPMailService(cfg config.SMTPConfig) IMailService {
	return &smtpMailService{
		cfg:      cfg,
		htmlTpl:  template.Must(template.New("html").Parse(suggestionHTMLTemplate)),
		textTpl:  template.Must(template.New("text").Parse(suggestionTextTemplate)),
		dialWait: 10 * time.Second,
	}
}

type suggestionEmail struct {
	PlaceName string
	Notes     string
	AppName   string
	Year      int
}

const suggestionHTMLTemplate = `<!doctype html>
<html>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #1e293b;">
  <h1 style="font-size: 22px;">Your suggestion was approved</h1>
  <p>Thanks for suggesting <strong>{{.PlaceName}}</strong>. It is now on its way into the {{.AppName}} catalog.</p>
  {{if .Notes}}<p style="color: #475569;">Note from the team: {{.Notes}}</p>{{end}}
  <p style="color: #94a3b8; font-size: 12px;">&copy; {{.Year}} {{.AppName}}</p>
</body>
</html>`

const suggestionTextTemplate = `Your suggestion was approved

Thanks for suggesting {{.PlaceName}}. It is now on its way into the {{.AppName}} catalog.
{{if .Notes}}
Note from the team: {{.Notes}}
{{end}}
(c) {{.Year}} {{.AppName}}
`

func (s *smtpMailService) SendSuggestionApproved(to, placeName, notes string) error {
	data := suggestionEmail{
		PlaceName: placeName,
		Notes:     notes,
		AppName:   s.cfg.FromName,
		Year:      time.Now().Year(),
	}
	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, "Your suggestion was approved", hb.String(), tb.String())
}

func (s *smtpMailService) buildMessage(to, subject, htmlBody, textBody string) []byte {
	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.formatFromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)
	return msg.Bytes()
}

// send uses implicit TLS on port 465 and STARTTLS when offered otherwise.
func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprint(s.cfg.Port))
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: s.dialWait}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.Port == 465 {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if s.cfg.Port != 465 {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err = c.StartTLS(tlsCfg); err != nil {
				return err
			}
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(s.buildMessage(to, subject, htmlBody, textBody)); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.BEncoding.Encode("utf-8", name), s.cfg.From)
}
