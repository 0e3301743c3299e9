// Package mailer adalah kolaborator email eksternal: core cuma butuh
// (recipient, jenis template, token, nama). Isi/markup email bukan urusan core.
package mailer

import (
	"fmt"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"
)

type TemplateKind string

const (
	TemplateVerifyEmail   TemplateKind = "verify_email"
	TemplatePasswordReset TemplateKind = "password_reset"
)

type Mailer interface {
	Send(recipient string, kind TemplateKind, token, name string) error
}

/* ==========================
   SMTP (gomail)
========================== */

type SMTPMailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewSMTPMailer(host, port, username, password, baseURL string) *SMTPMailer {
	p, err := strconv.Atoi(port)
	if err != nil {
		p = 587
	}
	return &SMTPMailer{
		dialer:  gomail.NewDialer(host, p, username, password),
		from:    username,
		baseURL: baseURL,
	}
}

func (m *SMTPMailer) Send(recipient string, kind TemplateKind, token, name string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)

	switch kind {
	case TemplateVerifyEmail:
		msg.SetHeader("Subject", "Campus Sphere - Verify Your Email")
		msg.SetBody("text/plain", fmt.Sprintf(
			"Hi %s,\n\nVerify your email (valid 15 minutes):\n%s/verify/%s\n", name, m.baseURL, token))
	case TemplatePasswordReset:
		msg.SetHeader("Subject", "Campus Sphere - Password Reset")
		msg.SetBody("text/plain", fmt.Sprintf(
			"Hi %s,\n\nReset your password (valid 15 minutes):\n%s/reset-password/%s\n", name, m.baseURL, token))
	default:
		return fmt.Errorf("mailer: unknown template %q", kind)
	}

	return m.dialer.DialAndSend(msg)
}

/* ==========================
   Log-only (dev/test)
========================== */

// LogMailer dipakai kalau MAIL_USERNAME kosong: token tetap kelihatan di log
// supaya flow verifikasi bisa dites tanpa SMTP.
type LogMailer struct{}

func (LogMailer) Send(recipient string, kind TemplateKind, token, name string) error {
	log.Printf("[MAIL] to=%s kind=%s token=%s name=%s", recipient, kind, token, name)
	return nil
}
