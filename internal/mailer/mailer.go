package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/geekpie/portfolio-backend/internal/logger"
)

// Mailer отправляет письма контактной формы и подтверждения подписки.
type Mailer struct {
	dialer       *gomail.Dialer
	from         string
	contactEmail string
	siteName     string
	enabled      bool
}

// New создаёт почтовый сервис. При пустом хосте SMTP отправка отключена,
// письма только логируются.
func New(host string, port int, user, password, contactEmail, siteName string) *Mailer {
	m := &Mailer{
		from:         user,
		contactEmail: contactEmail,
		siteName:     siteName,
		enabled:      host != "",
	}
	if m.enabled {
		m.dialer = gomail.NewDialer(host, port, user, password)
	}
	return m
}

// SendContactMessage пересылает сообщение контактной формы администратору.
// Reply-To указывает на отправителя, чтобы ответить можно было напрямую.
func (m *Mailer) SendContactMessage(name, email, subject, message string) error {
	if subject == "" {
		subject = "Новое сообщение с сайта"
	}

	if !m.enabled {
		logger.Log.WithFields(map[string]interface{}{
			"name":  name,
			"email": email,
		}).Info("mailer: SMTP отключён, сообщение контактной формы не отправлено")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.contactEmail)
	msg.SetHeader("Reply-To", email)
	msg.SetHeader("Subject", fmt.Sprintf("[%s] %s", m.siteName, subject))
	msg.SetBody("text/plain", fmt.Sprintf("Имя: %s\nEmail: %s\n\n%s", name, email, message))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: отправка сообщения контактной формы: %w", err)
	}
	return nil
}

// SendNewsletterConfirmation отправляет подписчику письмо с подтверждением.
func (m *Mailer) SendNewsletterConfirmation(email string) error {
	if !m.enabled {
		logger.Log.WithField("email", email).Info("mailer: SMTP отключён, подтверждение подписки не отправлено")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", fmt.Sprintf("Подписка на новости %s", m.siteName))
	msg.SetBody("text/plain", fmt.Sprintf("Вы подписались на новости %s. Спасибо!", m.siteName))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mailer: отправка подтверждения подписки: %w", err)
	}
	return nil
}
