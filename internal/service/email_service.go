package service

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/models"
)

// EmailService 邮件通知
type EmailService struct {
	cfg config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 邮件通知是否启用
func (s *EmailService) Enabled() bool {
	return s.cfg.Enabled && s.cfg.Host != "" && s.cfg.From != ""
}

// SendOrderReceived 发送下单成功通知
func (s *EmailService) SendOrderReceived(to string, order *models.Order) error {
	subject := fmt.Sprintf("[%s] Order %s received", s.storeName(), order.OrderNo)
	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your order!\r\n\r\n")
	fmt.Fprintf(&b, "Order number: %s\r\n", order.OrderNo)
	fmt.Fprintf(&b, "Total: %s\r\n\r\n", order.TotalPrice.String())
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s", item.ProductName)
		if item.Color != "" {
			fmt.Fprintf(&b, " (%s)", item.Color)
		}
		fmt.Fprintf(&b, " x%d  %s\r\n", item.Quantity, item.LineTotal.String())
	}
	fmt.Fprintf(&b, "\r\nShipping to: %s\r\n", order.ShippingAddress)
	if s.cfg.SupportLink != "" {
		fmt.Fprintf(&b, "\r\nQuestions? %s\r\n", s.cfg.SupportLink)
	}
	return s.send(to, subject, b.String())
}

// SendOrderStatus 发送订单状态变更通知
func (s *EmailService) SendOrderStatus(to string, order *models.Order) error {
	subject := fmt.Sprintf("[%s] Order %s is now %s", s.storeName(), order.OrderNo, order.Status)
	body := fmt.Sprintf(
		"Your order %s has been updated.\r\n\r\nStatus: %s\r\nPayment: %s\r\nTotal: %s\r\n",
		order.OrderNo, order.Status, order.PaymentStatus, order.TotalPrice.String(),
	)
	return s.send(to, subject, body)
}

// SendOrderCanceled 发送订单取消通知
func (s *EmailService) SendOrderCanceled(to string, order *models.Order) error {
	subject := fmt.Sprintf("[%s] Order %s cancelled", s.storeName(), order.OrderNo)
	body := fmt.Sprintf(
		"Your order %s has been cancelled.\r\n\r\nTotal: %s\r\n\r\nIf you already paid, a refund will be arranged.\r\n",
		order.OrderNo, order.TotalPrice.String(),
	)
	return s.send(to, subject, body)
}

// SendAdminAlert 发送管理员提醒
func (s *EmailService) SendAdminAlert(subject, body string) error {
	if s.cfg.AdminEmail == "" {
		return ErrEmailDisabled
	}
	return s.send(s.cfg.AdminEmail, fmt.Sprintf("[%s] %s", s.storeName(), subject), body)
}

func (s *EmailService) storeName() string {
	if s.cfg.StoreName != "" {
		return s.cfg.StoreName
	}
	return "Vitrine"
}

// send 通过 SMTP 发送纯文本邮件，支持 none/starttls/ssl
func (s *EmailService) send(to, subject, body string) error {
	if !s.Enabled() {
		return ErrEmailDisabled
	}

	from := s.cfg.From
	fromHeader := from
	if s.cfg.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", s.cfg.FromName, from)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", fromHeader)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var err error
	switch strings.ToLower(s.cfg.Encryption) {
	case "ssl":
		err = s.sendSSL(addr, from, to, msg.String())
	default:
		// starttls 由 smtp.SendMail 自动协商
		var auth smtp.Auth
		if s.cfg.Username != "" {
			auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
		}
		err = smtp.SendMail(addr, auth, from, []string{to}, []byte(msg.String()))
	}
	if err != nil {
		logger.Errorw("email_send_failed", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("%w: %v", ErrEmailSendFailed, err)
	}
	logger.Infow("email_sent", "to", to, "subject", subject)
	return nil
}

// sendSSL 通过隐式 TLS（通常为 465 端口）发送
func (s *EmailService) sendSSL(addr, from, to, msg string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Close()

	if s.cfg.Username != "" {
		auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, host)
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	writer, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}
	return client.Quit()
}
