package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"strings"

	"github.com/tranphattrien/easycode-server/logger"
	"go.uber.org/zap"
)

// MailService sends transactional email over SMTP. When the SMTP
// environment is not configured the service stays disabled and every
// send is a logged no-op, so local setups work without a mail account.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		logger.Warn("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

// Send delivers one HTML email. Failures are reported, never retried.
func (s *MailService) Send(to, subject, htmlBody string) error {
	if !s.Enabled {
		logger.Info("MailService disabled, dropping email", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: EasyCode <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", to, s.From, subject, mime, htmlBody))

	return smtp.SendMail(addr, auth, s.From, []string{to}, msg)
}

// SendAsync fires the email off without blocking the request path.
func (s *MailService) SendAsync(to, subject, htmlBody string) {
	go func() {
		if err := s.Send(to, subject, htmlBody); err != nil {
			logger.Error("Failed sending email", zap.String("to", to), zap.Error(err))
		}
	}()
}

func (s *MailService) SendActivationEmail(email, fullname, activationLink string) {
	body, err := renderTemplate(activationTemplate, map[string]string{
		"Fullname": fullname,
		"Link":     activationLink,
	})
	if err != nil {
		logger.Error("Failed rendering activation email", zap.Error(err))
		return
	}
	s.SendAsync(email, "Activate Your Account", body)
}

func (s *MailService) SendCommentNotification(email, actorName, blogTitle, commentHTML string) {
	body, err := renderTemplate(commentTemplate, map[string]interface{}{
		"ActorName": actorName,
		"BlogTitle": blogTitle,
		"Comment":   template.HTML(commentHTML),
	})
	if err != nil {
		logger.Error("Failed rendering comment notification email", zap.Error(err))
		return
	}
	subject := actorName + " commented on \"" + blogTitle + "\""
	s.SendAsync(email, subject, body)
}

func renderTemplate(source string, data interface{}) (string, error) {
	t, err := template.New("email").Parse(strings.TrimSpace(source))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const activationTemplate = `
<p>Hello {{.Fullname}} 👋, please click the following link to activate your account ⬇️</p>
<a href="{{.Link}}">Verify Your Email</a>
`

const commentTemplate = `
<p>{{.ActorName}} commented on your blog <b>{{.BlogTitle}}</b>:</p>
<blockquote>{{.Comment}}</blockquote>
`
