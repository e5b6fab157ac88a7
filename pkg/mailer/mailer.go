package mailer

import (
	"bytes"
	"html/template"

	"github.com/connectsphere/backend/configs"
	"github.com/connectsphere/backend/pkg/matching"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const (
	matchSubject   = "You have a new networking match!"
	noMatchSubject = "No match this month"
)

var matchTemplate = template.Must(template.New("match").Parse(`<html>
<body>
<p>Hi {{.Recipient}},</p>
<p>Great news! We've matched you with <b>{{.Partner}}</b> for this month's networking round.</p>
<ul>
<li>Job title: {{.JobTitle}}</li>
<li>Company: {{.Company}}</li>
<li>Industry: {{.Industry}}</li>
</ul>
<p>Compatibility score: <b>{{.Score}}/100</b></p>
<p>A 30 minute video meeting has been scheduled for you. You can reschedule it any time from your dashboard.</p>
<p>Happy networking!</p>
</body>
</html>`))

var noMatchTemplate = template.Must(template.New("nomatch").Parse(`<html>
<body>
<p>Hi {{.Recipient}},</p>
<p>We couldn't find a match for you this month. This usually happens when there is an odd number of participants.</p>
<p>You are still opted in and will be included in next month's round automatically.</p>
</body>
</html>`))

type matchEmailData struct {
	Recipient string
	Partner   string
	JobTitle  string
	Company   string
	Industry  string
	Score     int
}

// Mailer 基于SMTP的匹配通知实现。
// 发送失败只记录日志，不影响匹配批次（至多一次、尽力送达）。
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// New 创建SMTP通知器
func New(cfg configs.SMTPConfig, logger *zap.Logger) *Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// MatchCreated 向双方发送匹配成功邮件
func (m *Mailer) MatchCreated(a, b matching.Candidate, score int) {
	m.send(a.Email, matchSubject, renderMatchEmail(a, b, score))
	m.send(b.Email, matchSubject, renderMatchEmail(b, a, score))
}

// NoMatch 发送本月未匹配邮件
func (m *Mailer) NoMatch(c matching.Candidate) {
	m.send(c.Email, noMatchSubject, renderNoMatchEmail(c))
}

func (m *Mailer) send(to, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Warn("failed to send notification email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
	}
}

// renderMatchEmail 渲染匹配成功邮件正文
func renderMatchEmail(recipient, partner matching.Candidate, score int) string {
	var buf bytes.Buffer
	data := matchEmailData{
		Recipient: recipient.Username,
		Partner:   partner.Username,
		JobTitle:  partner.JobTitle,
		Company:   partner.Company,
		Industry:  partner.Industry,
		Score:     score,
	}
	if err := matchTemplate.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

// renderNoMatchEmail 渲染未匹配邮件正文
func renderNoMatchEmail(recipient matching.Candidate) string {
	var buf bytes.Buffer
	data := struct{ Recipient string }{Recipient: recipient.Username}
	if err := noMatchTemplate.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

// LogNotifier 未配置SMTP时的降级实现，只写日志
type LogNotifier struct {
	Logger *zap.Logger
}

// MatchCreated 记录匹配成功
func (n *LogNotifier) MatchCreated(a, b matching.Candidate, score int) {
	n.Logger.Info("match notification (smtp disabled)",
		zap.String("user1", a.Email),
		zap.String("user2", b.Email),
		zap.Int("score", score))
}

// NoMatch 记录未匹配
func (n *LogNotifier) NoMatch(c matching.Candidate) {
	n.Logger.Info("no-match notification (smtp disabled)",
		zap.String("user", c.Email))
}
