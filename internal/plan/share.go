// internal/plan/share.go
package plan

import (
	"bytes"
	"context"
	htmltemplate "html/template"
	"text/template"
	"time"

	apperrors "venue-intelligence/internal/common/errors"
	"venue-intelligence/internal/common/logger"
	"venue-intelligence/internal/common/metrics"
	"venue-intelligence/internal/models"
	"venue-intelligence/internal/venue/format"
)

const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// EmailSender is satisfied by aws.SESClient.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, text, html string) (string, error)
}

// SMSSender is satisfied by aws.SNSClient.
type SMSSender interface {
	SendSMS(ctx context.Context, phone, message string) (string, error)
}

var funcs = map[string]interface{}{"inr": format.INR}

var textBody = template.Must(template.New("text").Funcs(funcs).Parse(
	`Your {{.Requirement.EventType}} plan for {{.Requirement.AttendeeCount}} guests is ready.

Venue: {{.Venue.Name}}, {{.Venue.City}}
Estimated total: {{inr .TotalCost}} ({{.BudgetUtilizationPct}}% of budget)

Schedule:
{{range .Schedule}}  {{.Time}}  {{.Activity}}
{{end}}
View and share the plan: {{.ShareURL}}
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Funcs(funcs).Parse(
	`<h2>Your {{.Requirement.EventType}} plan is ready</h2>
<p><strong>{{.Venue.Name}}</strong>, {{.Venue.City}} &middot; {{.Requirement.AttendeeCount}} guests</p>
<p>Estimated total: {{inr .TotalCost}} ({{.BudgetUtilizationPct}}% of budget)</p>
<table>{{range .Schedule}}<tr><td>{{.Time}}</td><td>{{.Activity}}</td></tr>{{end}}</table>
<p><a href="{{.ShareURL}}">Open the plan</a></p>
`))

func render(plan models.PlanSummary) (string, string, error) {
	var text, html bytes.Buffer
	if err := textBody.Execute(&text, plan); err != nil {
		return "", "", err
	}
	if err := htmlBody.Execute(&html, plan); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}

func subject(plan models.PlanSummary) string {
	return "Your event plan: " + plan.Venue.Name + ", " + plan.Venue.City
}

func smsText(plan models.PlanSummary) string {
	return plan.Venue.Name + " for " + string(plan.Requirement.EventType) +
		", est. " + format.INR(plan.TotalCost) + ". Plan: " + plan.ShareURL
}

// Sharer delivers plan links. A nil sender disables its channel.
type Sharer struct {
	email  EmailSender
	sms    SMSSender
	now    func() time.Time
	logger logger.Logger
}

func NewSharer(email EmailSender, sms SMSSender, log logger.Logger) *Sharer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Sharer{
		email:  email,
		sms:    sms,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"component": "plan-share"}),
	}
}

// Share sends the plan to every recipient. Delivery failures are reported
// per receipt, never as an error.
func (s *Sharer) Share(ctx context.Context, plan models.PlanSummary, recipients []models.ShareRecipient) []models.ShareReceipt {
	receipts := make([]models.ShareReceipt, 0, len(recipients))
	for _, r := range recipients {
		receipt := s.deliver(ctx, plan, r)
		metrics.PlanShares.WithLabelValues(string(r.Channel), receipt.Status).Inc()
		receipts = append(receipts, receipt)
	}
	return receipts
}

func (s *Sharer) deliver(ctx context.Context, plan models.PlanSummary, r models.ShareRecipient) models.ShareReceipt {
	receipt := models.ShareReceipt{PlanID: plan.ID, Channel: r.Channel, Address: r.Address}

	var (
		id  string
		err error
	)
	switch r.Channel {
	case models.ShareChannelEmail:
		if s.email == nil {
			receipt.Status = StatusDisabled
			return receipt
		}
		var text, html string
		if text, html, err = render(plan); err == nil {
			id, err = s.email.SendEmail(ctx, r.Address, subject(plan), text, html)
		}
	case models.ShareChannelSMS:
		if s.sms == nil {
			receipt.Status = StatusDisabled
			return receipt
		}
		id, err = s.sms.SendSMS(ctx, r.Address, smsText(plan))
	default:
		receipt.Status = StatusFailed
		receipt.Error = "unknown channel " + string(r.Channel)
		return receipt
	}

	if err != nil {
		shareErr := apperrors.NewPlanShareFailedError(string(r.Channel), err)
		s.logger.Warn("plan share failed", map[string]interface{}{
			"planId":  plan.ID,
			"channel": r.Channel,
			"code":    string(shareErr.Code),
			"error":   err.Error(),
		})
		receipt.Status = StatusFailed
		receipt.Error = shareErr.Message + ": " + shareErr.Details
		return receipt
	}

	receipt.Status = StatusSent
	receipt.MessageID = id
	receipt.SentAt = s.now().UTC().Format(time.RFC3339)
	return receipt
}
