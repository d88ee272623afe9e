// Package notify sends submission and support emails through Amazon SES.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/mwhitfield/lendintake/pkg/models"
)

// ErrSendFailed indicates the email could not be delivered to SES.
var ErrSendFailed = errors.New("email send failed")

// sesAPI is the subset of the SES client the notifier uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SupportRequest is an end-user message destined for the support mailbox.
type SupportRequest struct {
	FromEmail string
	FromName  string
	Subject   string
	Body      string
}

// Notifier sends intake emails via SES.
type Notifier struct {
	client         sesAPI
	fromAddress    string
	supportAddress string
	now            func() time.Time
}

// NewNotifier builds a Notifier using the default AWS credential chain.
func NewNotifier(ctx context.Context, region, fromAddress, supportAddress string) (*Notifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return &Notifier{
		client:         ses.NewFromConfig(cfg),
		fromAddress:    fromAddress,
		supportAddress: supportAddress,
		now:            time.Now,
	}, nil
}

// SendConfirmation emails the submitter a summary of their request.
func (n *Notifier) SendConfirmation(ctx context.Context, to string, sub *models.Submission) error {
	subject := fmt.Sprintf("Request received: %s", sub.Title)
	return n.send(ctx, n.fromAddress, to, subject, n.buildConfirmationBody(sub))
}

// SendSupportEmail forwards a support request to the support mailbox. The
// submitter's address goes in Reply-To so support can answer them directly.
func (n *Notifier) SendSupportEmail(ctx context.Context, req SupportRequest) error {
	input := &ses.SendEmailInput{
		Source: aws.String(n.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{n.supportAddress},
		},
		ReplyToAddresses: []string{req.FromEmail},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(req.Subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(n.buildSupportBody(req))},
			},
		},
	}
	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

func (n *Notifier) send(ctx context.Context, from, to, subject, htmlBody string) error {
	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
	}
	if _, err := n.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	return nil
}

func (n *Notifier) buildConfirmationBody(sub *models.Submission) string {
	var parts []string

	parts = append(parts,
		`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`,
		`<h2>Your request has been submitted</h2>`,
		fmt.Sprintf("<p><strong>Title:</strong> %s</p>", escapeHTML(sub.Title)),
		fmt.Sprintf("<p><strong>Description:</strong><br>%s</p>", escapeHTML(sub.Description)),
	)
	if sub.WorkItemID != nil {
		parts = append(parts, fmt.Sprintf("<p><strong>Work Item:</strong> #%d</p>", *sub.WorkItemID))
	}
	parts = append(parts,
		fmt.Sprintf(`<p style="font-size: 12px; color: #718096;"><em>Submitted: %s</em></p>`, n.now().Format(time.RFC1123)),
		`</div>`,
	)

	return strings.Join(parts, "\n")
}

func (n *Notifier) buildSupportBody(req SupportRequest) string {
	fromName := req.FromName
	if fromName == "" {
		fromName = req.FromEmail
	}

	parts := []string{
		`<div style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">`,
		`<div style="background-color: #2b3e50; padding: 20px; margin-bottom: 20px;">`,
		`<h2 style="color: #9bc53d; margin: 0;">Application Support Request</h2>`,
		`<p style="color: #95a5a6; margin: 5px 0 0 0; font-size: 14px;">Submitted via Intake Assistant</p>`,
		`</div>`,
		`<div style="padding: 20px;">`,
		fmt.Sprintf("<p><strong>From:</strong> %s (%s)</p>", escapeHTML(fromName), escapeHTML(req.FromEmail)),
		`<h3 style="color: #2b3e50;">Request Details:</h3>`,
		`<div style="background-color: #f5f5f5; padding: 15px; border-left: 4px solid #9bc53d; margin: 10px 0;">`,
		fmt.Sprintf(`<p style="white-space: pre-wrap; margin: 0;">%s</p>`, escapeHTML(req.Body)),
		`</div>`,
		`</div>`,
		`<div style="padding: 20px; background-color: #f9f9f9; margin-top: 20px; border-top: 1px solid #ddd;">`,
		fmt.Sprintf(`<p style="font-size: 12px; color: #718096; margin: 0;"><em>Submitted: %s</em></p>`, n.now().Format(time.RFC1123)),
		`</div>`,
		`</div>`,
	}

	return strings.Join(parts, "\n")
}

// escapeHTML escapes markup characters and converts newlines to line breaks.
func escapeHTML(text string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#039;",
		"\n", "<br>",
	)
	return r.Replace(text)
}
