package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pkordes/hunt-packages/backend/internal/domain"
	"github.com/pkordes/hunt-packages/backend/internal/email"
)

// Inquiry form defaults applied when the visitor leaves a field blank.
const (
	defaultHuntDuration = "5 days"
	defaultNumHunters   = "1"
)

// Mailer delivers an email. *email.MailgunMailer satisfies it.
type Mailer interface {
	Enabled() bool
	Send(ctx context.Context, msg email.Message) error
}

// PackageSummaries returns the summary of a stored package session.
// *PackageService satisfies it.
type PackageSummaries interface {
	Summary(ctx context.Context, id uuid.UUID) (domain.SummaryHandoff, error)
}

// InquiryService turns contact form submissions into a message for the
// outfitter.
type InquiryService struct {
	packages     PackageSummaries
	mailer       Mailer
	contactEmail string
	log          *slog.Logger
	validate     *validator.Validate
}

// NewInquiryService constructs an InquiryService that addresses inquiries to
// contactEmail.
func NewInquiryService(packages PackageSummaries, mailer Mailer, contactEmail string, log *slog.Logger) *InquiryService {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &InquiryService{
		packages:     packages,
		mailer:       mailer,
		contactEmail: contactEmail,
		log:          log,
		validate:     v,
	}
}

// Submit validates inq and builds its handoff. The mailto link is always
// returned. When a mailer is configured the message is also sent; a failed
// send is logged and reported through Sent, not as an error.
func (s *InquiryService) Submit(ctx context.Context, inq domain.Inquiry) (domain.InquiryHandoff, error) {
	inq = normalizeInquiry(inq)
	if err := s.validate.Struct(inq); err != nil {
		return domain.InquiryHandoff{}, fmt.Errorf("service.InquiryService.Submit: %w: %s", domain.ErrValidation, describeValidation(err))
	}

	body := inquiryBody(inq)
	if inq.PackageID != nil {
		h, err := s.packages.Summary(ctx, *inq.PackageID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InquiryHandoff{}, fmt.Errorf("service.InquiryService.Submit: %w: package %s does not exist or has expired", domain.ErrValidation, *inq.PackageID)
		}
		if err != nil {
			return domain.InquiryHandoff{}, fmt.Errorf("service.InquiryService.Submit: %w", err)
		}
		body += "\n\n" + h.Text
	}

	subject := "New Hunting Inquiry - " + inq.HuntType
	handoff := domain.InquiryHandoff{
		Reference: uuid.New(),
		Subject:   subject,
		Body:      body,
		MailtoURL: mailtoURL(s.contactEmail, subject, body),
	}

	if s.mailer != nil && s.mailer.Enabled() {
		err := s.mailer.Send(ctx, email.Message{
			To:      s.contactEmail,
			ReplyTo: inq.Email,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			s.log.ErrorContext(ctx, "inquiry mail failed", "reference", handoff.Reference, "error", err)
		} else {
			handoff.Sent = true
			s.log.InfoContext(ctx, "inquiry mailed", "reference", handoff.Reference)
		}
	}
	return handoff, nil
}

func normalizeInquiry(inq domain.Inquiry) domain.Inquiry {
	inq.Name = strings.TrimSpace(inq.Name)
	inq.Email = strings.TrimSpace(inq.Email)
	inq.HuntType = strings.TrimSpace(inq.HuntType)
	if strings.TrimSpace(inq.HuntDuration) == "" {
		inq.HuntDuration = defaultHuntDuration
	}
	if strings.TrimSpace(inq.NumHunters) == "" {
		inq.NumHunters = defaultNumHunters
	}
	return inq
}

func inquiryBody(inq domain.Inquiry) string {
	var b strings.Builder
	b.WriteString("New Hunting Inquiry from Outback Hunting Website\n\n")
	fmt.Fprintf(&b, "Name: %s\n", inq.Name)
	fmt.Fprintf(&b, "Email: %s\n", inq.Email)
	fmt.Fprintf(&b, "Phone: %s\n", inq.Phone)
	fmt.Fprintf(&b, "Hunt Type: %s\n", inq.HuntType)
	fmt.Fprintf(&b, "Preferred Dates: %s\n", inq.PreferredDates)
	fmt.Fprintf(&b, "Hunt Duration: %s\n", inq.HuntDuration)
	fmt.Fprintf(&b, "Number of Hunters: %s\n\n", inq.NumHunters)
	b.WriteString("Additional Information:\n")
	b.WriteString(inq.Message)
	b.WriteString("\n\n---\nThis inquiry was submitted through the Outback Hunting New Zealand website.")
	return b.String()
}

// mailtoURL builds an RFC 6068 link. Spaces are encoded as %20 since mail
// clients do not treat + as a space.
func mailtoURL(to, subject, body string) string {
	esc := func(s string) string { return strings.ReplaceAll(url.QueryEscape(s), "+", "%20") }
	return "mailto:" + to + "?subject=" + esc(subject) + "&body=" + esc(body)
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
