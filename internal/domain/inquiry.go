package domain

import "github.com/google/uuid"

// Inquiry is a contact form submission. Only Name, Email and HuntType are
// required; the rest is passed through to the message as typed.
type Inquiry struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone"`
	HuntType       string `json:"huntType" validate:"required"`
	PreferredDates string `json:"preferredDates"`
	HuntDuration   string `json:"huntDuration"`
	NumHunters     string `json:"numHunters"`
	Message        string `json:"message"`

	// PackageID optionally links a package session whose summary is appended
	// to the message body.
	PackageID *uuid.UUID `json:"packageId,omitempty"`
}

// InquiryHandoff is what the caller needs to deliver an inquiry: a mailto
// link for the visitor's own mail client, and whether the service already
// delivered it by mail.
type InquiryHandoff struct {
	Reference uuid.UUID `json:"reference"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	MailtoURL string    `json:"mailto"`
	Sent      bool      `json:"sent"`
}

// Package is a stored package session.
type Package struct {
	ID        uuid.UUID        `json:"id"`
	Selection PackageSelection `json:"selection"`
}
