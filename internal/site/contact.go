package site

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	ContactSuccessMessage = "Thank you for your message! I'll get back to you soon."
	ContactErrorMessage   = "Please fill in all fields."
)

// ContactForm is the message form. Every field must be present; nothing else
// is checked and the message goes nowhere.
type ContactForm struct {
	Name    string `form:"name" validate:"required"`
	Email   string `form:"email" validate:"required"`
	Subject string `form:"subject" validate:"required"`
	Message string `form:"message" validate:"required"`
}

// ContactResult is what the form fragment displays.
type ContactResult struct {
	OK      bool
	Message string
	Missing []string
	// Form echoes the submitted values so a failed attempt keeps them.
	Form ContactForm
}

var contactValidator = validator.New(validator.WithRequiredStructEnabled())

var fieldLabels = map[string]string{
	"Name":    "name",
	"Email":   "email",
	"Subject": "subject",
	"Message": "message",
}

// ValidateContact checks field presence after trimming whitespace.
func ValidateContact(f ContactForm) ContactResult {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Subject = strings.TrimSpace(f.Subject)
	f.Message = strings.TrimSpace(f.Message)

	err := contactValidator.Struct(f)
	if err == nil {
		return ContactResult{OK: true, Message: ContactSuccessMessage}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ContactResult{Message: ContactErrorMessage, Form: f}
	}
	missing := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
		return fieldLabels[fe.StructField()]
	})
	return ContactResult{Message: ContactErrorMessage, Missing: missing, Form: f}
}

// IsMissing reports whether field was left empty; used by the template.
func (r ContactResult) IsMissing(field string) bool {
	return lo.Contains(r.Missing, field)
}
