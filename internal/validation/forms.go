package validation

import (
	"strings"
	"time"
)

// AppointmentInput is the booking form.
type AppointmentInput struct {
	ProfessionalID int64     `json:"professional_id" validate:"gt=0"`
	ServiceID      int64     `json:"service_id" validate:"gt=0"`
	ScheduledAt    time.Time `json:"scheduled_at" validate:"required"`
	Notes          string    `json:"notes" validate:"max=500"`
}

// Appointment checks required fields and that ScheduledAt is strictly after now.
func (v *Validator) Appointment(in AppointmentInput, now time.Time) error {
	errs := v.Struct(in)
	if !in.ScheduledAt.IsZero() && !in.ScheduledAt.After(now) {
		errs.Add("scheduled_at", "La fecha y hora debe ser futura")
	}
	return errs.Err()
}

// RegistrationInput is the sign-up form.
type RegistrationInput struct {
	Name            string `json:"name" validate:"required,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"omitempty,phone"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" validate:"eqfield=Password"`
}

// Registration validates the sign-up form.
func (v *Validator) Registration(in RegistrationInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	return v.Struct(in).Err()
}

// LoginInput is the sign-in form.
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login validates the sign-in form.
func (v *Validator) Login(in LoginInput) error {
	in.Email = strings.TrimSpace(in.Email)
	return v.Struct(in).Err()
}

// ServiceInput is the admin service form. A nil ProfessionalID creates a
// global service.
type ServiceInput struct {
	Name           string  `json:"name" validate:"required,max=120"`
	Description    string  `json:"description" validate:"max=1000"`
	Duration       string  `json:"duration" validate:"required"`
	Price          float64 `json:"price" validate:"gte=0"`
	ProfessionalID *int64  `json:"professional_id" validate:"omitempty,gt=0"`
}

// Service validates the service form.
func (v *Validator) Service(in ServiceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Duration = strings.TrimSpace(in.Duration)
	return v.Struct(in).Err()
}

// ProfessionalInput is the admin professional form.
type ProfessionalInput struct {
	UserID       int64  `json:"user_id" validate:"gt=0"`
	Specialty    string `json:"specialty" validate:"required,max=255"`
	Availability string `json:"availability" validate:"max=500"`
}

// Professional validates the professional form.
func (v *Validator) Professional(in ProfessionalInput) error {
	in.Specialty = strings.TrimSpace(in.Specialty)
	return v.Struct(in).Err()
}

// UserInput is the admin user form. Password is optional on update.
type UserInput struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Phone    string   `json:"phone" validate:"omitempty,phone"`
	Password string   `json:"password" validate:"omitempty,min=6"`
	Roles    []string `json:"roles" validate:"dive,oneof=USER PROFESSIONAL ADMIN"`
}

// User validates the admin user form. requirePassword is set on create.
func (v *Validator) User(in UserInput, requirePassword bool) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	errs := v.Struct(in)
	if requirePassword && in.Password == "" {
		errs.Add("password", "es requerido")
	}
	return errs.Err()
}
