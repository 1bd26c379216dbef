package services

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/repositories"
	"github.com/eventnow/eventnow_backend/utils"
)

// RequestService covers the public surface: submitting a new request and
// looking up existing requests by submitter email. Neither operation
// requires authentication.
type RequestService struct {
	repo   repositories.RequestRepository
	mailer *utils.Mailer
}

// NewRequestService creates the service. mailer may be nil, which
// disables admin notifications.
func NewRequestService(repo repositories.RequestRepository, mailer *utils.Mailer) *RequestService {
	return &RequestService{repo: repo, mailer: mailer}
}

// Submit validates the input and persists exactly one new request with
// status "pending" and a server-assigned creation time. Validation
// collects every failed field before returning; nothing is written on
// failure. phone is never validated.
func (s *RequestService) Submit(ctx context.Context, input models.SubmitRequestInput) (*models.Request, error) {
	if ve := validateSubmission(input); len(ve) > 0 {
		return nil, ve
	}

	now := time.Now().UTC()
	req := &models.Request{
		RequestID: utils.GenerateRequestID(),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		Status:    models.StatusPending,
		CreatedAt: &now,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(r models.Request) {
			if err := s.mailer.SendNewRequestNotification(r); err != nil {
				log.Printf("Failed to send new request notification: %v", err)
			}
		}(*req)
	}

	return req, nil
}

// LookupByEmail returns every request whose email field equals the given
// address exactly. The match is case-sensitive and unnormalized; the
// store holds emails as typed on the form. Invalid input returns a
// validation error without querying.
func (s *RequestService) LookupByEmail(ctx context.Context, email string) ([]models.Request, error) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return nil, models.ValidationErrors{"email": "Please enter an email address"}
	}
	if !utils.IsValidEmail(trimmed) {
		return nil, models.ValidationErrors{"email": "Please enter a valid email address"}
	}

	requests, err := s.repo.FindByEmail(ctx, trimmed)
	if err != nil {
		return nil, err
	}
	if requests == nil {
		requests = []models.Request{}
	}
	return requests, nil
}

// validateSubmission checks required fields in form order and collects
// every failure. Whitespace-only values count as blank.
func validateSubmission(input models.SubmitRequestInput) models.ValidationErrors {
	errs := models.ValidationErrors{}

	if utils.IsBlank(input.FirstName) {
		errs["firstName"] = "First name is required"
	}
	if utils.IsBlank(input.LastName) {
		errs["lastName"] = "Last name is required"
	}
	if utils.IsBlank(input.Email) {
		errs["email"] = "Email is required"
	} else if !utils.IsValidEmail(input.Email) {
		errs["email"] = "Invalid email address"
	}
	if utils.IsBlank(input.Subject) {
		errs["subject"] = "Subject is required"
	}
	if utils.IsBlank(input.Message) {
		errs["message"] = "Message is required"
	}

	return errs
}
