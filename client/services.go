package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/helpdesk-io/helpdesk-go/errors"
	"github.com/helpdesk-io/helpdesk-go/markup"
	"github.com/helpdesk-io/helpdesk-go/types"
)

// NotesService handles note-related API operations
type NotesService struct {
	client *Client
}

// Add appends a note to a ticket. Visibility must be Internal or Public and
// the author is identified by email. The backend echoes the stored note,
// which is returned with its text normalized to plain text.
func (s *NotesService) Add(ctx context.Context, request *types.AddNoteRequest) (*types.Note, error) {
	if request == nil {
		return nil, errors.NewValidationError("request", "request is required")
	}
	if request.TicketID == "" {
		return nil, errors.NewValidationError("ticket_id", "ticket id must not be empty")
	}
	if strings.TrimSpace(request.Text) == "" {
		return nil, errors.NewValidationError("text", "text must not be empty")
	}
	if !validEmail(request.Email) {
		return nil, errors.NewValidationError("email", "not a valid email address")
	}
	if !request.Visibility.Valid() {
		return nil, errors.NewValidationError("type", `visibility must be "Internal" or "Public"`)
	}

	payload := *request
	if markup.IsHTML(payload.Text) {
		payload.Text = markup.Sanitize(payload.Text)
	}

	var result types.Note
	if err := s.client.do(ctx, actionAddNote, http.MethodPost, nil, payload, &result); err != nil {
		return nil, err
	}
	result.Text = markup.Normalize(result.Text)
	return &result, nil
}

// UsersService handles user-related API operations
type UsersService struct {
	client *Client
}

// GetByEmail looks up a backend user by email address. An unknown address
// surfaces as the backend's not-found rejection.
func (s *UsersService) GetByEmail(ctx context.Context, email string) (*types.UserInfo, error) {
	if !validEmail(email) {
		return nil, errors.NewValidationError("email", "not a valid email address")
	}

	params := map[string]string{"Email": email}
	var result types.UserInfo
	if err := s.client.do(ctx, actionSearchUsers, http.MethodGet, params, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
