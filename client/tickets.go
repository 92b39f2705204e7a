package client

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/helpdesk-io/helpdesk-go/errors"
	"github.com/helpdesk-io/helpdesk-go/markup"
	"github.com/helpdesk-io/helpdesk-go/types"
)

// TicketsService handles ticket-related API operations
type TicketsService struct {
	client *Client
}

// Create opens a new ticket. Subject and description must be non-empty and
// the requester is identified by email or user name; email wins when both
// are set. The created ticket comes back with its description normalized to
// plain text.
func (s *TicketsService) Create(ctx context.Context, request *types.CreateTicketRequest) (*types.Ticket, error) {
	if request == nil {
		return nil, errors.NewValidationError("request", "request is required")
	}
	if strings.TrimSpace(request.Subject) == "" {
		return nil, errors.NewValidationError("subject", "subject must not be empty")
	}
	if strings.TrimSpace(request.Description) == "" {
		return nil, errors.NewValidationError("description", "description must not be empty")
	}
	if request.Email == "" && request.UserName == "" {
		return nil, errors.NewValidationError("email", "an email address or user name is required")
	}
	if request.Email != "" && !validEmail(request.Email) {
		return nil, errors.NewValidationError("email", "not a valid email address")
	}

	payload := *request
	if payload.Email != "" {
		payload.UserName = ""
	}
	if markup.IsHTML(payload.Description) {
		payload.Description = markup.Sanitize(payload.Description)
	}

	var result types.Ticket
	if err := s.client.do(ctx, actionAddTicket, http.MethodPost, nil, payload, &result); err != nil {
		return nil, err
	}
	result.Description = markup.Normalize(result.Description)
	return &result, nil
}

// Get retrieves a ticket by its identifier. The description is normalized
// to plain text before the ticket is returned.
func (s *TicketsService) Get(ctx context.Context, ticketID types.ID) (*types.Ticket, error) {
	if ticketID == "" {
		return nil, errors.NewValidationError("ticket_id", "ticket id must not be empty")
	}

	params := map[string]string{"TicketID": string(ticketID)}
	var result types.Ticket
	if err := s.client.do(ctx, actionGetTicket, http.MethodGet, params, nil, &result); err != nil {
		return nil, err
	}
	result.Description = markup.Normalize(result.Description)
	return &result, nil
}

// History retrieves a ticket's full history: the ticket's core fields plus
// every note, in the order the backend returns them. The backend pages the
// notes, so this issues a chain of requests, spaced by the configured
// pacing. Any sub-call failure aborts the whole retrieval; partial history
// is never returned.
func (s *TicketsService) History(ctx context.Context, ticketID types.ID) (*types.TicketHistory, error) {
	if ticketID == "" {
		return nil, errors.NewValidationError("ticket_id", "ticket id must not be empty")
	}

	pace := newPacer(s.client.pacing)
	if err := pace.wait(ctx); err != nil {
		return nil, errors.NewTransportError(actionGetTicket, s.client.baseURL, err)
	}
	ticket, err := s.Get(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	var notes []types.Note
	for page := 1; ; page++ {
		if err := pace.wait(ctx); err != nil {
			return nil, errors.NewTransportError(actionGetNotes, s.client.baseURL, err)
		}
		params := map[string]string{
			"TicketID": string(ticketID),
			"Page":     strconv.Itoa(page),
		}
		var result types.NotesPage
		if err := s.client.do(ctx, actionGetNotes, http.MethodGet, params, nil, &result); err != nil {
			return nil, err
		}
		for i := range result.Notes {
			result.Notes[i].Text = markup.Normalize(result.Notes[i].Text)
		}
		notes = append(notes, result.Notes...)
		if !result.HasMore {
			break
		}
	}

	return &types.TicketHistory{Ticket: *ticket, Notes: notes}, nil
}

// Search finds tickets matching the query. Unset query fields are omitted
// from the request and MaxResults defaults to 100. The backend rejects the
// call when MaxResults is below its match count; that rejection surfaces as
// a RemoteError with the backend's own message.
func (s *TicketsService) Search(ctx context.Context, query *types.SearchQuery) ([]types.Ticket, error) {
	if query == nil {
		query = &types.SearchQuery{}
	}
	if err := validateSearchDate("min_date", query.MinDate); err != nil {
		return nil, err
	}
	if err := validateSearchDate("max_date", query.MaxDate); err != nil {
		return nil, err
	}

	params := map[string]string{}
	if query.State != "" {
		params["State"] = query.State
	}
	if query.FromUserID != "" {
		params["FromUserId"] = query.FromUserID
	}
	if query.AgentID != "" {
		params["AgentId"] = query.AgentID
	}
	if query.Description != "" {
		params["Description"] = query.Description
	}
	if query.Subject != "" {
		params["Subject"] = query.Subject
	}
	if query.Type != "" {
		params["Type"] = query.Type
	}
	maxResults := query.MaxResults
	if maxResults == 0 {
		maxResults = 100
	}
	params["MaxResults"] = strconv.Itoa(maxResults)
	if query.MinDate != "" {
		params["MinDate"] = query.MinDate
	}
	if query.MaxDate != "" {
		params["MaxDate"] = query.MaxDate
	}

	var result types.SearchResult
	if err := s.client.do(ctx, actionSearchTickets, http.MethodGet, params, nil, &result); err != nil {
		return nil, err
	}
	for i := range result.Tickets {
		result.Tickets[i].Description = markup.Normalize(result.Tickets[i].Description)
	}
	return result.Tickets, nil
}

// Edit changes ticket fields. At least one of state or type must be set and
// the editor is identified by email. The backend echoes the updated ticket.
func (s *TicketsService) Edit(ctx context.Context, request *types.EditTicketRequest) (*types.Ticket, error) {
	if request == nil {
		return nil, errors.NewValidationError("request", "request is required")
	}
	if request.TicketID == "" {
		return nil, errors.NewValidationError("ticket_id", "ticket id must not be empty")
	}
	if request.State == "" && request.Type == "" {
		return nil, errors.NewValidationError("state", "at least one of state or type must be set")
	}
	if !validEmail(request.Email) {
		return nil, errors.NewValidationError("email", "not a valid email address")
	}

	var result types.Ticket
	if err := s.client.do(ctx, actionEditTicket, http.MethodPost, nil, request, &result); err != nil {
		return nil, err
	}
	result.Description = markup.Normalize(result.Description)
	return &result, nil
}

// validateSearchDate accepts ISO dates, with or without a time component.
func validateSearchDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", value); err == nil {
		return nil
	}
	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return nil
	}
	return errors.NewValidationError(field, "must be an ISO date (YYYY-MM-DD)")
}
