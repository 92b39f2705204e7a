package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
)

// timestampLayouts are the date formats the backend has been observed to
// emit. Dates are carried as received; parsing here is display-only.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FormatJSON renders the history as indented JSON with sorted keys, the
// shape helpdesk tooling expects for display and diffing.
func (h TicketHistory) FormatJSON() (string, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return "", err
	}
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// FormatText renders the history as a human-readable transcript. Note
// timestamps the client can parse are shown as relative times.
func (h TicketHistory) FormatText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Ticket %s: %s\n", h.Ticket.ID, h.Ticket.Subject)
	if h.Ticket.State != "" || h.Ticket.Type != "" {
		fmt.Fprintf(&b, "State: %s  Type: %s\n", h.Ticket.State, h.Ticket.Type)
	}
	if h.Ticket.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", h.Ticket.Description)
	}

	for _, note := range h.Notes {
		fmt.Fprintf(&b, "\n[%s] %s (%s)\n%s\n", displayTime(note.Created), note.Email, note.Visibility, note.Text)
	}

	return b.String()
}

// displayTime converts a backend timestamp to a relative time, falling back
// to the raw value when the format is unrecognized.
func displayTime(value string) string {
	if value == "" {
		return "unknown time"
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return timeago.English.Format(t)
		}
	}
	return value
}
