package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketUnmarshalPreservesExtraFields(t *testing.T) {
	body := `{
		"TicketID": "1042",
		"Subject": "Broken printer",
		"Description": "Out of toner",
		"Email": "a@b.com",
		"State": "Open",
		"Priority": "High",
		"CustomField1": "floor 3"
	}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(body), &ticket))

	assert.Equal(t, ID("1042"), ticket.ID)
	assert.Equal(t, "Broken printer", ticket.Subject)
	assert.Equal(t, "Out of toner", ticket.Description)
	assert.Equal(t, "Open", ticket.State)

	// Keys the struct does not model survive in Extra.
	assert.Equal(t, "High", ticket.Extra["Priority"])
	assert.Equal(t, "floor 3", ticket.Extra["CustomField1"])
	assert.NotContains(t, ticket.Extra, "Subject")
}

func TestTicketRoundTripKeepsExtraFields(t *testing.T) {
	original := `{"TicketID":"7","Subject":"s","Description":"d","Backend":"legacy-v2"}`

	var ticket Ticket
	require.NoError(t, json.Unmarshal([]byte(original), &ticket))

	data, err := json.Marshal(ticket)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "legacy-v2", raw["Backend"])
	assert.Equal(t, "7", raw["TicketID"])
}

func TestIDAcceptsStringAndNumber(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected ID
	}{
		{name: "string id", body: `{"TicketID": "1042"}`, expected: ID("1042")},
		{name: "numeric id", body: `{"TicketID": 1042}`, expected: ID("1042")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ticket Ticket
			require.NoError(t, json.Unmarshal([]byte(tt.body), &ticket))
			assert.Equal(t, tt.expected, ticket.ID)
		})
	}
}

func TestNoteVisibilityOnTypeKey(t *testing.T) {
	body := `{"TicketID":"5","Email":"tech@b.com","Text":"fixed","Type":"Public","Created":"2026-08-01T10:00:00Z"}`

	var note Note
	require.NoError(t, json.Unmarshal([]byte(body), &note))

	assert.Equal(t, VisibilityPublic, note.Visibility)
	assert.True(t, note.Visibility.Valid())
	assert.Equal(t, "fixed", note.Text)

	data, err := json.Marshal(note)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "Public", raw["Type"])
}

func TestNoteVisibilityValid(t *testing.T) {
	assert.True(t, VisibilityInternal.Valid())
	assert.True(t, VisibilityPublic.Valid())
	assert.False(t, NoteVisibility("Secret").Valid())
	assert.False(t, NoteVisibility("").Valid())
}

func TestNotesPageDecode(t *testing.T) {
	body := `{
		"TicketID": "5",
		"Notes": [
			{"TicketID":"5","Text":"first","Type":"Internal"},
			{"TicketID":"5","Text":"second","Type":"Public"}
		],
		"HasMore": true
	}`

	var page NotesPage
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	require.Len(t, page.Notes, 2)
	assert.Equal(t, "first", page.Notes[0].Text)
	assert.Equal(t, "second", page.Notes[1].Text)
	assert.True(t, page.HasMore)
}

func TestUserInfoUnmarshal(t *testing.T) {
	body := `{"UserID":12,"Email":"a@b.com","UserName":"ab","DisplayName":"A B","Department":"IT"}`

	var user UserInfo
	require.NoError(t, json.Unmarshal([]byte(body), &user))

	assert.Equal(t, ID("12"), user.ID)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Equal(t, "A B", user.DisplayName)
	assert.Equal(t, "IT", user.Extra["Department"])
}

func TestSearchQueryOmitsUnsetFields(t *testing.T) {
	data, err := json.Marshal(SearchQuery{State: "Open"})
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, map[string]any{"State": "Open"}, raw)
}

func TestErrorResponseText(t *testing.T) {
	assert.Equal(t, "boom", ErrorResponse{Error: "boom"}.Text())
	assert.Equal(t, "worse", ErrorResponse{Error: "boom", Message: "worse"}.Text())
	assert.Equal(t, "", ErrorResponse{}.Text())
}
