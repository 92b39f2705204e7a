package types

import (
	"encoding/json"
)

// NoteVisibility controls who can see a note on a ticket.
type NoteVisibility string

const (
	// VisibilityInternal marks a note visible to agents only
	VisibilityInternal NoteVisibility = "Internal"
	// VisibilityPublic marks a note visible to the requester
	VisibilityPublic NoteVisibility = "Public"
)

// Valid reports whether the visibility is one of the recognized values.
func (v NoteVisibility) Valid() bool {
	return v == VisibilityInternal || v == VisibilityPublic
}

// ID is a backend record identifier. The backend emits identifiers as JSON
// strings or numbers depending on the endpoint; both decode to the string
// form and are treated as opaque.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Ticket represents a support ticket. Description is plain text; HTML sent
// by the backend is normalized before the ticket reaches the caller. Extra
// holds backend fields this client does not model, preserved verbatim.
type Ticket struct {
	ID          ID             `json:"TicketID"`
	Subject     string         `json:"Subject"`
	Description string         `json:"Description"`
	Email       string         `json:"Email,omitempty"`
	UserName    string         `json:"UserName,omitempty"`
	State       string         `json:"State,omitempty"`
	Type        string         `json:"Type,omitempty"`
	AgentID     ID             `json:"AgentId,omitempty"`
	Created     string         `json:"Created,omitempty"`
	Changed     string         `json:"Changed,omitempty"`
	Extra       map[string]any `json:"-"`
}

var ticketFields = []string{
	"TicketID", "Subject", "Description", "Email", "UserName",
	"State", "Type", "AgentId", "Created", "Changed",
}

type ticketAlias Ticket

func (t *Ticket) UnmarshalJSON(data []byte) error {
	var alias ticketAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := extraFields(data, ticketFields)
	if err != nil {
		return err
	}
	alias.Extra = extra
	*t = Ticket(alias)
	return nil
}

func (t Ticket) MarshalJSON() ([]byte, error) {
	return mergeExtra(ticketAlias(t), t.Extra)
}

// Note represents one entry in a ticket's history. Text is plain text after
// normalization. The backend carries visibility on the Type key.
type Note struct {
	TicketID   ID             `json:"TicketID"`
	Email      string         `json:"Email,omitempty"`
	Text       string         `json:"Text"`
	Visibility NoteVisibility `json:"Type,omitempty"`
	Created    string         `json:"Created,omitempty"`
	Extra      map[string]any `json:"-"`
}

var noteFields = []string{"TicketID", "Email", "Text", "Type", "Created"}

type noteAlias Note

func (n *Note) UnmarshalJSON(data []byte) error {
	var alias noteAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := extraFields(data, noteFields)
	if err != nil {
		return err
	}
	alias.Extra = extra
	*n = Note(alias)
	return nil
}

func (n Note) MarshalJSON() ([]byte, error) {
	return mergeExtra(noteAlias(n), n.Extra)
}

// UserInfo represents a backend user looked up by email.
type UserInfo struct {
	ID          ID             `json:"UserID"`
	Email       string         `json:"Email"`
	UserName    string         `json:"UserName,omitempty"`
	DisplayName string         `json:"DisplayName,omitempty"`
	Extra       map[string]any `json:"-"`
}

var userInfoFields = []string{"UserID", "Email", "UserName", "DisplayName"}

type userInfoAlias UserInfo

func (u *UserInfo) UnmarshalJSON(data []byte) error {
	var alias userInfoAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	extra, err := extraFields(data, userInfoFields)
	if err != nil {
		return err
	}
	alias.Extra = extra
	*u = UserInfo(alias)
	return nil
}

func (u UserInfo) MarshalJSON() ([]byte, error) {
	return mergeExtra(userInfoAlias(u), u.Extra)
}

// TicketHistory is a ticket's core fields plus its notes in the order the
// backend returned them. The order is never re-sorted.
type TicketHistory struct {
	Ticket Ticket `json:"Ticket"`
	Notes  []Note `json:"Notes"`
}

// NotesPage is the wire shape of one page of a ticket's notes.
type NotesPage struct {
	TicketID ID     `json:"TicketID"`
	Notes    []Note `json:"Notes"`
	HasMore  bool   `json:"HasMore"`
}

// SearchQuery holds the recognized ticket search options. Zero-valued fields
// are omitted from the outgoing request. MaxResults defaults to 100 and must
// cover the backend's match count or the backend rejects the call.
type SearchQuery struct {
	State       string `json:"State,omitempty"`
	FromUserID  string `json:"FromUserId,omitempty"`
	AgentID     string `json:"AgentId,omitempty"`
	Description string `json:"Description,omitempty"`
	Subject     string `json:"Subject,omitempty"`
	Type        string `json:"Type,omitempty"`
	MaxResults  int    `json:"MaxResults,omitempty"`
	MinDate     string `json:"MinDate,omitempty"`
	MaxDate     string `json:"MaxDate,omitempty"`
}

// SearchResult is the wire shape of a ticket search response.
type SearchResult struct {
	Tickets []Ticket `json:"Tickets"`
	Count   int      `json:"Count,omitempty"`
}

// Request types for write operations

// CreateTicketRequest represents a request to open a new ticket. Email is
// preferred when both identifying fields are set.
type CreateTicketRequest struct {
	Subject     string `json:"Subject"`
	Description string `json:"Description"`
	Email       string `json:"Email,omitempty"`
	UserName    string `json:"UserName,omitempty"`
}

// AddNoteRequest represents a request to append a note to a ticket.
type AddNoteRequest struct {
	TicketID   ID             `json:"TicketID"`
	Text       string         `json:"Text"`
	Email      string         `json:"Email"`
	Visibility NoteVisibility `json:"Type"`
}

// EditTicketRequest represents a request to change ticket fields. At least
// one of State or Type must be set; Email identifies the editor.
type EditTicketRequest struct {
	TicketID ID     `json:"TicketID"`
	State    string `json:"State,omitempty"`
	Type     string `json:"Type,omitempty"`
	Email    string `json:"Email"`
}

// ErrorResponse is the body shape the backend uses for rejections.
type ErrorResponse struct {
	Error   string `json:"Error,omitempty"`
	Message string `json:"Message,omitempty"`
}

// Text returns the backend's diagnostic text, whichever key carried it.
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// extraFields decodes data into a map and removes the modeled keys, leaving
// only backend fields the struct does not carry.
func extraFields(data []byte, known []string) (map[string]any, error) {
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(raw, k)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// mergeExtra marshals the aliased struct and folds the extra fields back in.
// Modeled fields win on key collision.
func mergeExtra(alias any, extra map[string]any) ([]byte, error) {
	data, err := json.Marshal(alias)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return data, nil
	}
	raw := map[string]any{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := raw[k]; !ok {
			raw[k] = v
		}
	}
	return json.Marshal(raw)
}
