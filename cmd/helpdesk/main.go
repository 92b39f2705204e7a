package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/helpdesk-io/helpdesk-go/client"
	"github.com/helpdesk-io/helpdesk-go/config"
	"github.com/helpdesk-io/helpdesk-go/markup"
	"github.com/helpdesk-io/helpdesk-go/types"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Command line client for the helpdesk ticketing API",
	Long: `Helpdesk Command Line Client

Talks to an Action-based helpdesk backend: create and edit tickets, fetch
ticket history, add notes, search tickets, and look up users. Connection
settings come from a YAML config file and HELPDESK_* environment variables.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configFlag string
	outputFlag string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to YAML config file (optional; environment also applies)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "Output format: json, yaml or text")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(addNoteCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(versionCmd)
}

// buildClient loads settings and constructs the API client.
func buildClient() (*client.Client, error) {
	settings, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if outputFlag == "" {
		outputFlag = settings.Output
	}
	if outputFlag == "" {
		outputFlag = "json"
	}
	return client.NewClient(settings.ClientConfig())
}

// render writes the result in the selected output format. Text output only
// differs for ticket history; everything else prints JSON.
func render(v interface{}) error {
	switch outputFlag {
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}

// noteBody prepares an outbound body: markdown is converted to HTML when
// requested, and the operation layer sanitizes HTML before sending.
func noteBody(text string, asMarkdown bool) string {
	if asMarkdown || markup.IsMarkdown(text) {
		return markup.MarkdownToHTML(text)
	}
	return text
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new ticket",
	RunE:  runCreate,
}

var (
	createSubjectFlag     string
	createDescriptionFlag string
	createEmailFlag       string
	createUserNameFlag    string
	createMarkdownFlag    bool
)

func init() {
	createCmd.Flags().StringVar(&createSubjectFlag, "subject", "", "Ticket subject (required)")
	createCmd.Flags().StringVar(&createDescriptionFlag, "description", "", "Ticket description (required)")
	createCmd.Flags().StringVar(&createEmailFlag, "email", "", "Requester email")
	createCmd.Flags().StringVar(&createUserNameFlag, "username", "", "Requester user name (used when no email is given)")
	createCmd.Flags().BoolVar(&createMarkdownFlag, "markdown", false, "Treat the description as markdown")
	createCmd.MarkFlagRequired("subject")
	createCmd.MarkFlagRequired("description")
}

func runCreate(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}
	ticket, err := c.Tickets.Create(context.Background(), &types.CreateTicketRequest{
		Subject:     createSubjectFlag,
		Description: noteBody(createDescriptionFlag, createMarkdownFlag),
		Email:       createEmailFlag,
		UserName:    createUserNameFlag,
	})
	if err != nil {
		return err
	}
	return render(ticket)
}

var getCmd = &cobra.Command{
	Use:   "get TICKET_ID",
	Short: "Fetch a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		ticket, err := c.Tickets.Get(context.Background(), types.ID(args[0]))
		if err != nil {
			return err
		}
		return render(ticket)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history TICKET_ID",
	Short: "Fetch a ticket's full history",
	Long: `Fetch a ticket's core fields and every note, in backend order. The
backend pages the notes, so this issues several paced requests.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		history, err := c.Tickets.History(context.Background(), types.ID(args[0]))
		if err != nil {
			return err
		}
		switch outputFlag {
		case "text":
			fmt.Print(history.FormatText())
			return nil
		case "yaml":
			return render(history)
		default:
			out, err := history.FormatJSON()
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		}
	},
}

var addNoteCmd = &cobra.Command{
	Use:   "add-note TICKET_ID",
	Short: "Append a note to a ticket",
	Args:  cobra.ExactArgs(1),
	RunE:  runAddNote,
}

var (
	noteTextFlag     string
	noteEmailFlag    string
	noteTypeFlag     string
	noteMarkdownFlag bool
)

func init() {
	addNoteCmd.Flags().StringVar(&noteTextFlag, "text", "", "Note text (required)")
	addNoteCmd.Flags().StringVar(&noteEmailFlag, "email", "", "Author email (required)")
	addNoteCmd.Flags().StringVar(&noteTypeFlag, "type", "Internal", "Note visibility: Internal or Public")
	addNoteCmd.Flags().BoolVar(&noteMarkdownFlag, "markdown", false, "Treat the text as markdown")
	addNoteCmd.MarkFlagRequired("text")
	addNoteCmd.MarkFlagRequired("email")
}

func runAddNote(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}
	note, err := c.Notes.Add(context.Background(), &types.AddNoteRequest{
		TicketID:   types.ID(args[0]),
		Text:       noteBody(noteTextFlag, noteMarkdownFlag),
		Email:      noteEmailFlag,
		Visibility: types.NoteVisibility(noteTypeFlag),
	})
	if err != nil {
		return err
	}
	return render(note)
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search tickets",
	RunE:  runSearch,
}

var searchQueryFlags types.SearchQuery

func init() {
	searchCmd.Flags().StringVar(&searchQueryFlags.State, "state", "", "Filter by ticket state")
	searchCmd.Flags().StringVar(&searchQueryFlags.FromUserID, "from-user", "", "Filter by requester user id")
	searchCmd.Flags().StringVar(&searchQueryFlags.AgentID, "agent", "", "Filter by assigned agent id")
	searchCmd.Flags().StringVar(&searchQueryFlags.Description, "description", "", "Filter by description text")
	searchCmd.Flags().StringVar(&searchQueryFlags.Subject, "subject", "", "Filter by subject text")
	searchCmd.Flags().StringVar(&searchQueryFlags.Type, "type", "", "Filter by ticket type")
	searchCmd.Flags().IntVar(&searchQueryFlags.MaxResults, "max-results", 0, "Result cap (default 100; must cover the match count)")
	searchCmd.Flags().StringVar(&searchQueryFlags.MinDate, "min-date", "", "Earliest creation date (YYYY-MM-DD)")
	searchCmd.Flags().StringVar(&searchQueryFlags.MaxDate, "max-date", "", "Latest creation date (YYYY-MM-DD)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}
	tickets, err := c.Tickets.Search(context.Background(), &searchQueryFlags)
	if err != nil {
		return err
	}
	return render(tickets)
}

var userCmd = &cobra.Command{
	Use:   "user EMAIL",
	Short: "Look up a user by email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildClient()
		if err != nil {
			return err
		}
		user, err := c.Users.GetByEmail(context.Background(), args[0])
		if err != nil {
			return err
		}
		return render(user)
	},
}

var editCmd = &cobra.Command{
	Use:   "edit TICKET_ID",
	Short: "Change ticket state or type",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var (
	editStateFlag string
	editTypeFlag  string
	editEmailFlag string
)

func init() {
	editCmd.Flags().StringVar(&editStateFlag, "state", "", "New ticket state")
	editCmd.Flags().StringVar(&editTypeFlag, "type", "", "New ticket type")
	editCmd.Flags().StringVar(&editEmailFlag, "email", "", "Editor email (required)")
	editCmd.MarkFlagRequired("email")
}

func runEdit(cmd *cobra.Command, args []string) error {
	c, err := buildClient()
	if err != nil {
		return err
	}
	ticket, err := c.Tickets.Edit(context.Background(), &types.EditTicketRequest{
		TicketID: types.ID(args[0]),
		State:    editStateFlag,
		Type:     editTypeFlag,
		Email:    editEmailFlag,
	})
	if err != nil {
		return err
	}
	return render(ticket)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("helpdesk %s\n", rootCmd.Version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
