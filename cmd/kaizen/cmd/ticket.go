package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kangouroukids/kaizen-assistant/internal/freshdesk"
	"github.com/kangouroukids/kaizen-assistant/internal/ticket"
	"github.com/kangouroukids/kaizen-assistant/pkg/models"
)

var (
	ticketEmail  string
	ticketName   string
	ticketAgency string
	ticketDryRun bool
)

var ticketCmd = &cobra.Command{
	Use:   "ticket [question]",
	Short: "Draft and submit a Freshdesk ticket",
	Long: `Build a support ticket from a question and the search results the
manual produced for it, then submit it to Freshdesk.

When the Freshdesk integration is not configured (FRESHDESK_DOMAIN and
FRESHDESK_API_KEY), or with --dry-run, the ticket text is printed for
manual copy-paste instead.

Examples:
  kaizen ticket "Comment annuler une facture validée ?" --email jean@agence.fr --name "Jean Dupont"

  # Preview without submitting
  kaizen ticket "Question sans réponse" --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runTicket,
}

func init() {
	rootCmd.AddCommand(ticketCmd)

	ticketCmd.Flags().StringVar(&ticketEmail, "email", "", "Requester email")
	ticketCmd.Flags().StringVar(&ticketName, "name", "", "Requester name")
	ticketCmd.Flags().StringVar(&ticketAgency, "agency", "", "Requester agency")
	ticketCmd.Flags().BoolVar(&ticketDryRun, "dry-run", false, "Print the ticket text instead of submitting")
}

func runTicket(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := args[0]
	cfg := GetConfig()

	a := newAssistant(cfg, false)
	results := a.Search(ctx, query)

	profile := &models.UserProfile{
		Email:  ticketEmail,
		Name:   ticketName,
		Agency: ticketAgency,
	}
	draft := ticket.Draft(query, results, profile, time.Now())

	helpdesk := freshdesk.New(freshdesk.Config{
		Domain:  cfg.Freshdesk.Domain,
		APIKey:  cfg.Freshdesk.APIKey,
		Timeout: cfg.Freshdesk.Timeout,
	})

	if ticketDryRun || !helpdesk.Enabled() {
		if !ticketDryRun {
			fmt.Println("Freshdesk is not configured; printing the ticket for manual filing.")
			fmt.Println()
		}
		fmt.Print(ticket.ManualText(draft))
		return nil
	}

	result := helpdesk.CreateTicket(ctx, draft)
	if !result.Success {
		fmt.Printf("Ticket not created (%s): %s\n\n", result.ErrorKind, result.Message)
		fmt.Println("Ticket text for manual filing:")
		fmt.Println()
		fmt.Print(ticket.ManualText(draft))
		return nil
	}

	fmt.Printf("Ticket #%d created: %s\n", result.TicketID, result.TicketURL)
	return nil
}
