package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/foxzi/sheetboard/internal/mailer"
)

var (
	mailTo      string
	mailFrom    string
	mailSubject string
	mailText    string
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Outreach mail commands",
}

var mailTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test email through Mailgun",
	Long:  `Send a test email using the configured Mailgun credentials to verify outreach mail delivery.`,
	RunE:  runMailTest,
}

func init() {
	mailTestCmd.Flags().StringVar(&mailTo, "to", "", "recipient address (required)")
	mailTestCmd.Flags().StringVar(&mailFrom, "from", "", "sender address (defaults to mailgun.from)")
	mailTestCmd.Flags().StringVar(&mailSubject, "subject", "Test Email", "message subject")
	mailTestCmd.Flags().StringVar(&mailText, "text", "This is a test email!", "message body")
	mailTestCmd.MarkFlagRequired("to")

	mailCmd.AddCommand(mailTestCmd)
}

func runMailTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := mailer.NewClient(&cfg.Mailgun)
	if err != nil {
		return fmt.Errorf("mailgun is not configured: %w", err)
	}

	from := mailFrom
	if from == "" {
		from = cfg.Mailgun.From
	}
	if from == "" {
		from = fmt.Sprintf("Sheetboard <postmaster@%s>", cfg.Mailgun.Domain)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("Sending test email...")
	if err := client.Send(ctx, &mailer.Message{
		From:    from,
		To:      mailTo,
		Subject: mailSubject,
		Text:    mailText,
	}); err != nil {
		return err
	}

	fmt.Printf("Email sent to %s\n", mailTo)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
