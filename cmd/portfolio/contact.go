package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"portfolio-backend/internal/config"
	"portfolio-backend/internal/contactform"
	"portfolio-backend/internal/emailjs"
	"portfolio-backend/internal/models"
)

var contactReq models.ContactRequest

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to Ryan",
	Long: `Send a contact message. When EMAILJS_SERVICE_ID, EMAILJS_TEMPLATE_ID and
EMAILJS_PUBLIC_KEY are set the message goes straight to EmailJS; otherwise, or
if that fails, it is relayed through the backend.`,
	Args: cobra.NoArgs,
	RunE: runContact,
}

func init() {
	contactCmd.SilenceUsage = true

	f := contactCmd.Flags()
	f.StringVar(&contactReq.Name, "name", "", "your name")
	f.StringVar(&contactReq.Email, "email", "", "your email address")
	f.StringVar(&contactReq.Subject, "subject", "", "subject (optional)")
	f.StringVarP(&contactReq.Message, "message", "m", "", "message body")
}

func runContact(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client := contactform.NewClient(serverURL, emailjs.Credentials{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
	})

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	ack, err := client.Submit(ctx, contactReq)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ack)
	return nil
}
