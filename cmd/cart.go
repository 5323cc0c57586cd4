package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/app/config"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/service"
	"github.com/spf13/cobra"
)

func newCartCmd() *cobra.Command {
	var session string

	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect or reset persisted carts",
	}
	cmd.PersistentFlags().StringVar(&session, "session", service.DefaultSessionID, "shopper session id")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print a session's cart and totals as JSON",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd, func(r *service.CartRegistry) error {
					store, err := r.Store(cmd.Context(), session)
					if err != nil {
						return err
					}
					return printCart(cmd.OutOrStdout(), store.Snapshot())
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Empty a session's cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd, func(r *service.CartRegistry) error {
					store, err := r.Store(cmd.Context(), session)
					if err != nil {
						return err
					}
					if _, err := store.ClearCart(cmd.Context()); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", store.Key())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "purge",
			Short: "Delete a session's persisted cart",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withRegistry(cmd, func(r *service.CartRegistry) error {
					if err := r.Purge(cmd.Context(), session); err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "purged %s\n", r.SlotKey(session))
					return nil
				})
			},
		},
	)
	return cmd
}

// withRegistry opens only the cart storage; the HTTP stack, events and
// metrics stay down.
func withRegistry(cmd *cobra.Command, fn func(*service.CartRegistry) error) error {
	cfg := config.MustLoad()
	log := logger.NewNopLogger()

	slots, closeSlots, err := app.OpenCartSlots(cmd.Context(), cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = closeSlots(cmd.Context()) }()

	return fn(service.NewCartRegistry(slots, cfg.Storage.Key, log))
}

type cartView struct {
	Lines   []entity.CartLine `json:"lines"`
	Summary entity.Summary    `json:"summary"`
	Badge   int               `json:"badge"`
}

func printCart(w io.Writer, c entity.Cart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cartView{
		Lines:   c.Lines(),
		Summary: entity.Summarize(c),
		Badge:   c.TotalQuantity(),
	})
}
