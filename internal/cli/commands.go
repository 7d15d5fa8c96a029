package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/chalher_shop/internal/cart"
	"github.com/Skotchmaster/chalher_shop/internal/errx"
)

func (r *runner) productsCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printProducts(cmd.OutOrStdout(), r.app.Catalog.Filter(query))
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "filter by model name or number")
	return cmd
}

func (r *runner) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <model>",
		Short: "Show one model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseModel(args[0])
			if err != nil {
				return err
			}
			d, ok := r.app.Catalog.Detail(n)
			if !ok {
				return fmt.Errorf("modèle %d introuvable", n)
			}
			printDetail(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func (r *runner) addCmd() *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "add <model>",
		Short: "Add a model to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseModel(args[0])
			if err != nil {
				return err
			}
			p, ok := r.app.Catalog.ByModelNumber(n)
			if !ok {
				return fmt.Errorf("modèle %d introuvable", n)
			}
			if err := saved(cmd, r.app.Cart.Add(cmd.Context(), p.ID, message)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ AJOUTÉ AU PANIER")
			printCart(cmd.OutOrStdout(), r.app.Cart, r.app.Catalog)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "personalisation printed on the item")
	return cmd
}

func (r *runner) cartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cart",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCart(cmd.OutOrStdout(), r.app.Cart, r.app.Catalog)
			return nil
		},
	}
}

func (r *runner) qtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty <item-id> <quantity>",
		Short: "Set the quantity of a cart line, 0 removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("identifiant invalide %q", args[0])
			}
			q, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantité invalide %q", args[1])
			}
			if err := saved(cmd, r.app.Cart.UpdateQuantity(cmd.Context(), id, q)); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), r.app.Cart, r.app.Catalog)
			return nil
		},
	}
}

func (r *runner) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <item-id>",
		Short: "Remove a cart line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("identifiant invalide %q", args[0])
			}
			if err := saved(cmd, r.app.Cart.Remove(cmd.Context(), id)); err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), r.app.Cart, r.app.Catalog)
			return nil
		},
	}
}

func (r *runner) paymentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "payment [method]",
		Short: "Show or choose the payment method",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 {
				err := r.app.Preferences.UpdatePaymentMethod(ctx, args[0])
				if err != nil && !errors.Is(err, errx.ErrStorageUnavailable) {
					return err
				}
				if err != nil {
					warn(cmd.ErrOrStderr(), err)
				}
			}
			m, err := r.app.Preferences.PaymentMethod(ctx)
			if err != nil {
				warn(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Paiement:", m)
			return nil
		},
	}
}

func (r *runner) sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Print the session identifier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), r.app.Cart.SessionID())
			return nil
		},
	}
}

// saved lets a stored change whose re-fetch failed through with a warning.
func saved(cmd *cobra.Command, err error) error {
	if errors.Is(err, cart.ErrNotRefreshed) {
		fmt.Fprintln(cmd.ErrOrStderr(), "attention: modification enregistrée, panier à actualiser")
		return nil
	}
	return err
}

func parseModel(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("numéro de modèle invalide %q", s)
	}
	return n, nil
}
