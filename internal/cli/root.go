// Package cli is the terminal storefront.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/chalher_shop/internal/errx"
	"github.com/Skotchmaster/chalher_shop/internal/storefront"
)

// Opener builds a started storefront. The returned func releases it.
type Opener func(ctx context.Context) (*storefront.App, func() error, error)

type runner struct {
	open    Opener
	app     *storefront.App
	closeFn func() error
}

func NewRootCmd(open Opener) *cobra.Command {
	r := &runner{open: open}

	root := &cobra.Command{
		Use:           "storefront",
		Short:         "CHALHER PARIS storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, closeFn, err := r.open(cmd.Context())
			if app == nil {
				return err
			}
			r.app, r.closeFn = app, closeFn
			if err != nil {
				warn(cmd.ErrOrStderr(), err)
			}
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if r.closeFn != nil {
				return r.closeFn()
			}
			return nil
		},
	}

	root.AddCommand(
		r.productsCmd(),
		r.showCmd(),
		r.addCmd(),
		r.cartCmd(),
		r.qtyCmd(),
		r.rmCmd(),
		r.paymentCmd(),
		r.sessionCmd(),
	)
	return root
}

// warn reports start-up problems that leave the storefront usable.
func warn(w io.Writer, err error) {
	fetch := errors.Is(err, errx.ErrFetchFailed)
	storage := errors.Is(err, errx.ErrStorageUnavailable)
	if fetch {
		fmt.Fprintln(w, "attention: le magasin est injoignable, catalogue ou panier incomplet")
	}
	if storage {
		fmt.Fprintln(w, "attention: session non sauvegardée sur cet appareil")
	}
	if !fetch && !storage {
		fmt.Fprintln(w, "attention:", err)
	}
}
