package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/chalher_shop/internal/cart"
	"github.com/Skotchmaster/chalher_shop/internal/catalog"
	"github.com/Skotchmaster/chalher_shop/internal/models"
)

func euros(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "Aucun produit trouvé")
		return
	}
	for _, p := range products {
		fmt.Fprintf(w, "%3d  %-26s %10s\n", p.ModelNumber, models.ModelLabel(p.ModelNumber), euros(p.Price))
	}
}

func printDetail(w io.Writer, d catalog.Detail) {
	fmt.Fprintln(w, d.Title)
	fmt.Fprintln(w, d.ImageURL)
	fmt.Fprintf(w, "%s TTC\n", euros(d.Product.Price))

	thumbs := make([]string, 0, len(d.Thumbnails))
	for _, th := range d.Thumbnails {
		if th.Active {
			thumbs = append(thumbs, fmt.Sprintf("[%d]", th.ModelNumber))
		} else {
			thumbs = append(thumbs, fmt.Sprint(th.ModelNumber))
		}
	}
	fmt.Fprintln(w, strings.Join(thumbs, " "))
}

func articles(n int) string {
	if n == 1 {
		return "1 article"
	}
	return fmt.Sprintf("%d articles", n)
}

func printCart(w io.Writer, c *cart.Cart, cat *catalog.Catalog) {
	fmt.Fprintf(w, "PANIER (%s)\n", articles(c.Count()))

	items := c.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "Votre panier est vide")
		return
	}
	for _, it := range items {
		title := "Produit inconnu"
		if p, ok := cat.Product(it.ProductID); ok {
			title = p.Title
		}
		fmt.Fprintln(w, title)
		if it.Message != nil {
			fmt.Fprintf(w, "  Message: %s\n", *it.Message)
		}
		fmt.Fprintf(w, "  %s x %d  %s\n", euros(c.UnitPrice(it.ProductID)), it.Quantity, it.ID)
	}

	fmt.Fprintf(w, "Sous-total: %s\n", euros(c.Subtotal()))
	fmt.Fprintf(w, "Livraison: %s (offerte dès %s)\n", euros(c.Shipping()), euros(cart.ShippingThreshold))
	fmt.Fprintf(w, "Total: %s\n", euros(c.Total()))
}
