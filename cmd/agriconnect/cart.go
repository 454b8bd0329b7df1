package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Slganeshkarthik/AgriConnect/internal/app"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

type cartView struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total json.Number       `json:"total"`
}

func viewCart(a *app.App) cartView {
	items := a.Cart.Items()
	if items == nil {
		items = []domain.LineItem{}
	}
	return cartView{Items: items, Count: a.Cart.Count(), Total: json.Number(a.Cart.Total().String())}
}

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and edit the persisted cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(_ context.Context, a *app.App) error {
				return printJSON(cmd, viewCart(a))
			})
		},
	}

	add := &cobra.Command{
		Use:   "add <product-id> [quantity]",
		Short: "Look a product up in the catalog and add it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty := 1
			if len(args) == 2 {
				n, err := parseQuantity(args[1])
				if err != nil {
					return err
				}
				qty = n
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Catalog.Product(ctx, domain.ProductID(args[0]))
				if err != nil {
					return err
				}
				if err := a.Cart.AddItem(ctx, p, qty); err != nil {
					return err
				}
				return printJSON(cmd, viewCart(a))
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Overwrite a line's quantity; zero removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Cart.SetQuantity(ctx, domain.ProductID(args[0]), qty); err != nil {
					return err
				}
				return printJSON(cmd, viewCart(a))
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Cart.RemoveItem(ctx, domain.ProductID(args[0])); err != nil {
					return err
				}
				return printJSON(cmd, viewCart(a))
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				if err := a.Cart.Clear(ctx); err != nil {
					return err
				}
				return printJSON(cmd, viewCart(a))
			})
		},
	}

	cmd.AddCommand(show, add, set, remove, clearCmd)
	return cmd
}

func parseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quantity %q: %w", s, domain.ErrInvalidQuantity)
	}
	return n, nil
}
