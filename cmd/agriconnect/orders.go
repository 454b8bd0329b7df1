package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Slganeshkarthik/AgriConnect/internal/app"
	"github.com/Slganeshkarthik/AgriConnect/internal/core/domain"
)

func newCheckoutCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Save delivery details and place the cart as an order",
	}

	var d domain.DeliveryDetails
	details := &cobra.Command{
		Use:   "details",
		Short: "Save delivery details on the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				u, err := a.Checkout.SaveDeliveryDetails(ctx, d)
				if err != nil {
					return err
				}
				return printJSON(cmd, u)
			})
		},
	}
	details.Flags().StringVar(&d.Name, "name", "", "recipient name")
	details.Flags().StringVar(&d.Address, "address", "", "delivery address")
	details.Flags().StringVar(&d.Pincode, "pincode", "", "6-digit pincode")
	details.Flags().StringVar(&d.Phone, "phone", "", "10-digit phone number")

	place := &cobra.Command{
		Use:   "place",
		Short: "Place the cart as an order and empty it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				placed, err := a.Checkout.PlaceOrder(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, placed)
			})
		},
	}

	cmd.AddCommand(details, place)
	return cmd
}

func newOrdersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history and the admin order desk",
	}

	profile := &cobra.Command{
		Use:   "mine",
		Short: "Print the signed-in user's orders and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.Orders.Profile(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, p)
			})
		},
	}

	all := &cobra.Command{
		Use:   "all",
		Short: "List every order (admin)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				orders, stats, err := a.Orders.AdminOrders(ctx)
				if err != nil {
					return err
				}
				if orders == nil {
					orders = []domain.Order{}
				}
				return printJSON(cmd, map[string]any{"orders": orders, "stats": stats})
			})
		},
	}

	status := &cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Move an order to a new status (admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(ctx context.Context, a *app.App) error {
				id, st := domain.OrderID(args[0]), domain.OrderStatus(args[1])
				if err := a.Orders.UpdateOrderStatus(ctx, id, st); err != nil {
					return err
				}
				return printJSON(cmd, map[string]string{"id": args[0], "status": args[1]})
			})
		},
	}

	cmd.AddCommand(profile, all, status)
	return cmd
}
