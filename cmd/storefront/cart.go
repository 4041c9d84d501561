package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}
			product, err := a.products.GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to load product: %w", err)
			}
			if err := a.cart.Add(*product); err != nil {
				return fmt.Errorf("failed to update cart: %w", err)
			}
			fmt.Printf("Added %s to cart\n", product.Name)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Run: func(cmd *cobra.Command, args []string) {
			items := a.cart.Items()
			if len(items) == 0 {
				fmt.Println("Cart is empty")
				return
			}
			for _, item := range items {
				fmt.Printf("%d\t%s\tx%d\t%s\n", item.ID, item.Name, item.Quantity, item.Price.StringFixed(2))
			}
		},
	})

	return cmd
}

func newThemeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or toggle dark mode",
		Run: func(cmd *cobra.Command, args []string) {
			printTheme(a)
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle",
		Short: "Toggle dark mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.theme.Toggle(); err != nil {
				return fmt.Errorf("failed to persist theme: %w", err)
			}
			printTheme(a)
			return nil
		},
	})

	return cmd
}

func printTheme(a *app) {
	if a.theme.DarkMode() {
		fmt.Println("Dark mode: on")
	} else {
		fmt.Println("Dark mode: off")
	}
}
