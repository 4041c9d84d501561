package main

import (
	"fmt"
	"strconv"

	"storefront/internal/access"
	"storefront/internal/api"
	"storefront/internal/model"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newProductsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the catalog",
	}
	cmd.AddCommand(
		newProductsListCommand(a),
		newProductsGetCommand(a),
		newProductsSearchCommand(a),
		newProductsCategoriesCommand(a),
		newProductsCreateCommand(a),
		newProductsUpdateCommand(a),
		newProductsDeleteCommand(a),
	)
	return cmd
}

func newProductsListCommand(a *app) *cobra.Command {
	var params model.ListParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := a.products.GetAll(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to list products: %w", err)
			}
			printProducts(page)
			return nil
		},
	}
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "items per page")
	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&params.Search, "search", "", "filter by search term")
	return cmd
}

func newProductsGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
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
			printProduct(*product)
			return nil
		},
	}
}

func newProductsSearchCommand(a *app) *cobra.Command {
	var params model.SearchParams
	var minPrice, maxPrice string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if minPrice != "" {
				d, err := decimal.NewFromString(minPrice)
				if err != nil {
					return fmt.Errorf("invalid --min-price %q", minPrice)
				}
				params.MinPrice = &d
			}
			if maxPrice != "" {
				d, err := decimal.NewFromString(maxPrice)
				if err != nil {
					return fmt.Errorf("invalid --max-price %q", maxPrice)
				}
				params.MaxPrice = &d
			}
			page, err := a.products.Search(cmd.Context(), args[0], params)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			printProducts(page)
			return nil
		},
	}
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "items per page")
	cmd.Flags().StringVar(&params.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "minimum price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum price")
	return cmd
}

func newProductsCategoriesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := a.products.GetCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list categories: %w", err)
			}
			if len(categories) == 0 {
				fmt.Println("No categories")
				return nil
			}
			for _, c := range categories {
				fmt.Printf("%d\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newProductsCreateCommand(a *app) *cobra.Command {
	var data model.CreateProductData
	var price, discount, category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a product (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(access.RouteAdminOnly); err != nil {
				return err
			}
			if err := parseMoney(&data, price, discount); err != nil {
				return err
			}
			if category != "" {
				data.CategoryName = &category
			}
			product, err := a.products.Create(cmd.Context(), data)
			if err != nil {
				return fmt.Errorf("failed to create product: %w", err)
			}
			fmt.Printf("Created product %d\n", product.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.Name, "name", "", "product name")
	cmd.Flags().StringVar(&data.Description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "", "product price")
	cmd.Flags().StringVar(&discount, "discount", "", "product discount")
	cmd.Flags().IntVar(&data.Stock, "stock", 0, "stock count")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	return cmd
}

func newProductsUpdateCommand(a *app) *cobra.Command {
	var data model.UpdateProductData
	var price, discount, category string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(access.RouteAdminOnly); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}
			if err := parseMoney(&data, price, discount); err != nil {
				return err
			}
			if category != "" {
				data.CategoryName = &category
			}
			product, err := a.products.Update(cmd.Context(), id, data)
			if err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
			fmt.Printf("Updated product %d\n", product.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.Name, "name", "", "product name")
	cmd.Flags().StringVar(&data.Description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "", "product price")
	cmd.Flags().StringVar(&discount, "discount", "", "product discount")
	cmd.Flags().IntVar(&data.Stock, "stock", 0, "stock count")
	cmd.Flags().StringVar(&category, "category", "", "category name")
	return cmd
}

func newProductsDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.guard(access.RouteAdminOnly); err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product ID %q", args[0])
			}
			if err := a.products.Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete product: %w", err)
			}
			fmt.Printf("Deleted product %d\n", id)
			return nil
		},
	}
}

func parseMoney(data *model.CreateProductData, price, discount string) error {
	if price != "" {
		d, err := decimal.NewFromString(price)
		if err != nil {
			return fmt.Errorf("invalid --price %q", price)
		}
		data.Price = d
	}
	if discount != "" {
		d, err := decimal.NewFromString(discount)
		if err != nil {
			return fmt.Errorf("invalid --discount %q", discount)
		}
		data.Discount = d
	}
	return nil
}

func printProducts(page api.Page[model.Product]) {
	if len(page.Items) == 0 {
		fmt.Println("No products")
		return
	}
	for _, p := range page.Items {
		printProduct(p)
	}
	fmt.Printf("Total: %d\n", page.Total)
}

func printProduct(p model.Product) {
	name := p.Name
	if name == "" {
		name = "no name"
	}
	category := "no category"
	if p.CategoryName != nil && *p.CategoryName != "" {
		category = *p.CategoryName
	}
	fmt.Printf("%d\t%s\t%s\tstock=%d\t%s\n", p.ID, name, p.Price.StringFixed(2), p.Stock, category)
}
