package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	itemsCmd := &cobra.Command{Use: "items", Short: "Listing operations"}

	// list
	var category, itemType, search, userID string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available items",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := newClient().R()
			if category != "" {
				req.SetQueryParam("category", category)
			}
			if itemType != "" {
				req.SetQueryParam("type", itemType)
			}
			if search != "" {
				req.SetQueryParam("search", search)
			}
			if userID != "" {
				req.SetQueryParam("userId", userID)
			}
			out, err := body(req.Get("/api/items"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	listCmd.Flags().StringVarP(&category, "category", "c", "", "Filter by category")
	listCmd.Flags().StringVar(&itemType, "type", "", "Filter by type (sale, rent)")
	listCmd.Flags().StringVarP(&search, "search", "s", "", "Search title and description")
	listCmd.Flags().StringVarP(&userID, "user", "u", "", "Show one user's listings (includes sold)")
	itemsCmd.AddCommand(listCmd)

	// get
	getCmd := &cobra.Command{
		Use:   "get ITEM_ID",
		Short: "Get an item by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := body(newClient().R().Get("/api/items/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	itemsCmd.AddCommand(getCmd)

	// create
	var title, description, createCategory, createType, condition, owner string
	var price float64
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := body(newClient().R().
				SetBody(map[string]interface{}{
					"title":       title,
					"description": description,
					"price":       price,
					"category":    createCategory,
					"type":        createType,
					"condition":   condition,
					"userId":      owner,
				}).
				Post("/api/items"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	createCmd.Flags().StringVar(&title, "title", "", "Item title (required)")
	createCmd.Flags().StringVar(&description, "description", "", "Item description")
	createCmd.Flags().Float64Var(&price, "price", 0, "Price")
	createCmd.Flags().StringVarP(&createCategory, "category", "c", "", "Category (required)")
	createCmd.Flags().StringVar(&createType, "type", "sale", "Listing type (sale, rent)")
	createCmd.Flags().StringVar(&condition, "condition", "", "Item condition")
	createCmd.Flags().StringVarP(&owner, "user", "u", "", "Owner user ID (required)")
	_ = createCmd.MarkFlagRequired("title")
	_ = createCmd.MarkFlagRequired("category")
	_ = createCmd.MarkFlagRequired("user")
	itemsCmd.AddCommand(createCmd)

	// status
	statusCmd := &cobra.Command{
		Use:   "status ITEM_ID STATUS",
		Short: "Mark an item sold or rented",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := body(newClient().R().
				SetBody(map[string]string{"status": args[1]}).
				Patch("/api/items/" + args[0]))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, out)
			return nil
		},
	}
	itemsCmd.AddCommand(statusCmd)

	rootCmd.AddCommand(itemsCmd)
}
