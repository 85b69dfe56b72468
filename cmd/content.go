package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justcmsco/justcms-go/filter"
	"github.com/justcmsco/justcms-go/justcms"
)

var (
	// pages flags
	categorySlug string
	startOffset  int
	pageLimit    int
	filterExpr   string

	// page flags
	pageVersion string
)

// categoriesCmd lists the project's categories
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories in the project",
	RunE:  runCategories,
}

func runCategories(cmd *cobra.Command, args []string) error {
	categories, err := client.GetCategories(context.Background())
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		fmt.Println("No categories found.")
		return nil
	}

	fmt.Printf("Found %d categories:\n", len(categories))
	for _, cat := range categories {
		fmt.Printf("• %s (%s)\n", cat.Name, cat.Slug)
	}

	return nil
}

// pagesCmd lists pages, optionally narrowed server-side by category and
// pagination and client-side by a filter expression
var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List pages in the project",
	Long: `List pages in the project. The --category, --start and --limit flags
narrow the listing server-side; --filter applies an expression to the
returned pages, e.g.:

  justcms pages --filter 'hasCategory("blog") and daysSince(Created) < 30'`,
	RunE: runPages,
}

func init() {
	pagesCmd.Flags().StringVarP(&categorySlug, "category", "c", "", "filter by category slug")
	pagesCmd.Flags().IntVar(&startOffset, "start", 0, "pagination offset")
	pagesCmd.Flags().IntVar(&pageLimit, "limit", 0, "page size")
	pagesCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
}

func runPages(cmd *cobra.Command, args []string) error {
	query := justcms.PageQuery{Category: categorySlug}
	if cmd.Flags().Changed("start") {
		query.Start = &startOffset
	}
	if cmd.Flags().Changed("limit") {
		query.Offset = &pageLimit
	}

	result, err := client.GetPages(context.Background(), query)
	if err != nil {
		return err
	}

	pages := result.Items
	if filterExpr != "" {
		match, err := filter.ParseAndCreateFilter(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		pages = filter.Apply(pages, match)
	}

	if len(pages) == 0 {
		fmt.Println("No pages found.")
		return nil
	}

	fmt.Printf("Showing %d of %d pages:\n", len(pages), result.Total)
	fmt.Println(strings.Repeat("-", 60))
	for _, page := range pages {
		fmt.Printf("• %s (%s)\n", page.Title, page.Slug)
		if page.Subtitle != "" {
			fmt.Printf("  %s\n", page.Subtitle)
		}
		if len(page.Categories) > 0 {
			slugs := make([]string, len(page.Categories))
			for i, cat := range page.Categories {
				slugs[i] = cat.Slug
			}
			fmt.Printf("  Categories: %s\n", strings.Join(slugs, ", "))
		}
		fmt.Printf("  Created: %s\n", page.CreatedAt.Format("2006-01-02"))
	}

	return nil
}

// pageCmd shows a single page as JSON
var pageCmd = &cobra.Command{
	Use:   "page <slug>",
	Short: "Show a single page by slug",
	Args:  cobra.ExactArgs(1),
	RunE:  runPage,
}

func init() {
	pageCmd.Flags().StringVar(&pageVersion, "version", "", "version tag (e.g. draft)")
}

func runPage(cmd *cobra.Command, args []string) error {
	page, err := client.GetPageBySlug(context.Background(), args[0], pageVersion)
	if err != nil {
		var apiErr *justcms.APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return fmt.Errorf("page %q not found", args[0])
		}
		return err
	}

	return printJSON(page)
}

// menuCmd shows a menu as JSON
var menuCmd = &cobra.Command{
	Use:   "menu <id>",
	Short: "Show a menu by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		menu, err := client.GetMenuByID(context.Background(), args[0])
		if err != nil {
			return err
		}
		return printJSON(menu)
	},
}

// layoutCmd shows one or more layouts as JSON; multiple ids go through
// the batched endpoint in a single request
var layoutCmd = &cobra.Command{
	Use:   "layout <id> [id...]",
	Short: "Show one or more layouts by ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if len(args) == 1 {
			layout, err := client.GetLayoutByID(ctx, args[0])
			if err != nil {
				return err
			}
			return printJSON(layout)
		}

		layouts, err := client.GetLayoutsByIDs(ctx, args)
		if err != nil {
			return err
		}
		return printJSON(layouts)
	},
}

// printJSON writes indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
