package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/justcmsco/justcms-go/justcms"
)

var exportOut string

// exportPageSize is the listing batch size used while walking all pages
const exportPageSize = 100

// Snapshot is a full read of a project's content
type Snapshot struct {
	ProjectID  string               `json:"projectId"`
	ExportedAt time.Time            `json:"exportedAt"`
	Categories []justcms.Category   `json:"categories"`
	Pages      []justcms.PageDetail `json:"pages"`
	Menus      []justcms.Menu       `json:"menus"`
	Layouts    []justcms.Layout     `json:"layouts"`
}

// exportCmd fetches the whole project concurrently and writes one JSON
// snapshot. The menus and layouts to include come from the export
// section of the config file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a full snapshot of the project",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	snapshot := Snapshot{
		ProjectID:  client.ProjectID(),
		ExportedAt: time.Now().UTC(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	g.Go(func() error {
		categories, err := client.GetCategories(ctx)
		if err != nil {
			return err
		}
		snapshot.Categories = categories
		return nil
	})

	g.Go(func() error {
		pages, err := fetchAllPages(ctx)
		if err != nil {
			return err
		}
		snapshot.Pages = pages
		return nil
	})

	g.Go(func() error {
		menus, err := fetchMenus(ctx, cfg.Export.Menus)
		if err != nil {
			return err
		}
		snapshot.Menus = menus
		return nil
	})

	g.Go(func() error {
		if len(cfg.Export.Layouts) == 0 {
			return nil
		}
		layouts, err := client.GetLayoutsByIDs(ctx, cfg.Export.Layouts)
		if err != nil {
			return err
		}
		snapshot.Layouts = layouts
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snapshot); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	logger.Info().
		Int("categories", len(snapshot.Categories)).
		Int("pages", len(snapshot.Pages)).
		Int("menus", len(snapshot.Menus)).
		Int("layouts", len(snapshot.Layouts)).
		Msg("Export complete")

	return nil
}

// fetchAllPages walks the page listing and resolves every page to its
// full detail, fetching details concurrently per batch
func fetchAllPages(ctx context.Context) ([]justcms.PageDetail, error) {
	var slugs []string
	start := 0
	for {
		offset := exportPageSize
		startCopy := start
		listing, err := client.GetPages(ctx, justcms.PageQuery{Start: &startCopy, Offset: &offset})
		if err != nil {
			return nil, err
		}
		for _, page := range listing.Items {
			slugs = append(slugs, page.Slug)
		}
		start += len(listing.Items)
		if len(listing.Items) == 0 || start >= listing.Total {
			break
		}
	}

	pages := make([]justcms.PageDetail, len(slugs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	var mu sync.Mutex
	for i, slug := range slugs {
		g.Go(func() error {
			page, err := client.GetPageBySlug(ctx, slug, "")
			if err != nil {
				return err
			}
			mu.Lock()
			pages[i] = *page
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pages, nil
}

// fetchMenus resolves the configured menu ids concurrently, keeping
// config order in the result
func fetchMenus(ctx context.Context, ids []string) ([]justcms.Menu, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	menus := make([]justcms.Menu, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	var mu sync.Mutex
	for i, id := range ids {
		g.Go(func() error {
			menu, err := client.GetMenuByID(ctx, id)
			if err != nil {
				return err
			}
			mu.Lock()
			menus[i] = *menu
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return menus, nil
}
