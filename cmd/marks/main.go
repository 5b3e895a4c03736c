package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marklib/marks/internal/checker"
	"github.com/marklib/marks/internal/exporter"
	"github.com/marklib/marks/internal/importer"
	"github.com/marklib/marks/internal/model"
	"github.com/marklib/marks/internal/picker"
	"github.com/marklib/marks/internal/search"
	"github.com/marklib/marks/internal/storage"
	"github.com/marklib/marks/internal/store"
	"github.com/marklib/marks/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "add":
			runAdd(os.Args[2:])
			return
		case "list":
			runList(os.Args[2:])
			return
		case "rm":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: marks rm <id> [-f]\n")
				os.Exit(1)
			}
			runRemove(os.Args[2], len(os.Args) > 3 && os.Args[3] == "-f")
			return
		case "categories":
			runCategories(os.Args[2:])
			return
		case "stats":
			runStats()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: marks import <file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `marks - local bookmark manager

Usage:
  marks                  Open interactive TUI
  marks <query>          Quick search → select → open
  marks add              Add a bookmark (see flags below)
  marks list             Print the filtered bookmark list
  marks rm <id> [-f]     Delete a bookmark (-f skips confirmation)
  marks categories       List/add/remove categories
  marks stats            Show collection statistics
  marks import <file>    Import bookmarks from Netscape HTML
  marks export [path]    Export bookmarks to Netscape HTML
  marks check            Probe bookmark URLs for dead links
  marks help             Show this help

Add flags:
  -title -url -desc -category -tags (comma separated) -fav

List flags:
  -search -category -tags -favorites -sort {title,createdAt,updatedAt,url} -order {asc,desc}

TUI keybindings:
  j/k gg/G    Move
  /           Live search
  f           Toggle favorite
  F           Favorites only
  s/S         Cycle sort field / flip order
  d           Delete (asks for confirmation)
  Y           Copy URL to clipboard
  o/Enter     Open in browser
  q           Quit

Data storage:
  ~/.config/marks/
`
	fmt.Print(help)
}

// openStores loads both stores, exiting on unrecoverable errors.
func openStores() (*store.BookmarkStore, *store.CategoryStore) {
	st, err := storage.OpenStorage()
	if err != nil {
		fatal("Error opening storage", err)
	}
	bookmarks, err := store.NewBookmarkStore(st)
	if err != nil {
		fatal("Error loading bookmarks", err)
	}
	categories, err := store.NewCategoryStore(st)
	if err != nil {
		fatal("Error loading categories", err)
	}
	return bookmarks, categories
}

func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		fatal("Error getting config path", err)
	}
	config, err := storage.LoadConfig(path)
	if err != nil {
		fatal("Error loading config", err)
	}
	return config
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}

// runTUI runs the full interactive TUI.
func runTUI() {
	bookmarks, categories := openStores()

	app := tui.NewApp(tui.AppParams{
		Bookmarks:  bookmarks,
		Categories: categories,
		OpenURL:    openURL,
	})
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("Error running app", err)
	}
}

// runAdd creates a bookmark from command line flags.
func runAdd(args []string) {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	title := fs.String("title", "", "bookmark title (required)")
	url := fs.String("url", "", "bookmark url (required)")
	desc := fs.String("desc", "", "description")
	category := fs.String("category", "", "category name")
	tags := fs.String("tags", "", "comma separated tags")
	fav := fs.Bool("fav", false, "mark as favorite")
	fs.Parse(args)

	bookmarks, categories := openStores()

	categoryName := *category
	if categoryName == "" {
		categoryName = loadConfig().QuickAddCategory
	}
	categoryID := ""
	if c, ok := categories.GetByName(categoryName); ok {
		categoryID = c.ID
	}

	b, err := bookmarks.Add(model.NewBookmarkParams{
		Title:       *title,
		URL:         *url,
		Description: *desc,
		Category:    categoryID,
		Tags:        model.NormalizeTags(strings.Split(*tags, ",")),
		Favorite:    *fav,
	})
	if err != nil {
		fatal("Error adding bookmark", err)
	}
	fmt.Printf("Added %s (%s)\n", b.Title, b.ID)
}

// runList prints the derived view for the given filter flags.
func runList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	searchTerm := fs.String("search", "", "substring search over title/url/description")
	category := fs.String("category", "", "category name")
	tags := fs.String("tags", "", "comma separated tags (any match)")
	favorites := fs.Bool("favorites", false, "favorites only")
	sortBy := fs.String("sort", string(model.SortByCreatedAt), "sort field")
	order := fs.String("order", string(model.SortDesc), "sort order")
	fs.Parse(args)

	bookmarks, categories := openStores()

	filters := model.FilterOptions{
		Search:        *searchTerm,
		Tags:          model.NormalizeTags(strings.Split(*tags, ",")),
		FavoritesOnly: *favorites,
		SortBy:        model.SortField(*sortBy),
		SortOrder:     model.SortOrder(*order),
	}
	if *category != "" {
		if c, ok := categories.GetByName(*category); ok {
			filters.Category = c.ID
		} else {
			// Unknown name matches nothing, same as a dangling ID
			filters.Category = *category
		}
	}
	bookmarks.SetFilters(filters)

	for _, b := range bookmarks.View() {
		star := " "
		if b.Favorite {
			star = "★"
		}
		categoryName := "-"
		if c, ok := categories.Get(b.Category); ok {
			categoryName = c.Name
		}
		fmt.Printf("%s %s  %s  [%s]", star, b.ID[:8], b.Title, categoryName)
		if len(b.Tags) > 0 {
			fmt.Printf("  #%s", strings.Join(b.Tags, " #"))
		}
		fmt.Printf("\n    %s\n", b.URL)
	}
}

// runRemove deletes a bookmark by ID, with a confirmation prompt
// unless forced. A short ID prefix is accepted.
func runRemove(id string, force bool) {
	bookmarks, _ := openStores()

	target := ""
	for _, b := range bookmarks.All() {
		if b.ID == id || strings.HasPrefix(b.ID, id) {
			target = b.ID
			if !force {
				fmt.Printf("Delete %q? [y/N] ", b.Title)
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.TrimSpace(strings.ToLower(answer)) != "y" {
					fmt.Println("Cancelled")
					return
				}
			}
			break
		}
	}
	if target == "" {
		fmt.Fprintf(os.Stderr, "No bookmark with id %s\n", id)
		os.Exit(1)
	}

	if _, err := bookmarks.Delete(target); err != nil {
		fatal("Error deleting bookmark", err)
	}
	fmt.Println("Deleted")
}

// runCategories lists, adds or removes categories.
func runCategories(args []string) {
	bookmarks, categories := openStores()

	if len(args) == 0 {
		stats := store.CollectStats(bookmarks.All(), categories.All())
		for _, cc := range stats.Categories {
			fmt.Printf("%s %s %s (%d)\n", cc.Category.ID, cc.Category.Icon, cc.Category.Name, cc.Count)
		}
		return
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("categories add", flag.ExitOnError)
		name := fs.String("name", "", "category name (required)")
		color := fs.String("color", "#6B7280", "hex color")
		icon := fs.String("icon", "🔖", "display glyph")
		fs.Parse(args[1:])
		if *name == "" {
			fmt.Fprintf(os.Stderr, "Usage: marks categories add -name <name> [-color <hex>] [-icon <glyph>]\n")
			os.Exit(1)
		}
		c, err := categories.Add(model.NewCategoryParams{Name: *name, Color: *color, Icon: *icon})
		if err != nil {
			fatal("Error adding category", err)
		}
		fmt.Printf("Added %s (%s)\n", c.Name, c.ID)

	case "rm":
		if len(args) < 2 {
			fmt.Fprintf(os.Stderr, "Usage: marks categories rm <id>\n")
			os.Exit(1)
		}
		removed, err := categories.Delete(args[1])
		if err != nil {
			fatal("Error removing category", err)
		}
		if !removed {
			fmt.Fprintf(os.Stderr, "No category with id %s\n", args[1])
			os.Exit(1)
		}
		fmt.Println("Removed (bookmarks keep their reference and show as uncategorized)")

	default:
		fmt.Fprintf(os.Stderr, "Usage: marks categories [add|rm]\n")
		os.Exit(1)
	}
}

// runStats prints collection statistics.
func runStats() {
	bookmarks, categories := openStores()
	stats := store.CollectStats(bookmarks.All(), categories.All())

	fmt.Printf("Bookmarks:   %d\n", stats.Total)
	fmt.Printf("Favorites:   %d\n", stats.Favorites)
	fmt.Printf("Unique tags: %d\n", stats.UniqueTags)
	fmt.Printf("Categories:  %d\n", len(stats.Categories))

	fmt.Println("\nPer category:")
	for _, cc := range stats.Categories {
		if cc.Count == 0 {
			continue
		}
		fmt.Printf("  %s %s: %d\n", cc.Category.Icon, cc.Category.Name, cc.Count)
	}

	if len(stats.Recent) > 0 {
		fmt.Println("\nMost recent:")
		for _, b := range stats.Recent {
			fmt.Printf("  %s  %s\n", b.CreatedAt.Format("2006-01-02"), b.Title)
		}
	}
}

// runQuickSearch performs a fuzzy search and opens the selected bookmark.
func runQuickSearch(query string) {
	bookmarks, _ := openStores()

	results := search.Bookmarks(bookmarks.All(), query)

	if len(results) == 0 {
		fmt.Printf("No bookmarks found for '%s'\n", query)
		os.Exit(0)
	}

	var selected model.Bookmark

	if len(results) == 1 {
		selected = results[0].Bookmark
		fmt.Printf("Opening: %s\n", selected.Title)
	} else {
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fatal("Error running picker", err)
		}

		finalPicker := finalModel.(picker.Picker)
		b, ok := finalPicker.Selected()
		if !ok {
			os.Exit(0)
		}
		selected = b
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runImport handles the import subcommand.
func runImport(filePath string) {
	bookmarks, categories := openStores()

	file, err := os.Open(filePath)
	if err != nil {
		fatal("Error opening file", err)
	}
	defer file.Close()

	entries, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		fatal("Error parsing HTML", err)
	}

	added, skipped, err := importer.Merge(entries, bookmarks, categories)
	if err != nil {
		fatal("Error importing bookmarks", err)
	}

	fmt.Printf("Imported %d bookmarks", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(outputPath string) {
	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fatal("Error getting default export path", err)
		}
	}

	bookmarks, categories := openStores()

	html := exporter.ExportHTML(bookmarks.All(), categories.All())

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fatal("Error writing file", err)
	}

	fmt.Printf("Exported %d bookmarks to %s\n", bookmarks.Len(), outputPath)
}

// runCheck probes every bookmark URL and reports dead links.
func runCheck() {
	bookmarks, _ := openStores()
	config := loadConfig()

	all := bookmarks.All()
	if len(all) == 0 {
		fmt.Println("No bookmarks to check")
		return
	}

	fmt.Printf("Checking %d bookmarks...\n", len(all))
	results := checker.CheckURLs(
		all,
		config.CheckConcurrency,
		time.Duration(config.CheckTimeoutSeconds)*time.Second,
		config.CheckExcludeDomains,
		func(completed, total int) {
			fmt.Printf("\r%d/%d", completed, total)
		},
	)
	fmt.Println()

	healthy := 0
	for _, r := range results {
		switch r.Status {
		case checker.Healthy:
			healthy++
		case checker.Dead:
			fmt.Printf("DEAD        %d  %s\n            %s\n", r.StatusCode, r.Bookmark.Title, r.Bookmark.URL)
		case checker.Unreachable:
			fmt.Printf("UNREACHABLE %s  %s\n            %s\n", r.Error, r.Bookmark.Title, r.Bookmark.URL)
		}
	}
	fmt.Printf("%d healthy, %d checked\n", healthy, len(results))
}
