package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/seriesmark/internal/catalog"
	"github.com/rcliao/seriesmark/internal/model"
	"github.com/rcliao/seriesmark/internal/store"
)

func init() {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Series catalog management",
	}

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a showtime dataset",
		Long:  "Replace a series catalog with the movies in a JSON dataset. Duplicate titles are merged.",
		Args:  cobra.ExactArgs(1),
		Run:   runCatalogImport,
	}
	addSeriesFlag(importCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List a series catalog in share order",
		Run:   runCatalogList,
	}
	addSeriesFlag(listCmd)

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search a series by title, id or director",
		Args:  cobra.MinimumNArgs(1),
		Run:   runCatalogSearch,
	}
	addSeriesFlag(searchCmd)
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	catalogCmd.AddCommand(importCmd, listCmd, searchCmd)
	RootCmd.AddCommand(catalogCmd)
}

func runCatalogImport(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)

	movies, err := catalog.LoadFile(args[0], series)
	if err != nil {
		exitErr("load dataset", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.ImportCatalog(cmd.Context(), series, movies)
	if err != nil {
		exitErr("import catalog", err)
	}

	if wantText(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d movies into %s (%d records)\n", n, series, len(movies))
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"series":%q,"movies":%d,"records":%d}`+"\n", series, n, len(movies))
}

func runCatalogList(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	cat, err := s.Catalog(cmd.Context(), series)
	if err != nil {
		exitErr("catalog", err)
	}
	printMovies(cmd, cat.Movies())
}

func runCatalogSearch(cmd *cobra.Command, args []string) {
	series := seriesFlag(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	movies, err := s.SearchMovies(cmd.Context(), store.SearchParams{
		Series: series,
		Query:  strings.Join(args, " "),
		Limit:  limit,
	})
	if err != nil {
		exitErr("search", err)
	}
	printMovies(cmd, movies)
}

func printMovies(cmd *cobra.Command, movies []model.Movie) {
	if !wantText(cmd) {
		if movies == nil {
			movies = []model.Movie{}
		}
		printJSON(cmd, movies)
		return
	}

	rows := make([][]string, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, []string{m.ID, m.Title, yearString(m.Year), m.Director, nextShowing(m)})
	}
	printTable(cmd,
		[]string{"ID", "Title", "Year", "Director", "First Showing"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignLeft})
}

func yearString(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func nextShowing(m model.Movie) string {
	if len(m.Showtimes) == 0 {
		return ""
	}
	st := m.Showtimes[0]
	out := st.Start.Format("Mon Jan 2 15:04")
	if st.Venue != "" {
		out += " @ " + st.Venue
	}
	return out
}
