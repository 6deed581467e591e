// Package cli implements the chessd "db" maintenance sub-commands
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/VideosHosting/Chess/internal/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// Run dispatches a db sub-command, writing results to out
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, or moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// storeFlags registers the flags every sub-command shares
type storeFlags struct {
	path   *string
	driver *string
}

func newFlagSet(name string, out io.Writer) (*flag.FlagSet, storeFlags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs, storeFlags{
		path:   fs.String("path", "", "Database file (sqlite) or directory (badger) (required)"),
		driver: fs.String("driver", storage.DriverSQLite, "Storage backend: sqlite or badger"),
	}
}

func (f storeFlags) open() (storage.Store, error) {
	if *f.path == "" {
		return nil, fmt.Errorf("database path required")
	}
	store, err := storage.Open(*f.driver, *f.path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return store, nil
}

func runInit(args []string, out io.Writer) error {
	fs, sf := newFlagSet("init", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sf.open()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", *sf.path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs, sf := newFlagSet("delete", out)
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sf.open()
	if err != nil {
		return err
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", *sf.path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs, sf := newFlagSet("query", out)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := sf.open()
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tWhite\tBlack\tStart Time\tInitial Position")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, g := range games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			g.GameID,
			playerLabel(g.WhiteName, g.WhitePlayerID),
			playerLabel(g.BlackName, g.BlackPlayerID),
			g.StartTimeUTC.Format(timeLayout),
			g.InitialPosition,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	fs, sf := newFlagSet("moves", out)
	gameID := fs.String("gameId", "", "Game ID (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	store, err := sf.open()
	if err != nil {
		return err
	}
	defer store.Close()

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tColor\tMove\tTime\tPosition After")
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			m.MoveNumber,
			m.PlayerColor,
			m.Move,
			m.MoveTimeUTC.Format(timeLayout),
			m.PositionAfter,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d move(s)\n", len(moves))
	return nil
}

func playerLabel(name, id string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	if name == "" {
		return short
	}
	return fmt.Sprintf("%s (%s)", name, short)
}
