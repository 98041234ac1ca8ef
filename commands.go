package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thecivilword/civilword/internal/daily"
	"github.com/thecivilword/civilword/internal/httpserver"
	"github.com/thecivilword/civilword/internal/puzzle"
	"github.com/thecivilword/civilword/internal/share"
	"github.com/thecivilword/civilword/internal/store"
	"github.com/thecivilword/civilword/internal/tui"
)

// loadBank resolves the configured puzzle bank.
func loadBank(ctx context.Context) (*puzzle.Bank, error) {
	bank, err := puzzle.Load(ctx, puzzle.Source{DB: cfg.PuzzleDB, File: cfg.PuzzleBankFile})
	if err != nil {
		return nil, fmt.Errorf("load puzzle bank: %w", err)
	}
	return bank, nil
}

// ------------------------------- serve -------------------------------------

var (
	servePort   int
	serveSecure bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game as a JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		bank, err := loadBank(ctx)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		launch, err := cfg.Launch()
		if err != nil {
			return err
		}
		if servePort != 0 {
			cfg.Port = servePort
		}

		srv := httpserver.New(store.NewMemoryStore(), httpserver.Options{
			Bank:          bank,
			Launch:        launch,
			Location:      loc,
			Debounce:      cfg.Debounce(),
			SessionSecret: cfg.SessionSecret,
			SessionTTL:    cfg.SessionTTL(),
			ClientOrigin:  cfg.ClientOrigin,
			ShareSite:     cfg.ShareSite,
			Secure:        serveSecure,
		})
		addr := ":" + strconv.Itoa(cfg.Port)
		log.Info().Str("addr", addr).Int("puzzles", bank.Len()).Str("launch", daily.DateKey(launch)).Msg("starting civilword server")
		return srv.Start(ctx, addr)
	},
}

// -------------------------------- play -------------------------------------

var (
	playPractice bool
	playLogFile  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play today's puzzle in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Keep log lines off the game screen.
		var logOut io.Writer = io.Discard
		if playLogFile != "" {
			f, err := os.OpenFile(playLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return err
			}
			defer f.Close()
			logOut = f
		}
		setupLogging(cfg.LogLevel, logOut)

		bank, err := loadBank(cmd.Context())
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		launch, err := cfg.Launch()
		if err != nil {
			return err
		}

		pick := func() (puzzle.Record, error) {
			p, err := daily.Select(bank, launch, time.Now().In(loc))
			return p.Record, err
		}
		if playPractice {
			pick = func() (puzzle.Record, error) {
				r, _, err := bank.Random()
				return r, err
			}
		}

		m, err := tui.New(tui.Options{
			Pick:      pick,
			Now:       func() time.Time { return time.Now().In(loc) },
			Debounce:  cfg.Debounce(),
			Copier:    share.NewCopier(os.Stderr),
			ShareSite: cfg.ShareSite,
		})
		if err != nil {
			return err
		}
		return tui.Run(m)
	},
}

// -------------------------------- today ------------------------------------

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Print today's puzzle number and opening clues",
	RunE: func(cmd *cobra.Command, args []string) error {
		bank, err := loadBank(cmd.Context())
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
		launch, err := cfg.Launch()
		if err != nil {
			return err
		}
		p, err := daily.Select(bank, launch, time.Now().In(loc))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s — %s (day %d, puzzle %d of %d)\n", share.Title, p.Date, p.Day, p.Index+1, bank.Len())
		fmt.Fprintf(out, "  1. %s\n  2. %s\n", p.Record.Clue(1), p.Record.Clue(2))
		return nil
	},
}

// -------------------------------- import -----------------------------------

var importDB string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Write the configured puzzle bank into a SQLite file",
	Long: `import reads the bank from PUZZLE_BANK_FILE (or the embedded default) and
replaces the puzzles table in the target SQLite file. Point PUZZLE_DB at the
file afterwards to serve from it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if importDB == "" {
			return fmt.Errorf("--db is required")
		}
		bank, err := puzzle.Load(cmd.Context(), puzzle.Source{File: cfg.PuzzleBankFile})
		if err != nil {
			return fmt.Errorf("load puzzle bank: %w", err)
		}
		if err := puzzle.SaveSQLite(cmd.Context(), importDB, bank); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d puzzles into %s\n", bank.Len(), importDB)
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveSecure, "secure", false, "mark session cookies Secure and SameSite=None")

	playCmd.Flags().BoolVar(&playPractice, "practice", false, "play a random puzzle instead of today's")
	playCmd.Flags().StringVar(&playLogFile, "log-file", "", "append logs to this file while playing")

	importCmd.Flags().StringVar(&importDB, "db", "", "target SQLite file")
}
