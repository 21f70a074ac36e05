package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/vytor/userdirectory/internal/config"
	"github.com/vytor/userdirectory/internal/logger"
	"github.com/vytor/userdirectory/internal/randomuser"
	"github.com/vytor/userdirectory/internal/tui"
)

var (
	cfg         = config.Load()
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse a page of random employee profiles in the terminal",
	Example: `  browse                      # 12 profiles from the configured nationalities
  browse -n 30 --nat gb,ie    # 30 British and Irish profiles
  browse --log-file browse.log`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}

		// The terminal belongs to the UI, so logs go to a file or nowhere.
		var out io.Writer = io.Discard
		if flagLogFile != "" {
			f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		log := logger.New(
			logger.WithOutput(out),
			logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
			logger.WithColors(false),
		)
		logger.SetDefault(log)

		client := randomuser.New(cfg.ProfileAPIURL,
			randomuser.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
		)
		req := randomuser.FetchRequest{Count: cfg.ResultCount, Nationalities: cfg.Nationalities}

		ctx := logger.NewContext(cmd.Context(), log)
		_, err := tea.NewProgram(tui.New(ctx, client, req), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	},
}

func init() {
	rootCmd.Flags().IntVarP(&cfg.ResultCount, "count", "n", cfg.ResultCount, "Number of profiles to fetch")
	rootCmd.Flags().StringSliceVar(&cfg.Nationalities, "nat", cfg.Nationalities, "Nationalities to draw profiles from")
	rootCmd.Flags().StringVar(&cfg.ProfileAPIURL, "api-url", cfg.ProfileAPIURL, "Profile API endpoint")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
}
