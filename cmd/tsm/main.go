// Command tsm edits TradeSkillMaster saved variables files and imports
// scraped item IDs into TSM groups.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	tsmedit "github.com/Xurkon/TSM-Scraper"
	"github.com/Xurkon/TSM-Scraper/internal/config"
	"github.com/Xurkon/TSM-Scraper/internal/scrape"
)

var (
	// Global flags
	cfgPath  string
	filePath string
	dryRun   bool
	verbose  bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tsm",
	Short: "Edit TradeSkillMaster saved variables and import scraped items",
	Long: `tsm edits a TradeSkillMaster SavedVariables Lua file in place while
preserving its exact formatting, so the game client still accepts it.

It can inspect the file, add and remove items, manage the group tree, and
scrape item IDs from the Ascension database to import whole categories at
once. Every mutating command writes a timestamped backup first and
supports --dry-run to preview the change as a unified diff.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		} else {
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if filePath != "" {
			cfg.File = filePath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "tsm-scraper.yaml", "config file")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "path to TradeSkillMaster.lua (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "preview changes without writing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		infoCmd,
		groupsCmd,
		importCmd,
		removeCmd,
		addGroupsCmd,
		renameGroupCmd,
		deleteGroupCmd,
		scrapeCmd,
		lookupCmd,
		autoImportCmd,
	)
}

// newStore builds the Store for the configured saved variables file.
func newStore() (*tsmedit.Store, error) {
	if cfg.File == "" {
		return nil, errors.New("no saved variables file: pass --file or set `file` in the config")
	}
	s := tsmedit.NewStore(cfg.File)
	if cfg.BackupDir != "" {
		s.BackupDir = cfg.BackupDir
	}
	return s, nil
}

func newScraper() (*scrape.Client, error) {
	return scrape.NewClient(scrape.Config{
		BaseURL:   cfg.Scrape.BaseURL,
		UserAgent: cfg.Scrape.UserAgent,
		Delay:     cfg.Scrape.Delay.Std(),
		CacheDir:  cfg.Scrape.CacheDir,
		Logger:    logger,
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}
