package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Saurabhguptan007/swasthya-connect/internal/config"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/conceptmap"
	"github.com/Saurabhguptan007/swasthya-connect/internal/domain/dualcoding"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "swasthya-server",
		Short:        "NAMASTE to ICD-11 dual-coding terminology server",
		SilenceUsage: true,
	}

	root.AddCommand(serveCmd())
	root.AddCommand(searchCmd())
	root.AddCommand(translateCmd())
	root.AddCommand(synthesizeCmd())
	root.AddCommand(catalogCmd())
	return root
}

// loadApp reads configuration and terminology for a command.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return newApp(ctx, cfg, newLogger(cfg))
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the terminology API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the NAMASTE catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()
			return writeJSON(cmd.OutOrStdout(), a.terminology.Search(args[0]))
		},
	}
}

func translateCmd() *cobra.Command {
	var group string
	cmd := &cobra.Command{
		Use:   "translate <code>",
		Short: "List ICD-11 candidates for a NAMASTE code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cands := a.translator.Translate(args[0])
			if group != "" {
				g, err := conceptmap.ParseGroup(group)
				if err != nil {
					return err
				}
				cands = conceptmap.Partition(cands, g)
			}
			return writeJSON(cmd.OutOrStdout(), cands)
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "only candidates from this group (pattern-based or biomedical)")
	return cmd
}

func synthesizeCmd() *cobra.Command {
	var (
		targets   []string
		subject   string
		encounter string
	)
	cmd := &cobra.Command{
		Use:   "synthesize <code>",
		Short: "Print a dual-coded Condition bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			entry, err := a.terminology.Get(args[0])
			if err != nil {
				return err
			}
			sel := dualcoding.NewSelection(entry)
			cands := a.translator.Translate(entry.Code)
			for _, t := range targets {
				tc, ok := findCandidate(cands, t)
				if !ok {
					return fmt.Errorf("%s is not a candidate for %s", t, entry.Code)
				}
				if err := sel.Choose(tc); err != nil {
					return err
				}
			}

			out, err := a.synthesizer.SynthesizeSelection(cmd.Context(), sel, dualcoding.ContextIDs{
				SubjectID:   subject,
				EncounterID: encounter,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), out.Bundle)
		},
	}
	cmd.Flags().StringSliceVar(&targets, "target", nil, "target code, optionally system|code; repeatable")
	cmd.Flags().StringVar(&subject, "subject", "", "patient id")
	cmd.Flags().StringVar(&encounter, "encounter", "", "encounter id")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print catalog and concept map statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			cat := a.terminology.Catalog()
			idx := a.translator.Index()
			return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
				"catalogVersion": cat.Version(),
				"catalogEntries": cat.Len(),
				"targetVersion":  idx.Version(),
				"mappedSources":  idx.Len(),
				"unmappedCodes":  unmappedCodes(a),
				"orphanSources":  idx.Orphans(cat.Contains),
			})
		},
	}
}

func unmappedCodes(a *app) []string {
	var out []string
	for _, e := range a.terminology.Catalog().Entries() {
		if _, ok := a.translator.Index().Lookup(e.Code); !ok {
			out = append(out, e.Code)
		}
	}
	return out
}

// findCandidate matches "code" or "system|code" against cands.
func findCandidate(cands []conceptmap.TargetCandidate, ref string) (conceptmap.TargetCandidate, bool) {
	system, code := "", ref
	if i := strings.LastIndex(ref, "|"); i >= 0 {
		system, code = ref[:i], ref[i+1:]
	}
	for _, c := range cands {
		if c.Code == code && (system == "" || c.System == system) {
			return c, true
		}
	}
	return conceptmap.TargetCandidate{}, false
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	a, err := newApp(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load terminology")
	}
	defer a.Close()

	e := a.router()

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
