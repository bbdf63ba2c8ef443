package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/pfrederiksen/event-roster/internal/config"
	"github.com/pfrederiksen/event-roster/internal/logger"
	"github.com/pfrederiksen/event-roster/internal/roster"
	"github.com/pfrederiksen/event-roster/internal/scraper"
	"github.com/pfrederiksen/event-roster/internal/storage"
	"github.com/pfrederiksen/event-roster/internal/tui"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitMissingInput = 2
	ExitNoContainer  = 3
)

// CodeError carries a non-zero exit code out of a command without printing
// an extra error line.
type CodeError struct {
	Code int
}

func (e *CodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

var (
	flagDataDir string
	flagConfig  string
	flagVerbose bool

	flagInitEvents []string
	flagInitTitle  string
	flagInitForce  bool
	flagInitFrom   string

	flagAddEvent string
	flagAddName  string

	flagListEvent  string
	flagListFormat string
	flagListSort   string
)

// app holds what PersistentPreRunE resolved for the running command.
type app struct {
	cfg     config.Config
	store   *storage.Storage
	log     *logger.Logger
	metrics *logger.Metrics
}

var current app

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event-roster",
		Short: "Register participants for events",
		Long: `A CLI tool that keeps an event sign-up page.
Participants are added to the list of the chosen event, and the page is
stored as plain HTML so it can be opened in a browser.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Data directory for the page (default ~/.local/share/event-roster)")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default <data-dir>/config.toml)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newInitCmd(), newAddCmd(), newListCmd(), newFormCmd())
	return cmd
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig, flagDataDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	store, err := storage.New(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	log.Debug("Configuration loaded", logger.Fields{
		"config":   cfg.Source,
		"data_dir": store.Dir(),
		"events":   cfg.Events,
	})

	current = app{
		cfg:     cfg,
		store:   store,
		log:     log,
		metrics: logger.NewMetrics(),
	}
	return nil
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sign-up page",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
	cmd.Flags().StringArrayVar(&flagInitEvents, "event", nil, "Event to offer (repeatable, default from config)")
	cmd.Flags().StringVar(&flagInitTitle, "title", "", "Page title (default from config)")
	cmd.Flags().BoolVar(&flagInitForce, "force", false, "Overwrite an existing page")
	cmd.Flags().StringVar(&flagInitFrom, "from", "", "Adopt an existing sign-up page from this URL")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	if flagInitFrom != "" {
		return runInitFrom(cmd)
	}

	events := current.cfg.Events
	if len(flagInitEvents) > 0 {
		events = flagInitEvents
	}
	title := current.cfg.Title
	if flagInitTitle != "" {
		title = flagInitTitle
	}

	if err := current.store.Init(title, events, flagInitForce); err != nil {
		return err
	}

	current.log.Info("Page created", logger.Fields{
		"path":   current.store.PagePath(),
		"events": events,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with events: %s\n",
		current.store.PagePath(), strings.Join(events, ", "))
	return nil
}

func runInitFrom(cmd *cobra.Command) error {
	if current.store.Exists() && !flagInitForce {
		return fmt.Errorf("page already exists at %s (use --force to overwrite)", current.store.PagePath())
	}

	current.log.Debug("Fetching page", logger.Fields{"url": flagInitFrom})
	start := time.Now()
	doc, err := scraper.New(flagInitFrom).FetchPage(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetching %s: %w", flagInitFrom, err)
	}
	current.metrics.RecordTiming("page.fetch", time.Since(start))
	defer writeMetrics(cmd.ErrOrStderr())

	if err := current.store.Save(doc); err != nil {
		return fmt.Errorf("saving page: %w", err)
	}

	events := doc.Events()
	current.log.Info("Page adopted", logger.Fields{
		"url":    flagInitFrom,
		"path":   current.store.PagePath(),
		"events": events,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s to %s with events: %s\n",
		flagInitFrom, current.store.PagePath(), strings.Join(events, ", "))
	return nil
}

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a participant for an event",
		Long: `Fill the event and name fields of the stored page and submit them.
Fields not given on the command line keep the value stored in the page.`,
		Args: cobra.NoArgs,
		RunE: runAdd,
	}
	cmd.Flags().StringVar(&flagAddEvent, "event", "", "Event to register for")
	cmd.Flags().StringVar(&flagAddName, "name", "", "Participant name")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	doc, err := current.store.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("event") {
		doc.SetEventValue(flagAddEvent)
		if flagAddEvent != "" && doc.EventValue() != flagAddEvent {
			current.log.Warn("Event is not offered by the page", logger.Fields{"event": flagAddEvent})
		}
	}
	if cmd.Flags().Changed("name") {
		doc.SetNameValue(flagAddName)
	}

	h := roster.NewHandler(doc, writerAlerter{w: cmd.ErrOrStderr()},
		roster.WithLogger(current.log),
		roster.WithMetrics(current.metrics),
	)

	res, err := h.AddParticipant()
	if err != nil {
		return err
	}
	defer writeMetrics(cmd.ErrOrStderr())

	if res.Outcome == roster.OutcomeMissingInput {
		return &CodeError{Code: ExitMissingInput}
	}

	if err := current.store.Save(doc); err != nil {
		return fmt.Errorf("saving page: %w", err)
	}

	if res.Outcome == roster.OutcomeNoContainer {
		fmt.Fprintf(cmd.ErrOrStderr(), "No list for event %q; %s was not added.\n", res.Event, res.Name)
		return &CodeError{Code: ExitNoContainer}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %s to %s.\n", res.Name, res.Event)
	return nil
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show participants per event",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	cmd.Flags().StringVar(&flagListEvent, "event", "", "Only show this event")
	cmd.Flags().StringVar(&flagListFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagListSort, "sort", "event", "Sort order: event or count")
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagListFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagListFormat)
	}
	order := SortOrder(strings.ToLower(flagListSort))
	if order != SortByEvent && order != SortByCount {
		return fmt.Errorf("invalid sort order: %s (must be 'event' or 'count')", flagListSort)
	}

	doc, err := current.store.Load()
	if err != nil {
		return err
	}

	result := BuildResult(doc.Participants(), flagListEvent, order)
	if flagListEvent != "" && len(result.Events) == 0 {
		return fmt.Errorf("no list for event %q", flagListEvent)
	}

	if err := WriteOutput(cmd.OutOrStdout(), result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newFormCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Open the interactive sign-up form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := current.store.Load()
			if err != nil {
				return err
			}
			defer writeMetrics(cmd.ErrOrStderr())
			return tui.Run(doc, tui.Options{
				Title:   current.cfg.Title,
				Save:    current.store.Save,
				Logger:  current.log,
				Metrics: current.metrics,
			})
		},
	}
}

// writerAlerter prints the handler's warning on the command's error stream.
type writerAlerter struct {
	w io.Writer
}

func (a writerAlerter) Alert(message string) {
	fmt.Fprintln(a.w, message)
}

func writeMetrics(w io.Writer) {
	if flagVerbose {
		current.metrics.WriteSnapshot(w)
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var exitErr *CodeError
		if errors.As(err, &exitErr) {
			return exitErr.Code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	return ExitSuccess
}
