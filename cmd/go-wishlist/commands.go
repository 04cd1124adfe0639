package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/ui"
)

// cliOptions carries the flags and the injectable dependencies of the commands.
type cliOptions struct {
	version bool
	debug   bool

	newApp func() fyne.App
	clock  engine.Clock

	// setupLogging is skipped when nil, which tests rely on.
	setupLogging func(console io.Writer, debug bool) io.Closer
	logCloser    io.Closer
}

func newCLIOptions() *cliOptions {
	return &cliOptions{
		newApp:       newApp,
		clock:        engine.RealClock{},
		setupLogging: setupLogging,
	}
}

func (o *cliOptions) close() {
	if o.logCloser != nil {
		_ = o.logCloser.Close() // Best effort close
	}
}

// newRootCmd builds the command tree. The root command runs the desktop app;
// subcommands print data from the stored collection.
func newRootCmd(opts *cliOptions) *cobra.Command {
	root := &cobra.Command{
		Use:           config.CmdRoot,
		Short:         config.DescRoot,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.setupLogging == nil {
				return
			}
			// Subcommand output goes to stdout, so their logs move to stderr.
			console := cmd.OutOrStdout()
			if cmd != cmd.Root() {
				console = cmd.ErrOrStderr()
			}
			opts.logCloser = opts.setupLogging(console, opts.debug)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.version {
				printVersion(cmd.OutOrStdout())
				return nil
			}
			return run(cmd.Context(), opts.newApp())
		},
	}

	root.Flags().BoolVar(&opts.version, config.FlagVersion, false, config.FlagDescVersion)
	root.PersistentFlags().BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		newListCmd(opts),
		newShareCmd(opts),
		newFeedCmd(opts),
	)
	return root
}

func newListCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdList,
		Short: config.DescList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			people := loadPeople(opts.newApp())
			view := engine.OrderPeople(people, opts.clock.Now())
			printPeople(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

// printPeople writes one aligned line per person, favorites first.
func printPeople(w io.Writer, view engine.PeopleView) {
	for _, sp := range view.All() {
		marker := config.NoMarker
		if sp.Person.IsFavorite {
			marker = config.FavoriteMarker
		}
		days := config.ListUnscheduled
		if sp.Scheduled {
			days = strconv.Itoa(sp.Days)
		}
		fmt.Fprintf(w, config.FormatListLine, marker, sp.Person.Name, sp.Person.Birthday, days)
	}
}

func newShareCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdShare,
		Short: config.DescShare,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			p, ok := findPerson(loadPeople(opts.newApp()), name)
			if !ok {
				return fmt.Errorf("%s: %q", config.ErrPersonNotFound, name)
			}
			_, err := io.WriteString(cmd.OutOrStdout(), engine.ShareText(p))
			return err
		},
	}
}

// findPerson matches a name case-insensitively.
func findPerson(people []engine.Person, name string) (engine.Person, bool) {
	name = strings.TrimSpace(name)
	for _, p := range people {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return engine.Person{}, false
}

func newFeedCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   config.CmdFeed,
		Short: config.DescFeed,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := opts.newApp()
			builder := &engine.FeedBuilder{
				Clock:           opts.clock,
				ReminderTrigger: ui.ReminderTriggerFor(a.Preferences()),
			}
			data, _, err := builder.Build(loadPeople(a))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
