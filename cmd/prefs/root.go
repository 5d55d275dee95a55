package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andybarron/preferences-go/internal/version"
	"github.com/andybarron/preferences-go/pkg/config"
	"github.com/andybarron/preferences-go/pkg/logging"
	"github.com/andybarron/preferences-go/pkg/style"
)

// appFlags carries the global flags every subcommand resolves its
// store from. Defaults come from the config file and environment.
type appFlags struct {
	App    string
	Author string
	Format string
}

// NewRootCmd creates the root command with settings as flag defaults
func NewRootCmd(settings *config.Settings) *cobra.Command {
	var (
		verbosity int
		noColor   bool
		flags     appFlags
	)

	rootCmd := &cobra.Command{
		Use:     "prefs",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if noColor || settings.NoColor {
				style.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&flags.App, "app", settings.App, MsgFlagApp)
	rootCmd.PersistentFlags().StringVar(&flags.Author, "author", settings.Author, MsgFlagAuthor)
	rootCmd.PersistentFlags().StringVar(&flags.Format, "format", settings.Format, MsgFlagFormat)
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, MsgFlagNoColor)

	rootCmd.AddCommand(newGetCmd(&flags))
	rootCmd.AddCommand(newSetCmd(&flags))
	rootCmd.AddCommand(newListCmd(&flags))
	rootCmd.AddCommand(newDeleteCmd(&flags))
	rootCmd.AddCommand(newPathCmd(&flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}
