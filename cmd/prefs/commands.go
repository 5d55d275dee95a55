package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/andybarron/preferences-go/pkg/errors"
	"github.com/andybarron/preferences-go/pkg/format"
	"github.com/andybarron/preferences-go/pkg/prefs"
	"github.com/andybarron/preferences-go/pkg/style"
)

// openStore resolves the global flags into a store. Each key's file is
// treated as a flat string map, which is what the CLI can usefully edit.
func openStore(flags *appFlags) (*prefs.Store, error) {
	codec, err := format.Lookup(flags.Format)
	if err != nil {
		return nil, err
	}
	return prefs.New(
		prefs.AppInfo{Name: flags.App, Author: flags.Author},
		prefs.WithFormat(codec),
	)
}

func newGetCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key> [field]",
		Short: MsgGetShort,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}

			var fields prefs.Map
			if err := store.Load(args[0], &fields); err != nil {
				return err
			}

			if len(args) == 2 {
				value, ok := fields.Get(args[1])
				if !ok {
					return errors.Newf(errors.ErrNotFound,
						"field '%s' not found in '%s'", args[1], args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderFields(fields))
			return nil
		},
	}
}

func newSetCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <field> <value>",
		Short: MsgSetShort,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}

			fields := prefs.NewMap()
			if err := store.Load(args[0], &fields); err != nil {
				if !errors.IsErrorCode(err, errors.ErrNotFound) {
					return err
				}
				// First field of a new preference
				fields = prefs.NewMap()
			}

			fields.Set(args[1], args[2])
			if err := store.Save(args[0], fields); err != nil {
				return err
			}

			log.Info().Str("key", args[0]).Str("field", args[1]).Msg("Preference saved")
			fmt.Fprintf(cmd.OutOrStdout(), MsgSetFormat, style.Key(args[1]), args[2], args[0])
			return nil
		},
	}
}

func newListCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}

			keys, err := store.Keys()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderKeyList(keys))
			return nil
		},
	}
}

func newDeleteCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: MsgDeleteShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), MsgDeletedFormat, args[0])
			return nil
		},
	}
}

func newPathCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "path <key>",
		Short: MsgPathShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(flags)
			if err != nil {
				return err
			}

			path, err := store.Path(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "prefs version %s\n", versionString())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
