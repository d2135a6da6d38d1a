package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/notedeck/internal/config"
	"github.com/mithrel/notedeck/internal/wire"
)

type ctxKey string

const appKey ctxKey = "app"

// skipAppAnnotation marks commands that run without a snapshot source.
const skipAppAnnotation = "notedeck/skip-app"

// Execute is the entrypoint: it builds the root cobra.Command
// and calls its Execute() method to run the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the Cobra root command and wires dependencies.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "notedeck",
		Short:         "notedeck: browse a synced notes snapshot",
		SilenceUsage:  true, // don't show usage on runtime errors
		SilenceErrors: true, // let main print errors once
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipApp(cmd) {
				return nil
			}
			app, err := buildApp(cmd)
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, app))
			return nil
		},
	}

	cmd.PersistentFlags().String("config", "", "path to config file (toml|yaml)")
	cmd.PersistentFlags().String("source", "", "snapshot file, \"-\" for stdin, or database URL (overrides config)")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newDocsCmd())

	cmd.Run = func(cmd *cobra.Command, args []string) { _ = cmd.Help() }

	return cmd
}

func skipApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[skipAppAnnotation]; ok {
			return true
		}
	}
	return cmd == cmd.Root()
}

// loadConfig resolves config file, env and flags into a fresh Viper.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	flags := cmd.Root().PersistentFlags()
	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
	}
	if err := config.Load(cmd.Context(), v); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("source", flags.Lookup("source")); err != nil {
		return nil, err
	}
	return v, nil
}

func buildApp(cmd *cobra.Command) (*wire.App, error) {
	v, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return wire.BuildApp(cmd.Context(), v, cmd.ErrOrStderr())
}

// getApp returns the app built in PersistentPreRunE. Completion functions run
// without that hook, so the app is built on demand there.
func getApp(cmd *cobra.Command) (*wire.App, error) {
	if cmd.Context() != nil {
		if app, ok := cmd.Context().Value(appKey).(*wire.App); ok {
			return app, nil
		}
	}
	if cmd.Context() == nil {
		cmd.SetContext(context.Background())
	}
	return buildApp(cmd)
}
