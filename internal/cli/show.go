package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/notedeck/internal/present"
	"github.com/mithrel/notedeck/internal/util"
)

var showModes = []string{"pretty", "plain", "json", "html", "raw"}

const completionLimit = 20

func newShowCmd() *cobra.Command {
	var outputMode string
	cmd := &cobra.Command{
		Use:               "show <key>",
		Short:             "Display a note",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteKeys,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			if outputMode == "" {
				outputMode = "plain"
				if isTerminal(cmd.OutOrStdout()) {
					outputMode = "pretty"
				}
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeTUI || mode == present.ModeNDJSON {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			d, err := app.Notes.Show(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			opts := present.Options{
				Mode:   mode,
				Render: termOptions(app.Cfg.GetString("render.style"), app.Cfg.GetInt("render.width")),
			}
			return renderNote(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), d, opts)
		},
	}
	cmd.Flags().StringVar(&outputMode, "output", "", "output mode: pretty|plain|json|html|raw (default pretty on a terminal)")
	_ = cmd.RegisterFlagCompletionFunc("output", cobra.FixedCompletions(showModes, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

// completeNoteKeys fuzzy-matches note keys and titles from the snapshot.
func completeNoteKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	app, err := getApp(cmd)
	if err != nil {
		cobra.CompDebugln(err.Error(), true)
		return nil, cobra.ShellCompDirectiveError
	}
	snap, err := app.Source.Load(cmd.Context())
	if err != nil {
		cobra.CompDebugln(err.Error(), true)
		return nil, cobra.ShellCompDirectiveError
	}
	return util.CompleteNotes(toComplete, snap.Notes, completionLimit), cobra.ShellCompDirectiveNoFileComp
}
