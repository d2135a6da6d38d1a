package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mithrel/notedeck/internal/config"
	"github.com/mithrel/notedeck/internal/present"
	"github.com/mithrel/notedeck/internal/render"
	"github.com/mithrel/notedeck/internal/util"
	"github.com/mithrel/notedeck/pkg/api"
)

var listModes = []string{"plain", "pretty", "json", "ndjson", "tui"}

func newListCmd() *cobra.Command {
	var search, sortField, sortOrder, outputMode string
	var noHeaders bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, optionally filtered and sorted",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			st := config.QueryState(app.Cfg)
			st.Search = search
			if cmd.Flags().Changed("sort") {
				f, ok := api.ParseSortField(sortField)
				if !ok {
					return fmt.Errorf("invalid --sort: %s", sortField)
				}
				st.Field = f
			}
			if cmd.Flags().Changed("order") {
				o, ok := api.ParseSortOrder(sortOrder)
				if !ok {
					return fmt.Errorf("invalid --order: %s", sortOrder)
				}
				st.Order = o
			}

			if outputMode == "" {
				outputMode = "plain"
				if isTerminal(cmd.OutOrStdout()) {
					outputMode = "tui"
				}
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok || mode == present.ModeHTML || mode == present.ModeRaw {
				return fmt.Errorf("invalid --output: %s", outputMode)
			}

			listing, err := app.Notes.List(cmd.Context(), st)
			if err != nil {
				return err
			}
			app.Log.Debug("listed notes", "shown", len(listing.Items), "total", listing.Total)

			opts := present.Options{
				Mode:       mode,
				JSONIndent: false, // pretty-print via external tools like jq
				Headers:    !noHeaders,
				Render:     termOptions(app.Cfg.GetString("render.style"), app.Cfg.GetInt("render.width")),
				Query:      st,
				Querier:    app.Notes,
			}
			return renderList(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), listing, opts)
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "case-insensitive substring matched against title and text")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort field: updated_date|created_date|title (default from config)")
	cmd.Flags().StringVar(&sortOrder, "order", "", "sort order: asc|desc (default from config)")
	cmd.Flags().StringVar(&outputMode, "output", "", "output mode: plain|pretty|json|ndjson|tui (default tui on a terminal)")
	cmd.Flags().BoolVar(&noHeaders, "noheaders", false, "hide column headers and the summary line (plain/tui)")

	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return util.ScoreCompletions(toComplete, listModes, 0), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		fields := make([]string, 0, len(api.SortFields))
		for _, f := range api.SortFields {
			fields = append(fields, string(f))
		}
		return util.ScoreCompletions(toComplete, fields, 0), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("order", cobra.FixedCompletions([]string{string(api.Asc), string(api.Desc)}, cobra.ShellCompDirectiveNoFileComp))
	return cmd
}

func termOptions(style string, width int) render.TermOptions {
	return render.TermOptions{Style: style, Width: width}
}
