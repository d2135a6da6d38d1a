package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd writes Markdown and man pages for every command.
func newDocsCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:         "gen-docs",
		Short:       "Generate Markdown and man pages",
		Hidden:      true,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipAppAnnotation: ""},
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			root.DisableAutoGenTag = true
			mdDir := filepath.Join(dir, "markdown")
			manDir := filepath.Join(dir, "man")
			for _, d := range []string{mdDir, manDir} {
				if err := os.MkdirAll(d, 0o755); err != nil {
					return err
				}
			}
			if err := doc.GenMarkdownTree(root, mdDir); err != nil {
				return err
			}
			header := &doc.GenManHeader{
				Title:   "NOTEDECK",
				Section: "1",
			}
			return doc.GenManTree(root, header, manDir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "./docs", "output directory")
	return cmd
}
