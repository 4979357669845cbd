package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pkglens/pkglens/internal/manifest"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <manifest>",
	Short: "Print every located element of a manifest file",
	Long: `Parse a manifest file and report each top-level field, section header,
and dependency entry together with the byte span it occupies in the source
text. Exits non-zero when the manifest is malformed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		m, err := manifest.Parse(string(data))
		if err != nil {
			return err
		}

		writeReport(cmd.OutOrStdout(), m)
		return nil
	},
}

// writeReport prints the located elements of a manifest in source order.
func writeReport(w io.Writer, m *manifest.Manifest) {
	bold := color.New(color.Bold)
	keyColor := color.New(color.FgCyan)
	spanColor := color.New(color.FgHiBlack)

	bold.Fprintf(w, "%s", m.Name)
	if m.Version != "" {
		fmt.Fprintf(w, " v%s", m.Version)
	}
	if m.UUID != "" {
		spanColor.Fprintf(w, "  (%s)", m.UUID)
	}
	fmt.Fprintln(w)

	for _, loc := range m.Locations() {
		switch loc.Kind {
		case manifest.KindSectionHeader:
			fmt.Fprintln(w)
			bold.Fprintf(w, "[%s]", loc.Section)
			spanColor.Fprintf(w, "  %d..%d\n", loc.Span.Start, loc.Span.End)
		default:
			fmt.Fprint(w, "  ")
			keyColor.Fprintf(w, "%s", loc.Key)
			fmt.Fprintf(w, " = %q", loc.Value)
			spanColor.Fprintf(w, "  %d..%d\n", loc.Span.Start, loc.Span.End)
		}
	}
}
