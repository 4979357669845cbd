package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information - will be set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pkglens",
		Short: "Manifest annotation engine and language server",
		Long: `pkglens annotates package-manifest documents: it locates every field,
section header, and dependency entry in the source text, serves hover and
code-lens annotations over LSP, and fetches live registry metadata per
dependency on demand.`,
		Version: buildVersion(),
	}
	rootCmd.SetVersionTemplate("pkglens {{.Version}}\n")

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(annotateCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
