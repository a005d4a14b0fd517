package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codesage/src/service/parser"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("codesage %s\n", h.cfg.Agent.Version)
			fmt.Printf("supported extensions: %s\n", strings.Join(parser.SupportedExtensions(), ", "))
		},
	}
}

func (h *Handler) detectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detectors",
		Short: "List available detectors",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Available detectors:")
			fmt.Println("  - complexity  : Cyclomatic complexity and nesting depth")
			fmt.Println("  - size        : Long functions, large files, parameter lists")
			fmt.Println("  - duplication : Copied token runs across functions and files")
			fmt.Println("  - bugs        : Likely-defective patterns such as empty catch blocks")
		},
	}
}
