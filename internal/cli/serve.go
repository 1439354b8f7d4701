package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vyper-tools/vyperdoc/internal/config"
	"github.com/vyper-tools/vyperdoc/internal/server"
)

var (
	servePortFlag   int
	serveOutputFlag string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the built HTML documentation over HTTP",
	Long: `Serve exposes the HTML documentation produced by 'vyperdoc build' on a
local HTTP server and runs until interrupted.

Examples:
  # Serve the built documentation on the configured port
  vyperdoc serve

  # Serve on a different port
  vyperdoc serve --port 9000

  # Serve documentation built into another output root
  vyperdoc serve --output ./site
`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePortFlag, "port", "p", 0, "Port to serve on (default from config)")
	serveCmd.Flags().StringVarP(&serveOutputFlag, "output", "o", "", "Output directory root the documentation was built into")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if serveOutputFlag != "" {
		cfg.Output = serveOutputFlag
	}
	if cmd.Flags().Changed("port") {
		cfg.Serve.Port = servePortFlag
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return server.NewServer(cfg.HTMLDir(), cfg.Serve.Port).Serve(ctx)
}
