package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/onthi/internal/app"
	"github.com/abhisek/onthi/internal/controller"
)

// runApp opens the store, builds dependencies, and launches the TUI. Logs
// would corrupt the alternate screen, so they go to ONTHI_LOG_FILE or nowhere.
func runApp(cmd *cobra.Command, start *controller.StartRequest) error {
	e, err := openEnv(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info().Str("backend", e.cfg.Backend).Msg("starting terminal UI")
	return app.Run(app.Options{Controller: e.ctl, Start: start})
}
