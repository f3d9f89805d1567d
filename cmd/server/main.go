package main // Entry point package

import (
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iliyamo/storage-booking/internal/utils"
)

const appName = "storage-booking"

var logCloser io.Closer

func main() {
	root := &cobra.Command{
		Use:           appName,
		Short:         "RV and boat storage booking API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load() // .env is optional
			logCloser = utils.InitLogger(appName)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logCloser != nil {
				_ = logCloser.Close()
			}
		},
	}
	serve := serveCmd()
	root.RunE = serve.RunE // bare invocation serves
	root.AddCommand(serve, migrateCmd(), seedCmd())

	if err := root.Execute(); err != nil {
		utils.Logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
