package cosekey

import (
	"github.com/smithee-solutions/libcose/logger"
	"github.com/spf13/cobra"
)

type Context struct {
	Log logger.Logger
}

func NewRootCommand() *cobra.Command {
	var (
		ctx      Context
		logLevel string
	)
	cmd := cobra.Command{
		Use:   "cose-key [options]",
		Short: "COSE key inspection and encoding tool",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level logger.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return err
			}
			ctx.Log = newLogger(level)
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging verbosity (error, warn, info, debug)")

	cmd.AddCommand(newInspectCommand(&ctx))
	cmd.AddCommand(newEncodeCommand(&ctx))
	cmd.AddCommand(newListCommand(&ctx))

	return &cmd
}
