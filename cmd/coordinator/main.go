package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cocode-dev/cocode/pkg/config"
	"github.com/cocode-dev/cocode/pkg/coordinator"
	"github.com/cocode-dev/cocode/pkg/logger"
	cos "github.com/cocode-dev/cocode/pkg/os"
	"github.com/spf13/cobra"
)

var Version = "?"

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.NewCoordinatorConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	root := &cobra.Command{
		Use:           "cocode",
		Short:         "Room session coordinator for the shared editor and canvas",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(*cobra.Command, []string) error { return run(conf) },
	}
	conf.AddFlags(root.PersistentFlags())
	root.AddCommand(serveCmd(&conf), versionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func serveCmd(conf *config.CoordinatorConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the coordinator (default)",
		Args:  cobra.NoArgs,
		RunE:  func(*cobra.Command, []string) error { return run(*conf) },
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run:   func(cmd *cobra.Command, _ []string) { cmd.Printf("cocode %s\n", Version) },
	}
}

func run(conf config.CoordinatorConfig) error {
	var log *logger.Logger
	if conf.Coordinator.Json {
		log = logger.New(conf.Coordinator.Debug)
	} else {
		log = logger.NewConsole(conf.Coordinator.Debug, "c", false)
	}

	log.Info().Msgf("version %s", Version)
	if log.GetLevel() < logger.InfoLevel {
		log.Debug().Msgf("config: %+v", conf)
	}
	c, err := coordinator.New(conf, log)
	if err != nil {
		return err
	}
	c.Start()
	<-cos.ExpectTermination()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := c.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("service shutdown errors")
	}
	return nil
}
