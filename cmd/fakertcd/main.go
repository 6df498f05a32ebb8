package main

import (
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/lanikai/fakertc/internal/logging"
	"github.com/lanikai/fakertc/internal/signaling"
)

// Populated via -ldflags="-X ...".
var GitRevisionId string

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		version()
		os.Exit(0)
	}

	// Loggers derived from here on, including per-connection ones, pick this up.
	if flagLogLevel != "" {
		if err := logging.Configure(flagLogLevel); err != nil {
			logging.DefaultLogger.Error("Invalid --log-level: %v", err)
			os.Exit(2)
		}
	}
	log := logging.DefaultLogger.WithTag("fakertcd")

	config := signaling.Config{Port: flagPort}
	if flagConfig != "" {
		c, err := signaling.LoadConfig(flagConfig)
		if err != nil {
			log.Error("%v", err)
			os.Exit(1)
		}
		config = *c
		if flag.CommandLine.Changed("port") {
			config.Port = flagPort
		}
	}

	server := signaling.NewServer(config)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := <-sigs
		log.Info("Received %v, shutting down", sig)
		if err := server.Shutdown(); err != nil {
			log.Warn("%v", err)
		}
	}()

	if err := server.Listen(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	<-done
	log.Info("Stopped")
}
