package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog/log"

	"github.com/amane-app/amane-go/internal/config"
	"github.com/amane-app/amane-go/upload"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatal().Err(err).Msg("error running upload proxy")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("upload proxy stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName() + " upload")

	// A proxy without storage credentials still serves: every upload
	// answers with the configuration error instead.
	uploader, err := upload.NewS3Uploader(context.Background(), c)
	if err != nil {
		log.Warn().Err(err).Msg("object storage not configured")
		uploader = nil
	}

	var u upload.Uploader
	if uploader != nil {
		u = uploader
	}
	server := &http.Server{Addr: c.GetUploadListenAddr(), Handler: upload.NewServer(u)}
	go listenAndServe(server)
	waitForStopSignal()
	return shutdown(server)
}

func listenAndServe(server *http.Server) {
	log.Info().Str("addr", server.Addr).Msg("upload proxy listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
