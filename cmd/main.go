package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"solartap/internal/buildtool"
	"solartap/internal/command"
	"solartap/internal/device"
	"solartap/internal/handlers"
	"solartap/internal/logger"
	"solartap/internal/recorder"
	"solartap/internal/repository"
	"solartap/internal/repository/db"
	"solartap/internal/server"
	"solartap/internal/service"
	"solartap/internal/session"

	"github.com/spf13/viper"
)

const (
	defaultReadTimeoutMs = 100
	defaultBaud          = 9600
	shutdownGrace        = 10 * time.Second
)

func main() {
	// load config.yml
	if err := loadConfig(); err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(viper.GetString("log.level"))

	// open DB
	store, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}

	// open the device link; without it there is no session
	link, err := openLink(log)
	if err != nil {
		log.Fatalw("failed to open device link", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(store)
	status := session.NewStatus()
	rec := recorder.New(dataRoot(), log)
	sess := session.New(rec, repos.Events, repos.Experiments, status, log, os.Stdout)
	builder := buildtool.NewRunner(viper.GetString("firmware.dir"), os.Stdout)
	disp := command.NewDispatcher(link, builder, repos.Events, log, os.Stdout)

	interrupts, stopNotify := session.NotifyInterrupts()
	loop := session.NewLoop(sess, link, disp, interrupts, os.Stdin, os.Stdout, log)

	// observation API in the background
	services := service.NewService(repos, status)
	apiHandler := handlers.NewHandler(services, log)
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("http.port"), apiHandler, log)

	ctx, cancel := context.WithCancel(context.Background())
	code, runErr := loop.Run(ctx)
	cancel()
	stopNotify()
	if runErr != nil {
		log.Errorw("session terminated", "err", runErr)
	}

	shutdown(srv, store, link, log)
	os.Exit(code)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetDefault("log.level", logger.InfoLevel)
	viper.SetDefault("serial.baud", defaultBaud)
	viper.SetDefault("serial.read_timeout_ms", defaultReadTimeoutMs)
	viper.SetDefault("data.root", "data")
	viper.SetDefault("firmware.dir", "firmware")
	return viper.ReadInConfig()
}

func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "solartap.db")
		dbPath = "solartap.db"
	}
	return db.InitDB(dbPath)
}

// openLink opens the configured serial port, or the built-in simulator when
// device.simulate is set.
func openLink(log *logger.Logger) (device.Link, error) {
	readTimeout := time.Duration(viper.GetInt("serial.read_timeout_ms")) * time.Millisecond
	if viper.GetBool("device.simulate") {
		log.Infow("using simulated solar tap")
		return device.NewSimulator(readTimeout), nil
	}
	port := viper.GetString("serial.port")
	baud := viper.GetInt("serial.baud")
	log.Infow("opening serial link", "port", port, "baud", baud)
	return device.Open(port, baud, readTimeout)
}

func dataRoot() string {
	root := viper.GetString("data.root")
	if root == "" {
		root = "data"
	}
	return root
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("observation server stopped", "err", err)
		}
	}()
}

// shutdown drains the HTTP server and releases the link and database. Done
// explicitly because os.Exit skips deferred calls.
func shutdown(srv *server.Server, store *sql.DB, link device.Link, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("observation server forced to shutdown", "err", err)
	}
	if err := link.Close(); err != nil {
		log.Errorw("failed to close device link", "err", err)
	}
	if err := store.Close(); err != nil {
		log.Errorw("failed to close sqlite", "err", err)
	}
}
