package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leafdoctor/internal/config"
	"leafdoctor/internal/handlers"
	"leafdoctor/internal/imaging"
	"leafdoctor/internal/inference"
	"leafdoctor/internal/logger"
	"leafdoctor/internal/repository"
	"leafdoctor/internal/server"
	"leafdoctor/internal/service"
)

// @title       Leaf Doctor API
// @version     1.0
// @description Upload a leaf photo, get ranked plant-disease probabilities.
// @BasePath    /
func main() {
	// .env first so it can feed viper's env overrides
	config.LoadDotEnv()

	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}

	// init logger
	log := logger.Get(cfg.Log.Level, cfg.Log.Format)

	// load model
	engine, err := inference.NewONNXEngine(inference.ONNXConfig{
		ModelPath:         cfg.Model.Path,
		SharedLibraryPath: cfg.Model.SharedLibrary,
	})
	if err != nil {
		log.Fatalw("failed to load model", "path", cfg.Model.Path, "err", err)
	}
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			log.Errorw("failed to release model", "err", cerr)
		}
	}()

	interp, err := imaging.ParseInterpolation(cfg.Preprocess.Interpolation)
	if err != nil {
		log.Fatalw("invalid preprocess.interpolation", "err", err)
	}
	shape := engine.InputShape()
	pre := imaging.NewPreprocessor(shape, interp)

	labels := resolveLabels(cfg.ClassNames, engine.NumClasses(), log)
	log.Infow("model loaded",
		"path", cfg.Model.Path,
		"height", shape.Height,
		"width", shape.Width,
		"layout", shape.Layout,
		"classes", len(labels),
	)

	hasher, err := service.NewPasswordHasher(cfg.Auth.PasswordHasher)
	if err != nil {
		log.Fatalw("invalid auth.password_hasher", "err", err)
	}
	if _, weak := hasher.(service.SHA256Hasher); weak {
		log.Warnw("passwords are stored as unsalted sha256; set auth.password_hasher=bcrypt or argon2id to harden")
	}

	// wire dependencies
	repos := repository.NewRepository()
	classifier := service.NewClassifierService(pre, engine, labels)
	services := service.NewService(repos, hasher, classifier)
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		StaticDir:          cfg.Static.Dir,
		MaxMultipartMemory: cfg.Upload.MaxMemoryBytes,
	})

	// start HTTP server
	srv := server.New(server.Options{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	})
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, cfg.Server.ShutdownTimeout, log)
}

// resolveLabels parses CLASS_NAMES and fits it to the model's output width.
func resolveLabels(raw string, numClasses int, log *logger.Logger) []string {
	configured := inference.ParseClassNames(raw)
	if configured != nil && len(configured) != numClasses {
		log.Warnw("CLASS_NAMES does not match model output; padding or truncating",
			"configured", len(configured),
			"num_classes", numClasses,
		)
	}
	return inference.ResolveLabels(configured, numClasses)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		log.Infow("listening", "port", port)
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, timeout time.Duration, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
