package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carlog/internal/gemini"
	"carlog/internal/handlers"
	"carlog/internal/logger"
	"carlog/internal/repository"
	"carlog/internal/repository/db"
	"carlog/internal/server"
	"carlog/internal/service"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	gen := gemini.New(os.Getenv("GEMINI_API_KEY"), viper.GetString("gemini.model"))
	services := service.NewService(repos, gen, signingKey(log))
	apiHandler := handlers.NewHandler(services, log)

	// context for in-flight insight generations
	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "carlog.db")
		dbPath = "carlog.db"
	}
	return db.InitDB(dbPath)
}

// signingKey resolves the JWT signing secret: env first, config fallback.
func signingKey(log *logger.Logger) string {
	if key := os.Getenv("CARLOG_SIGNING_KEY"); key != "" {
		return key
	}
	key := viper.GetString("auth.signing_key")
	if key == "" {
		log.Fatalw("auth.signing_key not set; refusing to issue unsigned sessions")
	}
	return key
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
