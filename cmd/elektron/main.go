package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"elektron/internal/api"
	"elektron/internal/config"
	"elektron/internal/data"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("elektron: %v", err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ELEKTRON_CONFIG"))
	if err != nil {
		return err
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level, err = zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logCfg.OutputPaths = []string{"stdout"}
	logCfg.ErrorOutputPaths = []string{"stdout"}
	logCfg.Sampling = nil
	logger := zap.Must(logCfg.Build(zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)))
	defer func() {
		_ = logger.Sync() // flushes buffer, if any.
	}()
	zap.ReplaceGlobals(logger)

	configureGin(cfg.Env)

	client := data.NewSpotPriceClient(cfg.UpstreamBaseURL, cfg.Zone, nil)
	router := api.NewRouter(cfg, client)

	logger.Info("starting server",
		zap.String("addr", cfg.Addr()),
		zap.String("zone", cfg.Zone),
		zap.String("font_dir", cfg.FontDir))
	fmt.Printf("Server running on http://localhost:%d\n", cfg.BindPort)

	return router.Run(cfg.Addr())
}

// configureGin sends gin's debug output to stderr, keeping stdout to the
// startup line and the log stream, and switches gin to release mode in
// production.
func configureGin(env string) {
	gin.DefaultWriter = os.Stderr
	gin.DefaultErrorWriter = os.Stderr
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
}
