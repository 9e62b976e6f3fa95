package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	var gormDB *gorm.DB
	if dsn := configs.DSN(); dsn != "" {
		db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := db.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		gormDB = db
	}

	root := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer root.Close()

	if err := root.RegisterEventHandlers(); err != nil {
		log.Fatalf("Failed to register event handlers: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	return cmd.Config{
		HTTPPort:       envOr("HTTP_PORT", "8080"),
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         envOr("DB_PORT", "5432"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBSslMode:      envOr("DB_SSLMODE", "disable"),
		AmqpURL:        os.Getenv("AMQP_URL"),
		AmqpExchange:   os.Getenv("AMQP_EXCHANGE"),
		OtpTTLMinutes:  envInt("OTP_TTL_MINUTES"),
		OtpMaxAttempts: envInt("OTP_MAX_ATTEMPTS"),
		InboxCapacity:  envInt("INBOX_CAPACITY"),
		Pickers:        cmd.SplitPool(os.Getenv("PICKERS")),
		Packers:        cmd.SplitPool(os.Getenv("PACKERS")),
		Riders:         cmd.SplitPool(os.Getenv("RIDERS")),
		SweepSchedule:  os.Getenv("SWEEP_SCHEDULE"),
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}
	return value
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	root.CreateServer().RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
