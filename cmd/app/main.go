package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"ewaste/cmd"
	"ewaste/internal/adapters/out/postgres/pickuplogrepo"
	"ewaste/internal/adapters/out/postgres/pickuprepo"
	"ewaste/internal/adapters/out/postgres/workerrepo"
	"ewaste/internal/core/application/usecases/queries"
	"ewaste/internal/core/domain/services"
	"ewaste/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	configs := getConfigs()

	gormDB, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err = gormDB.AutoMigrate(
		&workerrepo.WorkerDTO{},
		&pickuprepo.PickupRequestDTO{},
		&pickuplogrepo.PickupLogDTO{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer app.Close()

	service := app.CreateOrchestrator()
	jobManager := app.CreateJobManager(service)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app.CreateEcho(service), configs.HTTPPort)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:   envOr("HTTP_PORT", "8080"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     envOr("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),

		GoogleMapsAPIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
		GeocodeBaseURL:   os.Getenv("GEOCODE_BASE_URL"),
		GeocodeTimeout:   durationVariable("GEOCODE_TIMEOUT", 5*time.Second),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		GeocodeCacheTTL:  durationVariable("GEOCODE_CACHE_TTL", 720*time.Hour),

		RabbitMQURL: os.Getenv("RABBITMQ_URL"),

		MaxAssignmentsPerWorker: intVariable("MAX_ASSIGNMENTS_PER_WORKER", services.DefaultMaxAssignmentsPerWorker),
		AssignmentCountOpenOnly: boolVariable("ASSIGNMENT_COUNT_OPEN_ONLY", false),
		AssignmentJobSchedule:   envOr("ASSIGNMENT_JOB_SCHEDULE", jobs.DefaultAssignmentSchedule),
		NearbyDefaultRadiusKm:   floatVariable("NEARBY_DEFAULT_RADIUS_KM", queries.DefaultNearbyRadiusKm),
	}
	return config
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func durationVariable(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return d
}

func intVariable(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return v
}

func floatVariable(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return v
}

func boolVariable(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Fatalf("%s: %v", key, err)
	}
	return v
}

type webServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

func startWebServer(e webServer, port string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error(err)
	}
}
