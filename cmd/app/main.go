package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"lockers/cmd"
	httpin "lockers/internal/adapters/in/http"
	"lockers/internal/adapters/out/postgres"
	"lockers/internal/adapters/out/postgres/locationrepo"
	"lockers/internal/adapters/out/postgres/orderrepo"
	"lockers/internal/core/domain/model/kernel"
	"lockers/internal/core/domain/model/location"
	"lockers/internal/core/domain/model/locker"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	ctx := context.Background()

	db := mustConnectDB(configs)

	if configs.SeedDemoData {
		if err := seedDemoData(ctx, db); err != nil {
			log.Fatalf("Error seeding demo data: %v", err)
		}
	}

	root, err := cmd.NewCompositionRoot(ctx, configs, db, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		AccessCodeLength: intEnvVariable("ACCESS_CODE_LENGTH", 6),
		ReservationTTL:   durationEnvVariable("RESERVATION_TTL", 24*time.Hour),
		SweepSchedule:    stringEnvVariable("SWEEP_SCHEDULE", "*/10 * * * * *"),
		SeedDemoData:     os.Getenv("SEED_DEMO_DATA") == "true",
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func stringEnvVariable(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnvVariable(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return parsed
}

func durationEnvVariable(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return parsed
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&locationrepo.LocationDTO{},
		&locationrepo.LockerDTO{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return db
}

// seedDemoData creates one stocked location when the database holds none,
// so a fresh environment has capacity to allocate against.
func seedDemoData(ctx context.Context, db *gorm.DB) error {
	uow := postgres.NewGormUnitOfWorkFactory(db).Create()

	existing, err := uow.LocationRepository().GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	loc, err := location.NewLocation(kernel.NewUUID(), "742 Evergreen Terrace")
	if err != nil {
		return err
	}

	sizes := []kernel.SizeClass{
		kernel.SizeSmall, kernel.SizeSmall,
		kernel.SizeMedium, kernel.SizeMedium,
		kernel.SizeLarge, kernel.SizeLarge,
	}
	for _, size := range sizes {
		l, lockerErr := locker.NewLocker(kernel.NewUUID(), size)
		if lockerErr != nil {
			return lockerErr
		}
		if err = loc.AddLocker(l); err != nil {
			return err
		}
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}
	if err = uow.LocationRepository().Add(ctx, loc); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	return uow.Commit(ctx)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateAllocateLockerCommandHandler(),
		root.CreateCompletePickupCommandHandler(),
		root.CreateGetLocationCapacityQueryHandler(),
		root.CreateGetActiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
