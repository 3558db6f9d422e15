package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"shipping/cmd"
	adapterhttp "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/postgres/orderrepo"
	"shipping/internal/adapters/out/postgres/refrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)

	jobManager, err := app.CreateJobManager(logger)
	if err != nil {
		log.Fatalf("Failed to create job manager: %v", err)
	}
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                   goDotEnvVariable("HTTP_PORT"),
		DBHost:                     goDotEnvVariable("DB_HOST"),
		DBPort:                     goDotEnvVariable("DB_PORT"),
		DBUser:                     goDotEnvVariable("DB_USER"),
		DBPassword:                 goDotEnvVariable("DB_PASSWORD"),
		DBName:                     goDotEnvVariable("DB_NAME"),
		DBSslMode:                  goDotEnvVariable("DB_SSLMODE"),
		BoardPolicy:                goDotEnvVariable("BOARD_POLICY"),
		DisallowNegativeGrandTotal: goDotEnvVariable("DISALLOW_NEGATIVE_GRAND_TOTAL") == "true",
		StaleDraftMaxAgeHours:      goDotEnvIntVariable("STALE_DRAFT_MAX_AGE_HOURS"),
		StaleDraftCronSpec:         goDotEnvVariable("STALE_DRAFT_CRON_SPEC"),
		RateCardAuditCronSpec:      goDotEnvVariable("RATE_CARD_AUDIT_CRON_SPEC"),
		SystemUserID:               goDotEnvVariable("SYSTEM_USER_ID"),
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

func goDotEnvIntVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Invalid integer value for %s", key)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.GoodsItemDTO{},
		&orderrepo.SurchargeDTO{}, &orderrepo.HistoryDTO{},
		&refrepo.RouteDTO{}, &refrepo.ServiceDTO{}, &refrepo.RateCardDTO{},
		&refrepo.InsurancePackageDTO{}, &refrepo.SurchargeTypeDTO{}, &refrepo.BranchDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := adapterhttp.NewServer(
		app.CreateCreateShippingOrderCommandHandler(),
		app.CreateRepriceShippingOrderCommandHandler(),
		app.CreateTransitionShippingOrderCommandHandler(),
		app.CreateMoveOrderOnBoardCommandHandler(),
		app.CreateGetShippingOrderQueryHandler(),
		app.CreateGetOrderBoardQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
