package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/fadilmartias/applicant-portal/internal/config"
	"github.com/fadilmartias/applicant-portal/internal/database"
	"github.com/fadilmartias/applicant-portal/internal/domain/fiber/handler"
	"github.com/fadilmartias/applicant-portal/internal/geo"
	"github.com/fadilmartias/applicant-portal/internal/repository"
	"github.com/fadilmartias/applicant-portal/internal/service"
	"github.com/fadilmartias/applicant-portal/internal/storage"
	"github.com/fadilmartias/applicant-portal/internal/usecase"
	"github.com/fadilmartias/applicant-portal/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

// Room for two 5MB documents plus the text fields.
const bodyLimit = 12 * 1024 * 1024

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	adminConfig := config.LoadAdminConfig()
	storageConfig := config.LoadStorageConfig()
	util.SetProduction(appConfig.IsProduction())

	if adminConfig.Password == "" {
		log.Println("Warning: ADMIN_PASSWORD not set, admin login is disabled")
	}

	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: bodyLimit,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	catalog := loadCatalog(config.LoadCitiesConfig())
	table := newApplicationTable(storageConfig)
	files, localFiles := newFileStorage(appConfig, storageConfig)
	gate := auth.NewGate(adminConfig, appConfig.IsProduction())

	uc := usecase.NewApplicationUsecase(table, files, catalog)
	cities := service.NewCityService(config.LoadCitiesConfig(), catalog)

	handler.NewApplicationHandler(uc, gate).RegisterRoutes(app)
	handler.NewAdminHandler(uc, gate).RegisterRoutes(app)
	handler.NewCityHandler(cities, catalog).RegisterRoutes(app)
	if localFiles != nil {
		handler.NewFileHandler(localFiles).RegisterRoutes(app)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func loadCatalog(cfg *config.CitiesConfig) *geo.Catalog {
	if cfg.CatalogPath == "" {
		return geo.DefaultCatalog()
	}
	catalog, err := geo.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Could not load city catalog: %v", err)
	}
	log.Printf("Loaded city catalog from %s", cfg.CatalogPath)
	return catalog
}

func newApplicationTable(cfg *config.StorageConfig) repository.ApplicationTable {
	switch cfg.DataBackend {
	case config.BackendSupabase:
		supabase := config.LoadSupabaseConfig()
		if supabase.URL == "" || supabase.ServiceRoleKey == "" {
			log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase data backend")
		}
		return repository.NewSupabaseRepository(supabase)
	case config.BackendPostgres:
		db, err := database.Connect(config.LoadDBConfig(), config.LoadAppConfig().IsProduction())
		if err != nil {
			log.Fatal(err)
		}
		return repository.NewPostgresRepository(db)
	default:
		log.Fatalf("Unknown DATA_BACKEND %q", cfg.DataBackend)
		return nil
	}
}

// newFileStorage also returns the local backend when selected, since it
// needs the /files/:token download route.
func newFileStorage(appConfig *config.AppConfig, cfg *config.StorageConfig) (storage.FileStorage, *storage.LocalStorage) {
	switch cfg.FileBackend {
	case config.BackendSupabase:
		supabase := config.LoadSupabaseConfig()
		if supabase.URL == "" || supabase.ServiceRoleKey == "" {
			log.Fatal("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase file backend")
		}
		return storage.NewSupabaseStorage(supabase), nil
	case config.BackendLocal:
		local, err := storage.NewLocalStorage(cfg.LocalDir, appConfig.BaseURL, cfg.SigningSecret)
		if err != nil {
			log.Fatalf("Could not set up local file storage: %v", err)
		}
		return local, local
	default:
		log.Fatalf("Unknown FILE_BACKEND %q", cfg.FileBackend)
		return nil, nil
	}
}
