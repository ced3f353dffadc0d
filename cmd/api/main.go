package main

import (
	"database/sql"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ogarmory/armory-backend/internal/cache"
	"github.com/ogarmory/armory-backend/internal/cart"
	"github.com/ogarmory/armory-backend/internal/catalog"
	"github.com/ogarmory/armory-backend/internal/category"
	"github.com/ogarmory/armory-backend/internal/checkout"
	"github.com/ogarmory/armory-backend/internal/config"
	"github.com/ogarmory/armory-backend/internal/ledger"
	"github.com/ogarmory/armory-backend/internal/middleware"
	"github.com/ogarmory/armory-backend/internal/rank"
	"github.com/ogarmory/armory-backend/internal/storefront"
	"github.com/ogarmory/armory-backend/internal/user"
)

// main wires dependencies and starts the HTTP server.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger())

	// repositories: Postgres when DATABASE_URL is set, in-memory otherwise
	var userRepo user.Repository
	var cartRepo cart.Repository
	var ledgerRepo ledger.Repository
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		defer db.Close()
		ensureSchema(db)
		userRepo = user.NewPostgresRepository(db)
		cartRepo = cart.NewPostgresRepository(db)
		ledgerRepo = ledger.NewPostgresRepository(db)
	} else {
		log.Warn().Msg("DATABASE_URL not set, using in-memory repositories")
		userRepo = user.NewInMemoryRepository(nil)
		cartRepo = cart.NewInMemoryRepository()
		ledgerRepo = ledger.NewInMemoryRepository()
	}

	var catalogCache cache.Cache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		catalogCache = cache.NewRedis(client, "armory:")
	} else {
		catalogCache = cache.NewMemory()
	}

	userService := user.NewService(userRepo)
	cartService := cart.NewService(cartRepo)
	ledgerService := ledger.NewService(ledgerRepo)
	checkoutService := checkout.NewService(cartService, ledgerService, userService, cfg.Checkout.TaxRate, cfg.Checkout.ChannelBaseURL)
	loader := catalog.NewLoader(cfg.Catalog.PrimaryURL, cfg.Catalog.SecondaryURL, catalogCache, cfg.Catalog.TTL, cfg.Catalog.FetchTimeout)
	storefrontClient := storefront.NewClient(cfg.Storefront.Endpoint, cfg.Storefront.AccessToken)

	userHandler := user.NewHandler(userService)
	cartHandler := cart.NewHandler(cartService)
	ledgerHandler := ledger.NewHandler(ledgerService, userService)
	checkoutHandler := checkout.NewHandler(checkoutService)
	rankHandler := rank.NewHandler(storefrontClient, userService)
	categoryHandler := category.NewHandler()
	catalogHandler := catalog.NewHandler(loader, ledgerService.HasPurchased)

	// public routes
	userHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// catalog GETs stay public, but a presented token is still parsed so
		// the purchase gate can open for authenticated browsers
		Filter: func(c *fiber.Ctx) bool {
			if c.Method() != fiber.MethodGet {
				return false
			}
			if c.Get("Authorization") != "" {
				return false
			}
			p := c.Path()
			return p == "/api/v1/products" || strings.HasPrefix(p, "/api/v1/product/")
		},
	}))

	// catalog routes sit behind the filter above: anonymous GETs pass
	// through, token-bearing ones get claims in locals
	catalogHandler.RegisterPublicRoutes(app)

	// protected routes
	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	ledgerHandler.RegisterProtectedRoutes(app)
	checkoutHandler.RegisterProtectedRoutes(app)
	rankHandler.RegisterProtectedRoutes(app)

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}
	return db
}

// ensureSchema creates the tables this service owns. Idempotent on purpose
// so restarts against an existing database are safe.
func ensureSchema(db *sql.DB) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            "userId" SERIAL PRIMARY KEY,
            email TEXT NOT NULL UNIQUE,
            password TEXT NOT NULL,
            "firstName" TEXT NOT NULL DEFAULT '',
            "lastName" TEXT NOT NULL DEFAULT '',
            "storefrontToken" TEXT,
            "purchaseId" integer[] NOT NULL DEFAULT ARRAY[]::integer[],
            "createAt" TEXT NOT NULL DEFAULT '',
            "updateAt" TEXT NOT NULL DEFAULT ''
        )`,
		`CREATE TABLE IF NOT EXISTS carts (
            "userId" INT PRIMARY KEY,
            snapshot jsonb NOT NULL DEFAULT '{}',
            "updateAt" TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            "purchaseId" SERIAL PRIMARY KEY,
            "userId" INT NOT NULL,
            items jsonb NOT NULL DEFAULT '[]',
            total numeric NOT NULL DEFAULT 0,
            method TEXT,
            "createdAt" TEXT
        )`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			panic(err)
		}
	}
}
