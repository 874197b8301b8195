package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/divij2510/PurpleProse/internal/auth"
	"github.com/divij2510/PurpleProse/internal/config"
	"github.com/divij2510/PurpleProse/internal/posts"
	"github.com/divij2510/PurpleProse/internal/router"
	"github.com/divij2510/PurpleProse/internal/storage"
	"github.com/divij2510/PurpleProse/internal/users"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error creating pgx pool: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("error pinging database: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API is running"})
	})

	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)

	var uploader posts.Uploader
	if cfg.SupabaseURL != "" {
		uploader = storage.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseBucket)
	}

	userRepo := users.NewRepo(pool)
	userService := users.NewService(userRepo, tokens, auth.NewGoogleVerifier(cfg.GoogleClientID))
	postRepo := posts.NewRepo(pool)
	postHandler := posts.NewHandler(postRepo, uploader, cfg.MaxImageBytes, pool)
	userHandler := users.NewHandler(userService, postRepo, pool)

	r := &router.Router{
		UsersHandler: userHandler,
		PostsHandler: postHandler,
		AuthMW:       auth.Middleware(tokens),
	}
	r.RegisterRoutes(app)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
