package middleware

import (
	"errors"
	"log"
	"time"

	"libraryhub/internal/config"
	"libraryhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// LoginAttemptsPerMinute is the per-IP budget of POST /auth/login
const LoginAttemptsPerMinute = 5

const accessLogFormat = "${time} | ${locals:requestid} | ${status} | ${latency} | ${ip} | ${method} | ${path}"

// Setup installs the global middleware chain, outermost first
func Setup(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))

	// The API serves JSON only, so the document-oriented headers stay strict
	app.Use(helmet.New(helmet.Config{
		ContentTypeNosniff:        "nosniff",
		XFrameOptions:             "DENY",
		ReferrerPolicy:            "no-referrer",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-site",
	}))

	app.Use(rateLimiter(cfg.RateLimitPerMinute(), "", "Too many requests"))
	app.Use(accessLogger(cfg))
	app.Use(corsFor(cfg))
}

// AuthRateLimiter throttles login attempts per client IP
func AuthRateLimiter() fiber.Handler {
	return rateLimiter(LoginAttemptsPerMinute, "-login", "Too many login attempts")
}

func rateLimiter(max int, keySuffix, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + keySuffix
		},
		LimitReached: func(c *fiber.Ctx) error {
			return response.Error(c, fiber.StatusTooManyRequests, message)
		},
	})
}

func accessLogger(cfg *config.Config) fiber.Handler {
	if cfg.IsDev() {
		return logger.New(logger.Config{Format: accessLogFormat + "\n"})
	}
	return logger.New(logger.Config{
		Format:     accessLogFormat + " | ${error}\n",
		TimeFormat: time.DateTime,
	})
}

func corsFor(cfg *config.Config) fiber.Handler {
	c := cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization",
		ExposeHeaders: fiber.HeaderXRequestID,
	}
	// Credentials are never combined with the wildcard origin
	if origins := cfg.GetAllowedOrigins(); origins != "*" {
		c.AllowOrigins = origins
		c.AllowCredentials = true
	}
	return cors.New(c)
}

// CustomErrorHandler renders errors that escape handlers in the response envelope
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return response.Error(c, e.Code, e.Message)
	}

	log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
	return response.InternalServerError(c, "An unexpected error occurred")
}
