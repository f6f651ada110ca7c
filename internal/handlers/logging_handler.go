package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// LoggingHandler emits sample log lines at every severity so that log shipping
// can be checked end to end.
type LoggingHandler struct {
	log zerolog.Logger
}

func NewLoggingHandler(logger zerolog.Logger) *LoggingHandler {
	return &LoggingHandler{log: logger.With().Str("component", "logging-demo").Logger()}
}

// RegisterRoutes registers the logging routes with the Fiber router.
func (h *LoggingHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/logging")
	routes.Get("/test", h.HandleTest)
	routes.Get("/ecommerce", h.HandleEcommerce)
	routes.Get("/performance", h.HandlePerformance)
}

func (h *LoggingHandler) HandleTest(c *fiber.Ctx) error {
	h.log.Trace().Msg("A TRACE Message - most detailed level")
	h.log.Debug().Msg("A DEBUG Message - debugging information")
	h.log.Info().Msg("An INFO Message - general application information")
	h.log.Warn().Msg("A WARN Message - system warning")
	h.log.Error().Msg("An ERROR Message - application error")

	return c.SendString("Logs generated successfully. Check Kibana at http://localhost:5601 to view the logs.")
}

func (h *LoggingHandler) HandleEcommerce(c *fiber.Ctx) error {
	h.log.Info().Msg("User opened the product page")
	h.log.Debug().Msg("Looking up products in the database")
	h.log.Info().Int("productId", 123).Str("productName", "iPhone").Msg("Product added to cart")
	h.log.Warn().Int("productId", 456).Msg("Low stock for product")
	h.log.Error().Str("reason", "card declined").Msg("Payment processing failed")

	return c.SendString("E-commerce logs generated. Check the Kibana dashboard.")
}

func (h *LoggingHandler) HandlePerformance(c *fiber.Ctx) error {
	h.log.Info().Int("durationMs", 150).Msg("API response time")
	h.log.Debug().Int("durationMs", 45).Msg("SQL query executed")
	h.log.Warn().Float64("durationSec", 2.5).Msg("Slow response time")
	h.log.Error().Msg("Database connection timeout")

	return c.SendString("Performance logs generated.")
}
