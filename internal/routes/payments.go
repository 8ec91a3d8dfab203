package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cardstream/cardstream/internal/payment"
)

// RegisterPaymentRoutes wires payment endpoints.
func RegisterPaymentRoutes(r fiber.Router, h *payment.Handler) {
	r.Post("/payments", h.Post)
	r.Get("/payments/:id", h.Get)
}
