package payment

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/cardstream/cardstream/internal/bank"
)

const idempotencyKeyHeader = "Idempotency-Key"

// Handler exposes payment endpoints for merchants.
type Handler struct {
	service *Service
}

// NewHandler constructs a payment handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type postPaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth *int   `json:"expiry_month"`
	ExpiryYear  *int   `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      *int64 `json:"amount"`
	CVV         string `json:"cvv"`
}

// Post processes a new card payment. The Idempotency-Key header is optional;
// when present, repeated requests with the same key return the original
// outcome without reprocessing through the bank.
func (h *Handler) Post(c *fiber.Ctx) error {
	var req postPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "malformed request body")
	}

	input := ProcessInput{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Currency:    req.Currency,
		Amount:      req.Amount,
		CVV:         req.CVV,
	}

	res, err := h.service.Process(c.UserContext(), &input, c.Get(idempotencyKeyHeader))
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			return fiber.NewError(http.StatusBadRequest, verr.Error())
		case errors.Is(err, bank.ErrUnavailable):
			return fiber.NewError(http.StatusBadGateway, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(res)
}

// Get retrieves a previously processed payment by identifier.
func (h *Handler) Get(c *fiber.Ctx) error {
	id := c.Params("id")

	res, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(http.StatusNotFound, "Payment not found with ID: "+id)
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(res)
}
