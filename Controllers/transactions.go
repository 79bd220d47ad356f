package Controllers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventaris/Ledger"
	"Inventaris/Models"
)

// TransactionController handles the movement log endpoints.
//
// Create serializes {snapshot, validate, append} behind writeMu. The
// insufficient-stock gate is only meaningful if the stock it checked is
// still the stock at append time; without the lock two concurrent OUT
// requests could both pass against the same stale value.
type TransactionController struct {
	DB      *gorm.DB
	writeMu sync.Mutex
}

// NewTransactionController creates a new TransactionController
func NewTransactionController(db *gorm.DB) *TransactionController {
	return &TransactionController{DB: db}
}

// GetTransactions retrieves the whole movement log, oldest first.
func (c *TransactionController) GetTransactions(ctx *fiber.Ctx) error {
	var transactions []Models.StockTransaction
	result := c.DB.Order("date ASC, id ASC").Find(&transactions)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}
	return ctx.JSON(transactions)
}

type CreateTransactionInput struct {
	Date     string `json:"date" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=IN OUT"`
	ItemID   string `json:"itemId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required"`
	Notes    string `json:"notes"`
}

// CreateTransaction admits a new movement. The ledger validates it against
// the log as persisted so far; on success it is appended with a fresh id
// and the item's current name snapshotted onto it.
func (c *TransactionController) CreateTransaction(ctx *fiber.Ctx) error {
	var input CreateTransactionInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Date, type (IN/OUT), itemId and quantity are required"})
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	var items []Models.Item
	if err := c.DB.Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load items"})
	}
	var transactions []Models.StockTransaction
	if err := c.DB.Find(&transactions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load transactions"})
	}

	candidate := Ledger.Candidate{
		Date:     input.Date,
		Type:     input.Type,
		ItemID:   input.ItemID,
		Quantity: input.Quantity,
		Notes:    input.Notes,
	}
	if err := Ledger.ValidateNewTransaction(items, transactions, candidate); err != nil {
		return rejectCandidate(ctx, err)
	}

	var itemName string
	for _, item := range items {
		if item.ID == input.ItemID {
			itemName = item.Name
			break
		}
	}

	transaction := Models.StockTransaction{
		Date:     input.Date,
		Type:     input.Type,
		ItemID:   input.ItemID,
		ItemName: itemName,
		Quantity: input.Quantity,
		Notes:    input.Notes,
	}
	if err := c.DB.Create(&transaction).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save transaction"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(transaction)
}

// rejectCandidate maps ledger admission errors onto HTTP responses. Every
// rejection body carries enough context to be shown to the operator.
func rejectCandidate(ctx *fiber.Ctx, err error) error {
	var insufficient *Ledger.InsufficientStockError
	switch {
	case errors.Is(err, Ledger.ErrItemNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Referenced item not found"})
	case errors.Is(err, Ledger.ErrInvalidQuantity):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must be a positive integer"})
	case errors.Is(err, Ledger.ErrInvalidDate):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid date format. Use YYYY-MM-DD"})
	case errors.Is(err, Ledger.ErrInvalidType):
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Type must be IN or OUT"})
	case errors.As(err, &insufficient):
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     err.Error(),
			"itemId":    insufficient.ItemID,
			"itemName":  insufficient.ItemName,
			"available": insufficient.Available,
			"requested": insufficient.Requested,
		})
	default:
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
}

// DeleteTransaction removes a single movement from the log.
func (c *TransactionController) DeleteTransaction(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	var transaction Models.StockTransaction
	if err := c.DB.First(&transaction, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
	}

	if err := c.DB.Delete(&transaction).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}

	return ctx.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}
