package Controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventaris/Ledger"
	"Inventaris/Models"
)

// ItemController handles the item master list endpoints.
type ItemController struct {
	DB *gorm.DB
}

// NewItemController creates a new ItemController
func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetItems retrieves all items, ordered by name.
func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	var items []Models.Item
	result := c.DB.Order("name ASC").Find(&items)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve items"})
	}
	return ctx.JSON(items)
}

type CreateItemInput struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
	Unit  string `json:"unit" validate:"required"`
}

// CreateItem creates a new item. The caller supplies the id; it is
// normalized to upper case and must be unique.
func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var input CreateItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ID, name and unit are required; stock cannot be negative"})
	}

	item := Models.Item{
		ID:    strings.ToUpper(strings.TrimSpace(input.ID)),
		Name:  strings.TrimSpace(input.Name),
		Stock: input.Stock,
		Unit:  strings.TrimSpace(input.Unit),
	}

	var existing Models.Item
	if err := c.DB.First(&existing, "id = ?", item.ID).Error; err == nil {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "An item with this ID already exists",
			"id":    item.ID,
		})
	}

	if err := c.DB.Create(&item).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An item with this ID already exists",
				"id":    item.ID,
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create item"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(item)
}

type UpdateItemInput struct {
	Name  string `json:"name" validate:"required"`
	Stock int    `json:"stock" validate:"gte=0"`
	Unit  string `json:"unit" validate:"required"`
}

// UpdateItem renames or re-values an item. The id is immutable and
// historical movement records keep the name they were recorded under.
func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id := strings.ToUpper(ctx.Params("id"))

	var item Models.Item
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var input UpdateItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name and unit are required; stock cannot be negative"})
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Stock = input.Stock
	item.Unit = strings.TrimSpace(input.Unit)

	if err := c.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update item"})
	}

	return ctx.JSON(item)
}

// DeleteItem removes an item together with every movement that references
// it, in one database transaction. No orphan movements may survive.
func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	id := strings.ToUpper(ctx.Params("id"))

	var item Models.Item
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&Models.StockTransaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete item"})
	}

	return ctx.JSON(fiber.Map{"message": "Item and related transactions deleted"})
}

// GetItemStock returns the derived current stock for one item.
func (c *ItemController) GetItemStock(ctx *fiber.Ctx) error {
	id := strings.ToUpper(ctx.Params("id"))

	var item Models.Item
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var transactions []Models.StockTransaction
	if err := c.DB.Where("item_id = ?", id).Find(&transactions).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve transactions"})
	}

	finals := Ledger.FinalStocks([]Models.Item{item}, transactions)
	return ctx.JSON(finals[0])
}
