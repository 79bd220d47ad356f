package Controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Inventaris/Controllers"
	"Inventaris/Models"
)

// newTestApp wires the controllers onto a fresh fiber app over a throwaway
// sqlite database. Auth middleware is not mounted; these tests exercise
// the resource handlers, not the session layer.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Models.Item{}, &Models.StockTransaction{}))

	itemController := Controllers.NewItemController(db)
	transactionController := Controllers.NewTransactionController(db)
	reportController := Controllers.NewReportController(db)

	app := fiber.New()
	app.Get("/api/items", itemController.GetItems)
	app.Post("/api/items", itemController.CreateItem)
	app.Get("/api/items/:id/stock", itemController.GetItemStock)
	app.Put("/api/items/:id", itemController.UpdateItem)
	app.Delete("/api/items/:id", itemController.DeleteItem)

	app.Get("/api/transactions", transactionController.GetTransactions)
	app.Post("/api/transactions", transactionController.CreateTransaction)
	app.Delete("/api/transactions/:id", transactionController.DeleteTransaction)

	app.Get("/api/reports/stock", reportController.GetStockReport)
	app.Get("/api/reports/stock/export", reportController.ExportStock)
	app.Get("/api/reports/transactions", reportController.GetTransactionReport)
	app.Get("/api/reports/transactions/export", reportController.ExportTransactions)
	app.Get("/api/stats/summary", reportController.Summary)

	return app, db
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func createItem(t *testing.T, app *fiber.App, id, name string, stock int) {
	t.Helper()
	resp := doRequest(t, app, "POST", "/api/items", fiber.Map{
		"id": id, "name": name, "stock": stock, "unit": "Unit",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func createTransaction(t *testing.T, app *fiber.App, date, typ, itemID string, qty int) *http.Response {
	t.Helper()
	return doRequest(t, app, "POST", "/api/transactions", fiber.Map{
		"date": date, "type": typ, "itemId": itemID, "quantity": qty,
	})
}
