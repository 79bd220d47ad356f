package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Inventaris/Models"
)

func TestCreateItem_NormalizesIDAndPersists(t *testing.T) {
	app, db := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/items", map[string]interface{}{
		"id": "laptop-001", "name": "Laptop Core i7", "stock": 15, "unit": "Unit",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created Models.Item
	decodeBody(t, resp, &created)
	assert.Equal(t, "LAPTOP-001", created.ID)

	var stored Models.Item
	require.NoError(t, db.First(&stored, "id = ?", "LAPTOP-001").Error)
	assert.Equal(t, 15, stored.Stock)
}

func TestCreateItem_DuplicateIDRejected(t *testing.T) {
	app, _ := newTestApp(t)
	createItem(t, app, "HDD-010", "SSD 512GB", 50)

	resp := doRequest(t, app, "POST", "/api/items", map[string]interface{}{
		"id": "hdd-010", "name": "Another SSD", "stock": 1, "unit": "Pcs",
	})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestCreateItem_MissingFieldsRejected(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "POST", "/api/items", map[string]interface{}{
		"id": "X-1", "stock": 5,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpdateItem_RenameDoesNotRewriteHistory(t *testing.T) {
	app, db := newTestApp(t)
	createItem(t, app, "MON-01", "Monitor 24 inch", 5)

	resp := createTransaction(t, app, "2025-04-01", Models.TypeIn, "MON-01", 3)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, "PUT", "/api/items/MON-01", map[string]interface{}{
		"name": "Monitor 27 inch", "stock": 5, "unit": "Unit",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var transaction Models.StockTransaction
	require.NoError(t, db.First(&transaction, "item_id = ?", "MON-01").Error)
	assert.Equal(t, "Monitor 24 inch", transaction.ItemName,
		"historical snapshot must keep the old name")
}

func TestUpdateItem_NotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doRequest(t, app, "PUT", "/api/items/GHOST", map[string]interface{}{
		"name": "Ghost", "stock": 0, "unit": "Unit",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestDeleteItem_CascadesToTransactions(t *testing.T) {
	app, db := newTestApp(t)
	createItem(t, app, "X", "Laptop", 100)
	createItem(t, app, "Y", "Monitor", 10)

	for _, qty := range []int{5, 3, 2} {
		resp := createTransaction(t, app, "2025-04-01", Models.TypeOut, "X", qty)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}
	resp := createTransaction(t, app, "2025-04-02", Models.TypeIn, "Y", 1)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, "DELETE", "/api/items/X", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var orphans int64
	require.NoError(t, db.Model(&Models.StockTransaction{}).Where("item_id = ?", "X").Count(&orphans).Error)
	assert.Zero(t, orphans, "no transaction may reference a deleted item")

	var remaining int64
	require.NoError(t, db.Model(&Models.StockTransaction{}).Count(&remaining).Error)
	assert.Equal(t, int64(1), remaining, "other items' transactions survive")
}

func TestGetItemStock_DerivesFromLog(t *testing.T) {
	app, _ := newTestApp(t)
	createItem(t, app, "X", "Laptop", 10)

	resp := createTransaction(t, app, "2025-04-01", Models.TypeIn, "X", 5)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, app, "GET", "/api/items/X/stock", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stock struct {
		FinalStock int `json:"finalStock"`
	}
	decodeBody(t, resp, &stock)
	assert.Equal(t, 15, stock.FinalStock)
}
