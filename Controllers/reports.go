package Controllers

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"Inventaris/Ledger"
	"Inventaris/Models"
)

// ReportController serves the derived stock and movement views and their
// spreadsheet exports. Every view is recomputed from the live log on each
// request; nothing derived is ever cached.
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// LowStockThreshold is the level below which an item is flagged low.
func LowStockThreshold() int {
	if raw := os.Getenv("LOW_STOCK_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			return n
		}
	}
	return 3
}

// StockRow is one line of the final stock report.
type StockRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Baseline   int    `json:"stock"`
	TotalIn    int    `json:"totalIn"`
	TotalOut   int    `json:"totalOut"`
	FinalStock int    `json:"finalStock"`
	Unit       string `json:"unit"`
	Low        bool   `json:"low"`
}

// TransactionRow is one line of the movement report, newest first, with
// the stock level that existed right after the movement. StockAfter is
// null when the movement's item has since been deleted.
type TransactionRow struct {
	Models.StockTransaction
	Unit       string `json:"unit"`
	StockAfter *int   `json:"stockAfter"`
}

func (c *ReportController) snapshot() ([]Models.Item, []Models.StockTransaction, error) {
	var items []Models.Item
	if err := c.DB.Find(&items).Error; err != nil {
		return nil, nil, err
	}
	var transactions []Models.StockTransaction
	if err := c.DB.Find(&transactions).Error; err != nil {
		return nil, nil, err
	}
	return items, transactions, nil
}

func filterFromQuery(ctx *fiber.Ctx) Ledger.Filter {
	return Ledger.Filter{
		DateFrom: ctx.Query("from"),
		DateTo:   ctx.Query("to"),
		Type:     ctx.Query("type"),
		Search:   ctx.Query("search"),
	}
}

func (c *ReportController) stockRows(filter Ledger.Filter) ([]StockRow, error) {
	items, transactions, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	finals := Ledger.FinalStocks(items, transactions)
	movements := Ledger.Movements(transactions)
	threshold := LowStockThreshold()

	rows := make([]StockRow, 0, len(finals))
	for _, f := range finals {
		if !filter.MatchItem(f.Item) {
			continue
		}
		m := movements[f.ID]
		rows = append(rows, StockRow{
			ID:         f.ID,
			Name:       f.Name,
			Baseline:   f.Stock,
			TotalIn:    m.In,
			TotalOut:   m.Out,
			FinalStock: f.FinalStock,
			Unit:       f.Unit,
			Low:        f.FinalStock < threshold,
		})
	}
	return rows, nil
}

func (c *ReportController) transactionRows(filter Ledger.Filter) ([]TransactionRow, error) {
	items, transactions, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	finals := Ledger.FinalStocks(items, transactions)
	after := Ledger.StockAfter(finals, transactions)

	units := make(map[string]string, len(items))
	for _, item := range items {
		units[item.ID] = item.Unit
	}

	rows := make([]TransactionRow, 0, len(transactions))
	for _, t := range filter.Apply(Ledger.SortNewestFirst(transactions)) {
		row := TransactionRow{StockTransaction: t, Unit: units[t.ItemID]}
		if level, ok := after[t.ID]; ok {
			row.StockAfter = &level
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// GetStockReport returns the final stock list, optionally narrowed by
// ?search= over item name or id.
func (c *ReportController) GetStockReport(ctx *fiber.Ctx) error {
	rows, err := c.stockRows(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build stock report"})
	}
	return ctx.JSON(rows)
}

// GetTransactionReport returns the filtered movement history, newest
// first, with the running balance after each movement.
func (c *ReportController) GetTransactionReport(ctx *fiber.Ctx) error {
	rows, err := c.transactionRows(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build transaction report"})
	}
	return ctx.JSON(rows)
}

// Summary returns the dashboard card numbers.
func (c *ReportController) Summary(ctx *fiber.Ctx) error {
	items, transactions, err := c.snapshot()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build summary"})
	}

	finals := Ledger.FinalStocks(items, transactions)
	threshold := LowStockThreshold()

	var totalIn, totalOut, lowCount int
	for _, m := range Ledger.Movements(transactions) {
		totalIn += m.In
		totalOut += m.Out
	}
	for _, f := range finals {
		if f.FinalStock < threshold {
			lowCount++
		}
	}

	return ctx.JSON(fiber.Map{
		"itemCount":        len(items),
		"transactionCount": len(transactions),
		"totalIn":          totalIn,
		"totalOut":         totalOut,
		"lowStockCount":    lowCount,
	})
}

// ExportStock downloads the current (filtered) final stock list as xlsx.
func (c *ReportController) ExportStock(ctx *fiber.Ctx) error {
	rows, err := c.stockRows(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build stock report"})
	}

	headers := []string{"Item ID", "Item Name", "Baseline Stock", "Stock In", "Stock Out", "Final Stock", "Unit"}
	buf, err := writeSheet("Final Stock", headers, len(rows), func(row int) []interface{} {
		r := rows[row]
		return []interface{}{r.ID, r.Name, r.Baseline, r.TotalIn, r.TotalOut, r.FinalStock, r.Unit}
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate spreadsheet"})
	}

	return sendSpreadsheet(ctx, buf, fmt.Sprintf("final-stock-%s.xlsx", time.Now().Format("2006-01-02")))
}

// ExportTransactions downloads the movement report as xlsx, applying
// exactly the same filters as the on-screen report.
func (c *ReportController) ExportTransactions(ctx *fiber.Ctx) error {
	rows, err := c.transactionRows(filterFromQuery(ctx))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build transaction report"})
	}

	headers := []string{"Date", "Type", "Item ID", "Item Name", "Quantity", "Unit", "Stock After", "Notes"}
	buf, err := writeSheet("Transactions", headers, len(rows), func(row int) []interface{} {
		r := rows[row]
		stockAfter := interface{}("N/A")
		if r.StockAfter != nil {
			stockAfter = *r.StockAfter
		}
		return []interface{}{r.Date, r.Type, r.ItemID, r.ItemName, r.Quantity, r.Unit, stockAfter, r.Notes}
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate spreadsheet"})
	}

	return sendSpreadsheet(ctx, buf, fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02")))
}

// writeSheet builds a single-sheet workbook with a bold header row.
func writeSheet(sheetName string, headers []string, rowCount int, cells func(row int) []interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for row := 0; row < rowCount; row++ {
		for col, value := range cells(row) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("error writing Excel file to buffer: %v", err)
	}
	return &buf, nil
}

func sendSpreadsheet(ctx *fiber.Ctx, buf *bytes.Buffer, filename string) error {
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return ctx.Send(buf.Bytes())
}
