package Models

const (
	TypeIn  = "IN"
	TypeOut = "OUT"
)

// StockTransaction is one IN/OUT movement in the append-only log.
// ItemName is a snapshot of the item's name at recording time, so renaming
// an item never rewrites history. Rows are created once and only ever
// deleted (individually or via the item cascade), never updated.
type StockTransaction struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Date     string `json:"date" gorm:"not null;index"`
	Type     string `json:"type" gorm:"not null"`
	ItemID   string `json:"itemId" gorm:"not null;index"`
	ItemName string `json:"itemName" gorm:"not null"`
	Quantity int    `json:"quantity" gorm:"not null"`
	Notes    string `json:"notes"`
}
