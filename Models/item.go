package Models

// Item is one stock-keeping entry of the inventory master list.
// Stock is the baseline level at the moment the item's ledger began;
// the current level is always derived from it plus the movement log.
type Item struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"not null"`
	Stock int    `json:"stock" gorm:"not null;default:0"`
	Unit  string `json:"unit" gorm:"not null"`
}
