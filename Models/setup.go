package Models

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// DatabasePath returns the sqlite file the server (and the backup job)
// operate on. Overridable through DB_NAME.
func DatabasePath() string {
	if name := os.Getenv("DB_NAME"); name != "" {
		return name
	}
	return "inventory.db"
}

func Connect() {
	connection, err := gorm.Open(sqlite.Open(DatabasePath()))
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	DB.AutoMigrate(
		&User{},
		&Item{},
		&StockTransaction{},
	)

	seedDefaultAdmin(DB)
}

// seedDefaultAdmin creates the bootstrap account on a fresh database so the
// first operator can log in at all.
func seedDefaultAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&User{}).Count(&count).Error; err != nil {
		log.Println("Error checking users:", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Error hashing default password:", err)
		return
	}

	admin := User{
		Username:   "admin",
		Password:   hash,
		Permission: 2,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Println("Error creating default admin:", err)
		return
	}
	log.Println("Default admin user created (username: admin)")
}
