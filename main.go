package main

import (
	"log"

	"github.com/joho/godotenv"

	"Inventaris/CronJobs"
	"Inventaris/FiberConfig"
	"Inventaris/Models"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	Models.Connect()

	go func() {
		backup := CronJobs.NewBackupScheduler(Models.DatabasePath(), true)
		if err := backup.Start(); err != nil {
			log.Printf("Failed to start backup scheduler: %v\n", err)
		}
	}()

	FiberConfig.FiberConfig(Models.DB)
}
