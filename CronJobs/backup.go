package CronJobs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

// BackupScheduler copies the database file to the backup directory on a
// cron schedule and prunes old copies. The database is treated as an
// opaque blob; a restore is just copying a snapshot back into place.
type BackupScheduler struct {
	cronScheduler  *cron.Cron
	dbPath         string
	backupDir      string
	keep           int
	schedule       string
	runImmediately bool
	jobID          cron.EntryID
}

// NewBackupScheduler creates a scheduler for the given database file.
// Schedule and retention come from BACKUP_CRON (default "0 2 * * *",
// daily at 02:00) and BACKUP_KEEP (default 7).
func NewBackupScheduler(dbPath string, runImmediately bool) *BackupScheduler {
	schedule := os.Getenv("BACKUP_CRON")
	if schedule == "" {
		schedule = "0 2 * * *"
	}

	keep := 7
	if raw := os.Getenv("BACKUP_KEEP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			keep = n
		}
	}

	return &BackupScheduler{
		cronScheduler:  cron.New(),
		dbPath:         dbPath,
		backupDir:      "backups",
		keep:           keep,
		schedule:       schedule,
		runImmediately: runImmediately,
	}
}

// Start schedules the backup job and optionally runs one immediately.
func (s *BackupScheduler) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(s.schedule, func() {
		log.Println("Running scheduled database backup")
		if path, err := s.BackupOnce(); err != nil {
			log.Printf("Backup error: %v\n", err)
		} else {
			log.Println("Backup saved to", path)
		}
	})
	if err != nil {
		return fmt.Errorf("error scheduling backup job: %w", err)
	}

	s.cronScheduler.Start()
	log.Printf("Backup scheduler started (cron %q, keeping last %d)\n", s.schedule, s.keep)

	if s.runImmediately {
		if path, err := s.BackupOnce(); err != nil {
			log.Printf("Initial backup failed: %v\n", err)
		} else {
			log.Println("Initial backup saved to", path)
		}
	}
	return nil
}

// Stop terminates the scheduler.
func (s *BackupScheduler) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Backup scheduler stopped")
	}
}

// BackupOnce copies the database file into the backup directory under a
// timestamped name and prunes backups beyond the retention count.
func (s *BackupScheduler) BackupOnce() (string, error) {
	if _, err := os.Stat(s.dbPath); err != nil {
		return "", fmt.Errorf("database not found: %s", s.dbPath)
	}
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return "", fmt.Errorf("error creating backup directory: %w", err)
	}

	name := fmt.Sprintf("inventory-%s.db", time.Now().Format("20060102-150405"))
	dest := filepath.Join(s.backupDir, name)
	if err := copyFile(s.dbPath, dest); err != nil {
		return "", err
	}

	if err := s.cleanupOld(); err != nil {
		log.Printf("Backup cleanup warning: %v\n", err)
	}
	return dest, nil
}

// cleanupOld removes the oldest backups beyond the retention count.
func (s *BackupScheduler) cleanupOld() error {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return err
	}

	type backup struct {
		name    string
		modTime time.Time
	}
	var backups []backup
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if len(name) < 13 || name[:10] != "inventory-" || filepath.Ext(name) != ".db" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, backup{name: name, modTime: info.ModTime()})
	}

	if len(backups) <= s.keep {
		return nil
	}

	// newest first
	sort.Slice(backups, func(i, j int) bool {
		return backups[i].modTime.After(backups[j].modTime)
	})

	for _, old := range backups[s.keep:] {
		if err := os.Remove(filepath.Join(s.backupDir, old.name)); err != nil {
			log.Printf("Failed to remove old backup %s: %v\n", old.name, err)
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
