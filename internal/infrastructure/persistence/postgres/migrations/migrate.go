package migrations

import (
	"errors"
	"fmt"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/internal/domain/habit"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/note"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/todo"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/tracking"
	"github.com/crisprlt/HabitFlow-sub000/internal/domain/user"
	"github.com/crisprlt/HabitFlow-sub000/internal/infrastructure/persistence/postgres/connection"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MigrationRecord tracks the migration history
type MigrationRecord struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"not null;unique"`
	Version   int       `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// AutoMigrate runs database migrations for all models. Each model migration
// is recorded in schema_migrations so startup logs show what changed.
func AutoMigrate(db *connection.Database, logger *zap.Logger) error {
	logger.Info("starting automatic database migration")

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		txDB := &connection.Database{DB: tx}

		var lastVersion int
		if err := txDB.Model(&MigrationRecord{}).Select("COALESCE(MAX(version), 0)").Scan(&lastVersion).Error; err != nil {
			return fmt.Errorf("failed to get last version: %w", err)
		}

		// Order matters due to foreign key relationships: users first, then
		// lookups, then habits, then everything that hangs off habits.
		models := []interface{}{
			&user.User{},
			&user.PasswordReset{},
			&habit.Category{},
			&habit.Frequency{},
			&habit.Unit{},
			&habit.Habit{},
			&habit.Goal{},
			&tracking.HabitRecord{},
			&tracking.DailyStats{},
			&note.Note{},
			&todo.Area{},
			&todo.Task{},
		}

		for i, model := range models {
			modelName := fmt.Sprintf("%T", model)

			var record MigrationRecord
			err := txDB.Where("name = ?", modelName).First(&record).Error
			isNewMigration := errors.Is(err, gorm.ErrRecordNotFound)

			if err := txDB.AutoMigrate(model); err != nil {
				logger.Error("failed to migrate model",
					zap.String("model", modelName), zap.Error(err))
				return fmt.Errorf("failed to migrate %s: %w", modelName, err)
			}

			if isNewMigration {
				record = MigrationRecord{
					Name:      modelName,
					Version:   lastVersion + i + 1,
					AppliedAt: time.Now().UTC(),
				}
				if err := txDB.Create(&record).Error; err != nil {
					return fmt.Errorf("failed to record migration for %s: %w", modelName, err)
				}
				logger.Info("applied new migration",
					zap.String("model", modelName), zap.Int("version", record.Version))
			}
		}

		if err := seedDefaultLookups(tx); err != nil {
			return err
		}

		logger.Info("database migration completed")
		return nil
	})
}

// seedDefaultLookups inserts the starter categories, frequencies and units
// the habit creation form offers on a fresh install.
func seedDefaultLookups(db *gorm.DB) error {
	categories := []string{"Salud", "Deporte", "Estudio", "Trabajo", "Hogar"}
	for _, desc := range categories {
		row := habit.Category{Description: desc}
		if err := db.Where("description = ?", desc).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", desc, err)
		}
	}

	frequencies := []string{"diaria", "semanal", "mensual"}
	for _, desc := range frequencies {
		row := habit.Frequency{Description: desc}
		if err := db.Where("description = ?", desc).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("failed to seed frequency %s: %w", desc, err)
		}
	}

	units := []string{"veces", "minutos", "vasos", "km", "páginas"}
	for _, desc := range units {
		row := habit.Unit{Description: desc}
		if err := db.Where("description = ?", desc).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("failed to seed unit %s: %w", desc, err)
		}
	}

	return nil
}

// GetMigrationHistory returns the history of applied migrations
func GetMigrationHistory(db *connection.Database) ([]MigrationRecord, error) {
	var records []MigrationRecord
	err := db.Order("version ASC").Find(&records).Error
	return records, err
}
