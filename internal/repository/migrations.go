package repository

import (
	"errors"
	"time"

	"github.com/Maksumys/storefront-migrator/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("not found")

type Order string

const (
	OrderASC  Order = "ASC"
	OrderDESC Order = "DESC"
)

func GetMigrationsSorted(db *gorm.DB, table string, order Order) ([]models.AppliedMigration, error) {
	var migrations []models.AppliedMigration
	err := db.Table(table).Order("id " + string(order)).Find(&migrations).Error
	return migrations, err
}

func GetLastMigration(db *gorm.DB, table string) (models.AppliedMigration, error) {
	var row models.AppliedMigration
	err := db.Table(table).Order("id DESC").Take(&row).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return row, ErrNotFound
	default:
		return row, err
	}
}

type SaveMigrationRequest struct {
	Id   int64
	Name string
}

func SaveMigration(db *gorm.DB, table string, request SaveMigrationRequest) (models.AppliedMigration, error) {
	migration := models.AppliedMigration{
		Id:        request.Id,
		Name:      request.Name,
		AppliedOn: time.Now().UTC(),
	}

	return migration, db.Table(table).Create(&migration).Error
}

func DeleteMigration(db *gorm.DB, table string, id int64) error {
	result := db.Table(table).Where("id = ?", id).Delete(&models.AppliedMigration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func HasMigrationsTable(db *gorm.DB, table string) bool {
	return db.Migrator().HasTable(table)
}

func CreateMigrationsTable(db *gorm.DB, table string) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS ? (
			id BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_on TIMESTAMP NOT NULL
		)
	`, clause.Table{Name: table}).Error
}
