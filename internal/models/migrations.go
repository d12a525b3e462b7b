package models

import "time"

const DefaultHistoryTable = "migrations"

type AppliedMigration struct {
	Id        int64 `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	AppliedOn time.Time
}

func (v AppliedMigration) TableName() string {
	return DefaultHistoryTable
}
