package storage

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New initializes the database connection and performs migrations.
func New(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Game{}, &Explanation{}); err != nil {
		return nil, err
	}
	return db, nil
}

// Open connects to Postgres and returns a ready store.
func Open(dsn string) (*Store, error) {
	db, err := New(dsn)
	if err != nil {
		return nil, err
	}
	return NewStore(db), nil
}
