package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite driver
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"shortlink-allocator/internal/shortener"
)

// pgUniqueViolation is the SQLSTATE PostgreSQL reports for a duplicate key.
const pgUniqueViolation = "23505"

// Link is the persisted code -> target mapping. The unique index on
// ShortCode is what makes Insert a conditional insert.
type Link struct {
	gorm.Model
	ShortCode   string `gorm:"unique_index;not null"`
	OriginalURL string `gorm:"not null"`
}

// InitDB opens a connection for the given gorm dialect ("postgres" or
// "sqlite3") and migrates the schema.
func InitDB(dialect, dataSourceName string) (*gorm.DB, error) {
	conn, err := gorm.Open(dialect, dataSourceName)
	if err != nil {
		return nil, err
	}
	if dialect == "sqlite3" {
		// An in-memory SQLite database is private to its connection.
		conn.DB().SetMaxOpenConns(1)
	}

	if err := conn.AutoMigrate(&Link{}).Error; err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return conn, nil
}

// LinkStore is a shortener.Store backed by a SQL database through gorm.
type LinkStore struct {
	db *gorm.DB
}

// NewLinkStore wraps an open connection.
func NewLinkStore(conn *gorm.DB) *LinkStore {
	return &LinkStore{db: conn}
}

// Insert creates the row inside a transaction bound to ctx. A unique
// violation on short_code is reported as shortener.ErrAlreadyExists.
func (s *LinkStore) Insert(ctx context.Context, code shortener.ShortCode, target string) error {
	tx := s.db.BeginTx(ctx, nil)
	if tx.Error != nil {
		return &shortener.StoreError{Op: "begin", Err: tx.Error}
	}

	link := Link{ShortCode: string(code), OriginalURL: target}
	if err := tx.Create(&link).Error; err != nil {
		tx.Rollback()
		if isUniqueViolation(err) {
			return shortener.ErrAlreadyExists
		}
		return &shortener.StoreError{Op: "insert", Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return &shortener.StoreError{Op: "commit", Err: err}
	}
	return nil
}

// Get retrieves the target for code.
func (s *LinkStore) Get(ctx context.Context, code shortener.ShortCode) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	link, err := GetLinkByShortCode(s.db, string(code))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return "", shortener.ErrNotFound
		}
		return "", &shortener.StoreError{Op: "get", Err: err}
	}
	return link.OriginalURL, nil
}

// GetLinkByShortCode retrieves a link by its short code.
func GetLinkByShortCode(conn *gorm.DB, shortCode string) (*Link, error) {
	var link Link
	if err := conn.Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// CountLinks returns the number of stored mappings.
func CountLinks(conn *gorm.DB) (int, error) {
	var n int
	err := conn.Model(&Link{}).Count(&n).Error
	return n, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
