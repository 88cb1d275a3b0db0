package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db is a shared in-memory SQLite database for the feature suite. Tables are
// addressed by name in steps and mapped to their gorm models.
type Db struct {
	DbConn *gorm.DB
	tables map[string]any
}

// NewDb opens the shared database once and migrates tables into it.
func NewDb(tables map[string]any) *Db {
	once.Do(func() {
		db = open(tables)
	})
	return db
}

func open(tables map[string]any) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}

	// A single connection keeps every statement on the same in-memory database.
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	d := &Db{DbConn: dbConn, tables: tables}
	if err := d.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to prepare database. err: %s", err.Error()))
	}
	return d
}

// GetModel returns the model registered for table.
func (d *Db) GetModel(table string) (any, bool) {
	model, ok := d.tables[table]
	return model, ok
}

// ClearDB drops and recreates every registered table.
func (d *Db) ClearDB() error {
	for table, model := range d.tables {
		if err := d.DbConn.Migrator().DropTable(model); err != nil {
			return fmt.Errorf("drop %s: %w", table, err)
		}
		if err := d.DbConn.AutoMigrate(model); err != nil {
			return fmt.Errorf("migrate %s: %w", table, err)
		}
	}
	return nil
}

// DropTable removes a registered table so later queries against it fail.
func (d *Db) DropTable(table string) error {
	model, ok := d.tables[table]
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}
	return d.DbConn.Migrator().DropTable(model)
}
