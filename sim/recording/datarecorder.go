// Package recording persists simulation data to a SQLite database.
//
// Tables are derived from flat structs: exported field names become
// columns, and rows buffer in memory until a batch flush. Misuse
// (inserting into a missing table, non-scalar fields) panics; environment
// failures (file conflicts, SQL errors) return errors.
package recording

import (
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/fatih/structs"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	// SQLite driver registration.
	_ "github.com/mattn/go-sqlite3"
)

// DataRecorder is a backend that records and stores simulation data.
type DataRecorder interface {
	// CreateTable creates a table whose columns mirror sampleEntry's fields.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers one entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all created tables, sorted.
	ListTables() []string

	// Flush writes all buffered entries to the database.
	Flush() error
}

// flushBatchSize bounds the number of buffered rows before an automatic
// flush.
const flushBatchSize = 100000

type table struct {
	structType reflect.Type
	entries    []any
}

// sqliteWriter buffers typed rows and writes them into a SQLite database
// in batched transactions.
type sqliteWriter struct {
	db *sql.DB

	path       string
	tables     map[string]*table
	entryCount int
}

// New opens a SQLite-backed recorder at path (".sqlite3" is appended).
// An empty path picks a unique generated name. An existing file is
// refused rather than overwritten. Buffered rows are flushed at process
// exit.
func New(path string) (DataRecorder, error) {
	if path == "" {
		path = "cachesim_recording_" + xid.New().String()
	}
	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err == nil {
		return nil, fmt.Errorf("recording database %s already exists", filename)
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("opening recording database: %w", err)
	}

	w := &sqliteWriter{
		db:     db,
		path:   filename,
		tables: make(map[string]*table),
	}

	logrus.Infof("Recording to database %s", filename)

	atexit.Register(func() {
		if err := w.Flush(); err != nil {
			logrus.Errorf("Failed to flush recording database: %v", err)
		}
	})

	return w, nil
}

func isScalarKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(sampleEntry any) error {
	t := reflect.TypeOf(sampleEntry)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !isScalarKind(field.Type.Kind()) {
			return fmt.Errorf("field %s has non-scalar type %s", field.Name, field.Type)
		}
	}
	return nil
}

func (w *sqliteWriter) CreateTable(tableName string, sampleEntry any) {
	if err := checkStructFields(sampleEntry); err != nil {
		panic(fmt.Sprintf("recording: table %s: %v", tableName, err))
	}
	if _, exists := w.tables[tableName]; exists {
		panic(fmt.Sprintf("recording: table %s already exists", tableName))
	}

	columns := structs.Names(sampleEntry)
	createSQL := "CREATE TABLE " + tableName + " (\n\t" + strings.Join(columns, ",\n\t") + "\n)"
	if _, err := w.db.Exec(createSQL); err != nil {
		panic(fmt.Sprintf("recording: creating table %s: %v", tableName, err))
	}

	w.tables[tableName] = &table{structType: reflect.TypeOf(sampleEntry)}
}

func (w *sqliteWriter) InsertData(tableName string, entry any) {
	tbl, exists := w.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("recording: table %s does not exist", tableName))
	}
	if reflect.TypeOf(entry) != tbl.structType {
		panic(fmt.Sprintf("recording: table %s expects %s entries, got %T", tableName, tbl.structType, entry))
	}

	tbl.entries = append(tbl.entries, entry)
	w.entryCount++
	if w.entryCount >= flushBatchSize {
		if err := w.Flush(); err != nil {
			panic(fmt.Sprintf("recording: batch flush failed: %v", err))
		}
	}
}

func (w *sqliteWriter) ListTables() []string {
	names := make([]string, 0, len(w.tables))
	for name := range w.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Flush writes all buffered rows inside one transaction. Buffers are
// cleared only on success, so a failed flush can be retried.
func (w *sqliteWriter) Flush() error {
	if w.entryCount == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning flush transaction: %w", err)
	}

	for tableName, tbl := range w.tables {
		if len(tbl.entries) == 0 {
			continue
		}

		stmt, err := tx.Prepare(insertSQL(tableName, tbl.entries[0]))
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("preparing insert for table %s: %w", tableName, err)
		}

		for _, entry := range tbl.entries {
			v := reflect.ValueOf(entry)
			args := make([]any, v.NumField())
			for i := range args {
				args[i] = v.Field(i).Interface()
			}
			if _, err := stmt.Exec(args...); err != nil {
				stmt.Close()
				tx.Rollback()
				return fmt.Errorf("inserting into table %s: %w", tableName, err)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing flush transaction: %w", err)
	}

	for _, tbl := range w.tables {
		tbl.entries = nil
	}
	w.entryCount = 0
	return nil
}

func insertSQL(tableName string, sample any) string {
	placeholders := structs.Names(sample)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return "INSERT INTO " + tableName + " VALUES (" + strings.Join(placeholders, ", ") + ")"
}
