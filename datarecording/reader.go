package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// QueryParams selects and orders the rows returned by Query.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, such as
	// "Page > ? AND What = ?".
	Where string

	// Args fill the placeholders of Where.
	Args []any

	// OrderBy is an ordering without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows returned. Zero returns every row.
	Limit int

	// Offset skips rows. It only applies together with Limit.
	Offset int
}

func (q QueryParams) filter() string {
	if q.Where == "" {
		return ""
	}

	return " WHERE " + q.Where
}

func (q QueryParams) window() string {
	var sb strings.Builder

	if q.OrderBy != "" {
		sb.WriteString(" ORDER BY " + q.OrderBy)
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Limit))

		if q.Offset > 0 {
			sb.WriteString(" OFFSET " + strconv.Itoa(q.Offset))
		}
	}

	return sb.String()
}

// DataReader reads back what a DataRecorder stored.
type DataReader interface {
	// Tables lists the tables present in the database.
	Tables(ctx context.Context) ([]string, error)

	// MapTable binds a table to the struct type of its rows. Only mapped
	// tables can be queried.
	MapTable(tableName string, sampleEntry any)

	// Query returns pointers to the selected rows, plus the number of rows
	// matching Where before Limit and Offset are applied.
	Query(ctx context.Context, tableName string, params QueryParams) (
		results []any,
		totalCount int,
		err error,
	)

	// Close closes the database.
	Close() error
}

type sqliteReader struct {
	db    *sql.DB
	types map[string]reflect.Type
}

// NewReader opens the existing recording path.sqlite3 read-only.
func NewReader(path string) (DataReader, error) {
	filename := path + ".sqlite3"

	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("cannot read recording: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+filename+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a DataReader on an already opened database.
func NewReaderWithDB(db *sql.DB) DataReader {
	return &sqliteReader{
		db:    db,
		types: make(map[string]reflect.Type),
	}
}

func (r *sqliteReader) Tables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}

		names = append(names, name)
	}

	return names, rows.Err()
}

func (r *sqliteReader) MapTable(tableName string, sampleEntry any) {
	r.types[tableName] = reflect.TypeOf(sampleEntry)
}

func (r *sqliteReader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	rowType, mapped := r.types[tableName]
	if !mapped {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	var total int

	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+params.filter(),
		params.Args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("counting %s: %w", tableName, err)
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+params.filter()+params.window(),
		params.Args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	results, err := scanInto(rows, rowType)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", tableName, err)
	}

	return results, total, nil
}

// scanInto decodes every row into a new value of rowType, matching columns to
// fields by name. Columns without a field are discarded.
func scanInto(rows *sql.Rows, rowType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	fieldOf := make([]int, len(columns))
	for i, column := range columns {
		fieldOf[i] = -1

		if f, ok := rowType.FieldByName(column); ok && len(f.Index) == 1 {
			fieldOf[i] = f.Index[0]
		}
	}

	var (
		results []any
		discard any
	)

	targets := make([]any, len(columns))

	for rows.Next() {
		row := reflect.New(rowType)

		for i, field := range fieldOf {
			if field < 0 {
				targets[i] = &discard
				continue
			}

			targets[i] = row.Elem().Field(field).Addr().Interface()
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		results = append(results, row.Interface())
	}

	return results, rows.Err()
}

func (r *sqliteReader) Close() error {
	return r.db.Close()
}
