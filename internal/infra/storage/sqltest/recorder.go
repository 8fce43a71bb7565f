// Package sqltest драйвер database/sql для тестов репозиториев: запоминает запросы
// и аргументы, отдает заранее заданный результат
package sqltest

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
	"testing"
)

// Query выполненный запрос
type Query struct {
	SQL  string
	Args []driver.Value
}

// Recorder записывает запросы. RowsAffected возвращается на Exec,
// Columns и Rows на Query
type Recorder struct {
	RowsAffected int64
	Columns      []string
	Rows         [][]driver.Value

	mu      sync.Mutex
	queries []Query
}

// Open создает *sql.DB поверх нового Recorder
func Open(t testing.TB) (*Recorder, *sql.DB) {
	t.Helper()
	r := &Recorder{}
	db := sql.OpenDB(r)
	t.Cleanup(func() { _ = db.Close() })
	return r, db
}

// Queries возвращает все запросы в порядке выполнения
func (r *Recorder) Queries() []Query {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Query(nil), r.queries...)
}

// Last возвращает последний запрос
func (r *Recorder) Last(t testing.TB) Query {
	t.Helper()
	queries := r.Queries()
	if len(queries) == 0 {
		t.Fatal("sqltest: no queries recorded")
	}
	return queries[len(queries)-1]
}

func (r *Recorder) record(query string, args []driver.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, Query{SQL: query, Args: append([]driver.Value(nil), args...)})
}

// Connect реализует driver.Connector
func (r *Recorder) Connect(context.Context) (driver.Conn, error) {
	return &conn{r: r}, nil
}

// Driver реализует driver.Connector
func (r *Recorder) Driver() driver.Driver {
	return recorderDriver{r: r}
}

type recorderDriver struct {
	r *Recorder
}

func (d recorderDriver) Open(string) (driver.Conn, error) {
	return &conn{r: d.r}, nil
}

type conn struct {
	r *Recorder
}

func (c *conn) Prepare(query string) (driver.Stmt, error) {
	return &stmt{r: c.r, query: query}, nil
}

func (c *conn) Close() error { return nil }

func (c *conn) Begin() (driver.Tx, error) { return tx{}, nil }

type tx struct{}

func (tx) Commit() error   { return nil }
func (tx) Rollback() error { return nil }

type stmt struct {
	r     *Recorder
	query string
}

func (s *stmt) Close() error { return nil }

// NumInput -1: количество аргументов не проверяется
func (s *stmt) NumInput() int { return -1 }

func (s *stmt) Exec(args []driver.Value) (driver.Result, error) {
	s.r.record(s.query, args)
	return driver.RowsAffected(s.r.RowsAffected), nil
}

func (s *stmt) Query(args []driver.Value) (driver.Rows, error) {
	s.r.record(s.query, args)
	return &rows{columns: s.r.Columns, data: s.r.Rows}, nil
}

type rows struct {
	columns []string
	data    [][]driver.Value
	pos     int
}

func (r *rows) Columns() []string { return r.columns }

func (r *rows) Close() error { return nil }

func (r *rows) Next(dest []driver.Value) error {
	if r.pos >= len(r.data) {
		return io.EOF
	}
	copy(dest, r.data[r.pos])
	r.pos++
	return nil
}
