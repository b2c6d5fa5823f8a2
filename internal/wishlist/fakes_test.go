package wishlist

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type fakeDB struct {
	queryRowFn func(ctx context.Context, sql string, args ...any) pgx.Row
	queryFn    func(ctx context.Context, sql string, args ...any) (pgx.Rows, error)

	lastCtx        context.Context
	lastQuery      string
	lastArgs       []any
	queryRowCalled bool
	queryCalled    bool
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.queryRowCalled = true
	db.lastCtx = ctx
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryRowFn == nil {
		return &fakeRow{err: errors.New("unexpected QueryRow call")}
	}
	return db.queryRowFn(ctx, sql, args...)
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queryCalled = true
	db.lastCtx = ctx
	db.lastQuery = sql
	db.lastArgs = args
	if db.queryFn == nil {
		return nil, errors.New("unexpected Query call")
	}
	return db.queryFn(ctx, sql, args...)
}

type fakeRow struct {
	values []any
	err    error
}

func (row *fakeRow) Scan(dest ...any) error {
	if row.err != nil {
		return row.err
	}
	return assignValues(dest, row.values)
}

type fakeRows struct {
	rows    [][]any
	idx     int
	closed  bool
	err     error
	scanErr error
}

func (rows *fakeRows) Close() {
	rows.closed = true
}

func (rows *fakeRows) Err() error {
	return rows.err
}

func (rows *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag{}
}

func (rows *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	return nil
}

func (rows *fakeRows) Next() bool {
	if rows.closed {
		return false
	}
	if rows.idx >= len(rows.rows) {
		rows.closed = true
		return false
	}
	rows.idx++
	return true
}

func (rows *fakeRows) Scan(dest ...any) error {
	if rows.scanErr != nil {
		return rows.scanErr
	}
	if rows.idx == 0 || rows.idx > len(rows.rows) {
		return errors.New("scan called without next")
	}
	return assignValues(dest, rows.rows[rows.idx-1])
}

func (rows *fakeRows) Values() ([]any, error) {
	return nil, errors.New("not implemented")
}

func (rows *fakeRows) RawValues() [][]byte {
	return nil
}

func (rows *fakeRows) Conn() *pgx.Conn {
	return nil
}

func assignValues(dest []any, values []any) error {
	if len(dest) != len(values) {
		return fmt.Errorf("dest len %d does not match values len %d", len(dest), len(values))
	}
	for i, d := range dest {
		if d == nil {
			continue
		}
		if err := assignValue(d, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func assignValue(dest any, value any) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return fmt.Errorf("dest is not pointer")
	}
	if value == nil {
		destValue.Elem().Set(reflect.Zero(destValue.Elem().Type()))
		return nil
	}
	destValue.Elem().Set(reflect.ValueOf(value).Convert(destValue.Elem().Type()))
	return nil
}

func normalizeSQL(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

func itemRow(item Item) []any {
	return []any{item.ID, item.UserID, item.Nome, item.Valor, item.Link, item.CreatedAt}
}

// memoryStore es un Store en memoria con las mismas reglas de alcance por
// usuario que el repositorio SQL.
type memoryStore struct {
	mu    sync.Mutex
	items map[string]Item
	now   func() time.Time

	failWith error

	getCalls    int
	updateCalls int
	deleteCalls int
}

func newMemoryStore() *memoryStore {
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	return &memoryStore{
		items: map[string]Item{},
		now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Second)
		},
	}
}

func (store *memoryStore) owned(userID string) []Item {
	out := make([]Item, 0)
	for _, item := range store.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (store *memoryStore) List(ctx context.Context, userID string) ([]Item, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWith != nil {
		return nil, store.failWith
	}
	return store.owned(userID), nil
}

func (store *memoryStore) Search(ctx context.Context, userID, term string) ([]Item, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWith != nil {
		return nil, store.failWith
	}
	out := make([]Item, 0)
	for _, item := range store.owned(userID) {
		if strings.Contains(strings.ToLower(item.Nome), strings.ToLower(term)) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (store *memoryStore) GetByID(ctx context.Context, userID, id string) (Item, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.getCalls++
	if store.failWith != nil {
		return Item{}, store.failWith
	}
	item, ok := store.items[id]
	if !ok || item.UserID != userID {
		return Item{}, ErrNotFound
	}
	return item, nil
}

func (store *memoryStore) Create(ctx context.Context, userID string, input CreateItemInput) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failWith != nil {
		return "", store.failWith
	}
	id := uuid.NewString()
	store.items[id] = Item{
		ID:        id,
		UserID:    userID,
		Nome:      input.Nome,
		Valor:     ToCentavos(input.Valor),
		Link:      input.Link,
		CreatedAt: store.now(),
	}
	return id, nil
}

func (store *memoryStore) Update(ctx context.Context, userID, id string, input UpdateItemInput) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.updateCalls++
	if input.IsEmpty() {
		return ErrEmptyUpdate
	}
	if store.failWith != nil {
		return store.failWith
	}
	item, ok := store.items[id]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	if input.Nome != nil {
		item.Nome = *input.Nome
	}
	if input.Valor != nil {
		item.Valor = ToCentavos(*input.Valor)
	}
	if input.Link != nil {
		item.Link = *input.Link
	}
	store.items[id] = item
	return nil
}

func (store *memoryStore) Delete(ctx context.Context, userID, id string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.deleteCalls++
	if store.failWith != nil {
		return store.failWith
	}
	item, ok := store.items[id]
	if !ok || item.UserID != userID {
		return ErrNotFound
	}
	delete(store.items, id)
	return nil
}
