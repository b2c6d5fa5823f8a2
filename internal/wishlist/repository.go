package wishlist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Lelo88/lista-desejos-api/internal/logger"
)

const (
	DefaultTable        = "lista_desejos"
	DefaultQueryTimeout = 5 * time.Second
)

// Database es el subconjunto de pgxpool.Pool que usa el repositorio.
// Permite testear con fakes sin levantar Postgres.
type Database interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RepositoryConfig agrupa lo configurable del repositorio.
type RepositoryConfig struct {
	Table        string
	QueryTimeout time.Duration
}

// Repository accede a la tabla de la lista de desejos.
// Toda operación filtra por user_id: un item de otro usuario es indistinguible
// de uno inexistente.
type Repository struct {
	database Database
	table    string
	timeout  time.Duration
	builder  sq.StatementBuilderType
}

var itemColumns = []string{"id::text", "user_id::text", "nome", "valor", "link", "created_at"}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NewRepository crea un repositorio. Los valores vacíos de config toman defaults.
func NewRepository(database Database, config RepositoryConfig) *Repository {
	if config.Table == "" {
		config.Table = DefaultTable
	}
	if config.QueryTimeout <= 0 {
		config.QueryTimeout = DefaultQueryTimeout
	}

	return &Repository{
		database: database,
		table:    config.Table,
		timeout:  config.QueryTimeout,
		builder:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List devuelve todos los items del usuario, del más viejo al más nuevo.
func (repository *Repository) List(ctx context.Context, userID string) ([]Item, error) {
	query := repository.selectItems().
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at")

	return repository.queryItems(ctx, "list", query)
}

// Search devuelve los items del usuario cuyo nome contiene term (case-insensitive).
// Los comodines de LIKE en term se escapan: la búsqueda es por substring literal.
func (repository *Repository) Search(ctx context.Context, userID, term string) ([]Item, error) {
	query := repository.selectItems().
		Where(sq.And{
			sq.Eq{"user_id": userID},
			sq.ILike{"nome": "%" + likeEscaper.Replace(term) + "%"},
		}).
		OrderBy("created_at")

	return repository.queryItems(ctx, "search", query)
}

// GetByID busca un item del usuario. Devuelve ErrNotFound si no existe bajo ese usuario.
func (repository *Repository) GetByID(ctx context.Context, userID, id string) (Item, error) {
	sql, args, err := repository.selectItems().
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		Limit(1).
		ToSql()
	if err != nil {
		return Item{}, repository.fail(ctx, "get", err)
	}

	ctx, cancel := context.WithTimeout(ctx, repository.timeout)
	defer cancel()

	item, err := scanItem(repository.database.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, repository.fail(ctx, "get", err)
	}

	return item, nil
}

// Create inserta un item del usuario y devuelve el id generado por la DB.
// Acá se hace la conversión de reais a centavos.
func (repository *Repository) Create(ctx context.Context, userID string, input CreateItemInput) (string, error) {
	sql, args, err := repository.builder.
		Insert(repository.table).
		Columns("user_id", "nome", "valor", "link").
		Values(userID, input.Nome, ToCentavos(input.Valor), input.Link).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return "", repository.fail(ctx, "create", err)
	}

	ctx, cancel := context.WithTimeout(ctx, repository.timeout)
	defer cancel()

	var id string
	if err := repository.database.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return "", repository.fail(ctx, "create", err)
	}

	return id, nil
}

// Update cambia sólo los campos presentes en input.
// Sin campos devuelve ErrEmptyUpdate sin tocar la DB.
func (repository *Repository) Update(ctx context.Context, userID, id string, input UpdateItemInput) error {
	if input.IsEmpty() {
		return ErrEmptyUpdate
	}

	update := repository.builder.Update(repository.table)
	if input.Nome != nil {
		update = update.Set("nome", *input.Nome)
	}
	if input.Valor != nil {
		update = update.Set("valor", ToCentavos(*input.Valor))
	}
	if input.Link != nil {
		update = update.Set("link", *input.Link)
	}

	sql, args, err := update.
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return repository.fail(ctx, "update", err)
	}

	return repository.execReturningID(ctx, "update", sql, args)
}

// Delete borra (hard delete) un item del usuario.
func (repository *Repository) Delete(ctx context.Context, userID, id string) error {
	sql, args, err := repository.builder.
		Delete(repository.table).
		Where(sq.And{sq.Eq{"id": id}, sq.Eq{"user_id": userID}}).
		Suffix("RETURNING id::text").
		ToSql()
	if err != nil {
		return repository.fail(ctx, "delete", err)
	}

	return repository.execReturningID(ctx, "delete", sql, args)
}

func (repository *Repository) selectItems() sq.SelectBuilder {
	return repository.builder.Select(itemColumns...).From(repository.table)
}

// execReturningID corre un UPDATE/DELETE con RETURNING: cero filas significa
// que el item no existe para ese usuario.
func (repository *Repository) execReturningID(ctx context.Context, operation, sql string, args []any) error {
	ctx, cancel := context.WithTimeout(ctx, repository.timeout)
	defer cancel()

	var returnedID string
	if err := repository.database.QueryRow(ctx, sql, args...).Scan(&returnedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return repository.fail(ctx, operation, err)
	}
	return nil
}

func (repository *Repository) queryItems(ctx context.Context, operation string, query sq.SelectBuilder) ([]Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, repository.fail(ctx, operation, err)
	}

	ctx, cancel := context.WithTimeout(ctx, repository.timeout)
	defer cancel()

	rows, err := repository.database.Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.fail(ctx, operation, err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, repository.fail(ctx, operation, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.fail(ctx, operation, err)
	}

	return items, nil
}

// fail loguea el detalle y devuelve un error opaco para capas superiores.
func (repository *Repository) fail(ctx context.Context, operation string, err error) error {
	logger.FromContext(ctx).Error().
		Err(err).
		Str("operation", operation).
		Str("table", repository.table).
		Msg("wishlist repository failure")

	return fmt.Errorf("%w: %s", ErrRepository, operation)
}

func scanItem(row pgx.Row) (Item, error) {
	var item Item
	err := row.Scan(&item.ID, &item.UserID, &item.Nome, &item.Valor, &item.Link, &item.CreatedAt)
	return item, err
}
