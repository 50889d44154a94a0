package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/laundry-storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool методы *pgxpool.Pool, которые нам нужны.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresRepo struct {
	Pool DBPool
}

func NewPostgresRepo(pool DBPool) *PostgresRepo {
	return &PostgresRepo{Pool: pool}
}

func (r *PostgresRepo) Upsert(ctx context.Context, p domain.Placement) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode placement %s: %w", p.Reference, err)
	}
	_, err = r.Pool.Exec(ctx, `INSERT INTO orders(reference, owner, placed_at, total_price, payload)
        VALUES($1, $2, $3, $4::numeric, $5)
        ON CONFLICT (reference) DO UPDATE SET payload = EXCLUDED.payload`,
		p.Reference, p.Owner, p.PlacedAt, p.Order.TotalPrice().String(), raw)
	return err
}

func (r *PostgresRepo) LoadAll(ctx context.Context, fn func(reference string, raw []byte) error) error {
	rows, err := r.Pool.Query(ctx, `SELECT reference, payload FROM orders ORDER BY placed_at`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ref string
		var raw []byte
		if err := rows.Scan(&ref, &raw); err != nil {
			return err
		}
		if err := fn(ref, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ListCatalog категории и услуги в сохранённом порядке.
func (r *PostgresRepo) ListCatalog(ctx context.Context) (domain.Catalog, error) {
	rows, err := r.Pool.Query(ctx, `SELECT category, item, price::text FROM catalog_items
        ORDER BY position, category, item`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	catalog := domain.Catalog{}
	index := map[string]int{}
	for rows.Next() {
		var category, item, price string
		if err := rows.Scan(&category, &item, &price); err != nil {
			return nil, err
		}
		m, err := domain.ParseMoney(price)
		if err != nil {
			return nil, fmt.Errorf("catalog price for %s/%s: %w", category, item, err)
		}
		i, ok := index[category]
		if !ok {
			i = len(catalog)
			index[category] = i
			catalog = append(catalog, domain.CatalogCategory{Name: category})
		}
		catalog[i].Items = append(catalog[i].Items, domain.CatalogItem{Name: item, Price: m})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// SeedCatalog добавить недостающие услуги. Существующие цены не трогаются.
func (r *PostgresRepo) SeedCatalog(ctx context.Context, catalog domain.Catalog) error {
	pos := 0
	for _, cat := range catalog {
		for _, it := range cat.Items {
			_, err := r.Pool.Exec(ctx, `INSERT INTO catalog_items(category, item, price, position)
        VALUES($1, $2, $3::numeric, $4)
        ON CONFLICT (category, item) DO NOTHING`, cat.Name, it.Name, it.Price.String(), pos)
			if err != nil {
				return fmt.Errorf("seed %s/%s: %w", cat.Name, it.Name, err)
			}
			pos++
		}
	}
	return nil
}

var (
	_ domain.OrderRepository   = (*PostgresRepo)(nil)
	_ domain.CatalogRepository = (*PostgresRepo)(nil)
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
  reference text PRIMARY KEY,
  owner text NOT NULL,
  placed_at timestamptz NOT NULL,
  total_price numeric NOT NULL CHECK (total_price >= 0),
  payload jsonb NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS orders_owner_placed_at_idx ON orders(owner, placed_at)`,
	`CREATE TABLE IF NOT EXISTS catalog_items (
  category text NOT NULL,
  item text NOT NULL,
  price numeric NOT NULL CHECK (price >= 0),
  position int NOT NULL,
  PRIMARY KEY (category, item)
)`,
}

// EnsureSchema создать необходимые таблицы, если отсутствуют.
func EnsureSchema(ctx context.Context, pool DBPool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
