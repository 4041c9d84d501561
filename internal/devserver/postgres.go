package devserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxPool is the subset of pgxpool.Pool the repositories use. pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ConnectDB establishes a connection to the PostgreSQL database
func ConnectDB(dsn string) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool
	var err error

	// Retry connecting to the database a few times
	maxRetries := 5
	retryInterval := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.New(context.Background(), dsn)
		if err == nil {
			err = pool.Ping(context.Background())
			if err == nil {
				log.Println("Successfully connected to PostgreSQL!")
				return pool, nil
			}
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v. Retrying in %v...", i+1, maxRetries, err, retryInterval)
		time.Sleep(retryInterval)
	}
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", maxRetries, err)
}

// AutoMigrate creates tables if they don't exist
func AutoMigrate(db PgxPool) error {
	sql := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('USER', 'SUPER_ADMIN')) DEFAULT 'USER'
	);

	CREATE TABLE IF NOT EXISTS products (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(12,2) NOT NULL,
		discount NUMERIC(12,2) NOT NULL DEFAULT 0,
		stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
		category_name TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_products_category_name ON products(category_name);
	CREATE INDEX IF NOT EXISTS idx_products_name ON products(name);
	`
	if _, err := db.Exec(context.Background(), sql); err != nil {
		return fmt.Errorf("unable to apply migrations: %w", err)
	}

	log.Println("AutoMigrate applied successfully")
	return nil
}

type postgresUserRepository struct {
	db PgxPool
}

// NewPostgresUserRepository creates a UserRepository backed by PostgreSQL.
func NewPostgresUserRepository(db PgxPool) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, acc *Account) error {
	sql := `INSERT INTO users (first_name, last_name, email, password_hash, role)
            VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, sql, acc.FirstName, acc.LastName, acc.Email, acc.PasswordHash, acc.Role).Scan(&acc.ID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *postgresUserRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	acc := &Account{}
	sql := `SELECT id, first_name, last_name, email, password_hash, role FROM users WHERE lower(email) = lower($1)`
	err := r.db.QueryRow(ctx, sql, email).Scan(&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.PasswordHash, &acc.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Not found is not an error for this method's contract
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return acc, nil
}

func (r *postgresUserRepository) FindByID(ctx context.Context, id int) (*Account, error) {
	acc := &Account{}
	sql := `SELECT id, first_name, last_name, email, password_hash, role FROM users WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&acc.ID, &acc.FirstName, &acc.LastName, &acc.Email, &acc.PasswordHash, &acc.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return acc, nil
}

type postgresProductRepository struct {
	db PgxPool
}

// NewPostgresProductRepository creates a ProductRepository backed by
// PostgreSQL.
func NewPostgresProductRepository(db PgxPool) ProductRepository {
	return &postgresProductRepository{db: db}
}

func (r *postgresProductRepository) Create(ctx context.Context, p *model.Product) error {
	sql := `INSERT INTO products (name, description, price, discount, stock, category_name)
            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, sql, p.Name, p.Description, p.Price, p.Discount, p.Stock, p.CategoryName).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *postgresProductRepository) FindByID(ctx context.Context, id int) (*model.Product, error) {
	p := &model.Product{}
	sql := `SELECT id, name, description, price, discount, stock, category_name FROM products WHERE id = $1`
	err := r.db.QueryRow(ctx, sql, id).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Stock, &p.CategoryName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return p, nil
}

func (r *postgresProductRepository) List(ctx context.Context, filters ProductFilters) ([]model.Product, int, error) {
	conditions, args := buildProductConditions(filters)
	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products" + whereClause
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	page, limit := filters.Page, filters.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, description, price, discount, stock, category_name FROM products`)
	queryBuilder.WriteString(whereClause)
	queryBuilder.WriteString(" ORDER BY id")
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Discount, &p.Stock, &p.CategoryName); err != nil {
			return nil, 0, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, total, nil
}

func (r *postgresProductRepository) Categories(ctx context.Context) ([]model.Category, error) {
	sql := `SELECT DISTINCT category_name FROM products WHERE category_name IS NOT NULL AND category_name <> '' ORDER BY category_name`
	rows, err := r.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, model.Category{ID: len(categories) + 1, Name: name})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *postgresProductRepository) Update(ctx context.Context, p *model.Product) error {
	sql := `UPDATE products
            SET name = $1, description = $2, price = $3, discount = $4, stock = $5, category_name = $6
            WHERE id = $7`
	cmdTag, err := r.db.Exec(ctx, sql, p.Name, p.Description, p.Price, p.Discount, p.Stock, p.CategoryName, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresProductRepository) Delete(ctx context.Context, id int) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func buildProductConditions(filters ProductFilters) ([]string, []any) {
	var conditions []string
	args := []any{}
	argCount := 1

	if filters.Category != "" {
		conditions = append(conditions, fmt.Sprintf("lower(category_name) = lower($%d)", argCount))
		args = append(args, filters.Category)
		argCount++
	}
	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", argCount, argCount))
		args = append(args, "%"+filters.Search+"%")
		argCount++
	}
	if filters.MinPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price >= $%d", argCount))
		args = append(args, *filters.MinPrice)
		argCount++
	}
	if filters.MaxPrice != nil {
		conditions = append(conditions, fmt.Sprintf("price <= $%d", argCount))
		args = append(args, *filters.MaxPrice)
	}
	return conditions, args
}
