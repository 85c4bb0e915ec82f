package repository

import "context"

const schema = `
CREATE TABLE IF NOT EXISTS medicines (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	price NUMERIC(10,2) NOT NULL,
	tax_percent NUMERIC(5,2) NOT NULL DEFAULT 0,
	stock INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT medicines_name UNIQUE (name),
	CONSTRAINT stock_non_negative CHECK (stock >= 0),
	CONSTRAINT price_positive CHECK (price > 0),
	CONSTRAINT tax_percent_range CHECK (tax_percent >= 0 AND tax_percent <= 100)
);

CREATE TABLE IF NOT EXISTS doctor_registry (
	registration_number TEXT PRIMARY KEY,
	doctor_name TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS transactions (
	id SERIAL PRIMARY KEY,
	invoice_id TEXT NOT NULL,
	total NUMERIC(12,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the catalog tables if they do not exist
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	return err
}
