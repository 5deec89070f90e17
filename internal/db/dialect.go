package db

import "fmt"

// Dialect carries the driver name and the DDL that differs between stores.
// DML is shared: every statement uses $n placeholders in order of first
// appearance, which both drivers bind positionally.
type Dialect struct {
	Driver    string
	Customers string
	Orders    string
}

var sqliteDialect = Dialect{
	Driver: DriverSQLite,
	Customers: `
        CREATE TABLE IF NOT EXISTS customers (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            last_name TEXT NOT NULL,
            first_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            phone TEXT,
            birth_date TEXT,
            address TEXT,
            marketing_consent INTEGER NOT NULL CHECK (marketing_consent IN (0, 1))
        )`,
	Orders: `
        CREATE TABLE IF NOT EXISTS orders (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            order_date TEXT NOT NULL,
            amount REAL NOT NULL,
            customer_id INTEGER,
            FOREIGN KEY (customer_id) REFERENCES customers (id)
        )`,
}

var postgresDialect = Dialect{
	Driver: DriverPostgres,
	Customers: `
        CREATE TABLE IF NOT EXISTS customers (
            id SERIAL PRIMARY KEY,
            last_name TEXT NOT NULL,
            first_name TEXT NOT NULL,
            email TEXT NOT NULL UNIQUE,
            phone TEXT,
            birth_date TEXT,
            address TEXT,
            marketing_consent INTEGER NOT NULL CHECK (marketing_consent IN (0, 1))
        )`,
	Orders: `
        CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            order_date TEXT NOT NULL,
            amount DOUBLE PRECISION NOT NULL,
            customer_id INTEGER REFERENCES customers (id)
        )`,
}

// DialectFor returns the dialect registered for driver.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite, "sqlite":
		return sqliteDialect, nil
	case DriverPostgres, "postgresql":
		return postgresDialect, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}
