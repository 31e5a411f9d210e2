// Package ch provides the ClickHouse client built on clickhouse-go v2
package ch

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Client wraps a native-protocol ClickHouse connection
type Client struct {
	conn driver.Conn
}

// Open parses the DSN, connects, and verifies with a ping
func Open(ctx context.Context, dsn string) (*Client, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Close closes the connection
func (c *Client) Close() error { return c.conn.Close() }

// Exec runs a statement (DDL, deletes)
func (c *Client) Exec(ctx context.Context, query string, args ...any) error {
	return c.conn.Exec(ctx, query, args...)
}

// Query runs a query returning rows
func (c *Client) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

// Insert appends rows through a prepared batch; each row is positional args
func (c *Client) Insert(ctx context.Context, query string, rows ...[]any) error {
	batch, err := c.conn.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return err
		}
	}
	return batch.Send()
}
