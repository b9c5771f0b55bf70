package schemaclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tuannm99/novaschema/internal/catalog"
	"github.com/tuannm99/novaschema/server/schemawire"
)

// Client is a simple synchronous client.
// It locks send/recv so concurrent calls are serialized on the connection.
type Client struct {
	conn net.Conn
	mu   sync.Mutex
	id   atomic.Uint64

	// Optional per-request timeout (0 = no timeout).
	rwTimeout time.Duration
}

func Dial(addr string, timeout time.Duration) (*Client, error) {
	return DialContext(context.Background(), addr, timeout)
}

func DialContext(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	d := net.Dialer{Timeout: timeout}
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Client{conn: c}, nil
}

// SetRWTimeout sets a per-request read/write deadline.
func (c *Client) SetRWTimeout(d time.Duration) {
	if c == nil {
		return
	}
	c.rwTimeout = d
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Resolve sends a CREATE TABLE script and returns one schema per table.
func (c *Client) Resolve(ddl string) ([]*catalog.TableSchema, error) {
	return c.ResolveContext(context.Background(), ddl)
}

func (c *Client) ResolveContext(ctx context.Context, ddl string) ([]*catalog.TableSchema, error) {
	return c.do(ctx, schemawire.ResolveRequest{DDL: ddl})
}

// ResolveTable sends a single structured table definition.
func (c *Client) ResolveTable(ctx context.Context, t *catalog.Table) (*catalog.TableSchema, error) {
	out, err := c.do(ctx, schemawire.ResolveRequest{Table: t})
	if err != nil {
		return nil, err
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("schemaclient: want 1 table, got %d", len(out))
	}
	return out[0], nil
}

func (c *Client) do(ctx context.Context, req schemawire.ResolveRequest) ([]*catalog.TableSchema, error) {
	if c == nil || c.conn == nil {
		return nil, fmt.Errorf("schemaclient: nil client")
	}

	req.ID = c.id.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.applyDeadline(ctx); err != nil {
		return nil, err
	}
	defer func() {
		// Clear deadline after request so idle connection doesn't expire.
		_ = c.conn.SetDeadline(time.Time{})
	}()

	if err := schemawire.WriteFrame(c.conn, req); err != nil {
		return nil, err
	}

	var resp schemawire.ResolveResponse
	if err := schemawire.ReadFrame(c.conn, &resp); err != nil {
		return nil, err
	}

	if resp.ID != req.ID {
		return nil, fmt.Errorf("schemaclient: response id mismatch: got=%d want=%d", resp.ID, req.ID)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}
	return resp.Tables, nil
}

func (c *Client) applyDeadline(ctx context.Context) error {
	// Prefer context deadline if present; otherwise use rwTimeout.
	if dl, ok := ctx.Deadline(); ok {
		return c.conn.SetDeadline(dl)
	}
	if c.rwTimeout > 0 {
		return c.conn.SetDeadline(time.Now().Add(c.rwTimeout))
	}
	return nil
}
