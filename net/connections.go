package net

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/autonity/autonity/rpc"

	"scribe/interfaces"
)

var ErrNoConnection = errors.New("no rpc connection available")

type Connection struct {
	Client interfaces.RPCClient
	URL    string
}

// Dialer opens one client connection to url.
type Dialer func(ctx context.Context, url string) (interfaces.RPCClient, error)

// DialRPC dials a JSON-RPC endpoint over http(s) or ws(s).
func DialRPC(ctx context.Context, url string) (interfaces.RPCClient, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return client, nil
}

type ConnectionPool struct {
	initialConnections int
	urls               []string
	dial               Dialer
	connections        []*Connection
	sync.RWMutex
}

func (cp *ConnectionPool) newConnection(ctx context.Context) *Connection {
	url := cp.urls[rand.Intn(len(cp.urls))]
	client, err := cp.dial(ctx, url)
	if err != nil {
		slog.Error("dial error", "err", err, "url", url)
		return nil
	}

	cp.Lock()
	defer cp.Unlock()
	con := &Connection{client, url}
	cp.connections = append(cp.connections, con)
	return con
}

// NewConnectionPool dials capacity connections spread over urls. Failed dials
// are logged; the pool is usable as long as one succeeded.
func NewConnectionPool(ctx context.Context, urls []string, capacity int, dial Dialer) (*ConnectionPool, error) {
	if len(urls) == 0 {
		return nil, errors.New("no rpc urls configured")
	}
	if capacity < 1 {
		capacity = 1
	}
	if dial == nil {
		dial = DialRPC
	}
	cp := &ConnectionPool{
		urls:               urls,
		initialConnections: capacity,
		dial:               dial,
		connections:        make([]*Connection, 0, capacity),
	}
	for i := 0; i < capacity; i++ {
		cp.newConnection(ctx)
	}
	if cp.Len() == 0 {
		return nil, ErrNoConnection
	}
	return cp, nil
}

func (cp *ConnectionPool) Len() int {
	cp.RLock()
	defer cp.RUnlock()
	return len(cp.connections)
}

func (cp *ConnectionPool) Get() *Connection {
	cp.RLock()
	defer cp.RUnlock()

	if len(cp.connections) == 0 {
		return nil
	}
	return cp.connections[rand.Intn(len(cp.connections))]
}

// Close closes every pooled connection.
func (cp *ConnectionPool) Close() {
	cp.Lock()
	defer cp.Unlock()
	for _, c := range cp.connections {
		if cl, ok := c.Client.(interface{ Close() }); ok {
			cl.Close()
		}
	}
	cp.connections = nil
}
