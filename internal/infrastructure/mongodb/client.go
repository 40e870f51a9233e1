package mongodb

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout    = 5 * time.Second
)

// Client is a process-wide, lazily connected MongoDB handle. A failed connect is not
// cached; the next caller tries again.
type Client struct {
	uri    string
	dbName string

	mu     sync.Mutex
	client *mongo.Client
}

func NewClient(uri, dbName string) *Client {
	return &Client{uri: uri, dbName: dbName}
}

// Mongo returns the connected driver client.
func (c *Client) Mongo(ctx context.Context) (*mongo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}
	if c.uri == "" {
		return nil, errors.New("mongodb: empty connection uri")
	}

	cctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	client, err := mongo.Connect(cctx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, err
	}
	pctx, pcancel := context.WithTimeout(ctx, pingTimeout)
	defer pcancel()
	if err := client.Ping(pctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	c.client = client
	return client, nil
}

func (c *Client) Database(ctx context.Context) (*mongo.Database, error) {
	client, err := c.Mongo(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(c.dbName), nil
}

func (c *Client) DatabaseName() string { return c.dbName }

// Close disconnects if a connection was ever made. The client can reconnect afterwards.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}
