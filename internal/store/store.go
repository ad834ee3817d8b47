package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("store: key not found")

// Message represents a message received from a subscription.
type Message struct {
	Channel string
	Payload []byte
}

// Subscription represents an active subscription to a channel.
type Subscription interface {
	// Channel returns the channel on which messages are delivered.
	Channel() <-chan *Message
	// Close terminates the subscription and releases its resources.
	Close() error
}

// Store is the key-value and pub/sub abstraction shared by all nodes.
// A single-node deployment runs on the in-memory implementation; clustered
// deployments use Redis so that settings changes fan out to every node.
type Store interface {
	// Set stores a key-value pair, with an optional TTL (0 for no expiry).
	Set(key string, value []byte, ttl time.Duration) error

	// Get retrieves a value by key. Returns ErrNotFound if absent.
	Get(key string) ([]byte, error)

	// Delete removes a key. Deleting a non-existent key is not an error.
	Delete(key string) error

	// Exists reports whether a key is present.
	Exists(key string) (bool, error)

	// SetNX sets a key only if it does not already exist, returning whether
	// the value was set.
	SetNX(key string, value []byte, ttl time.Duration) (bool, error)

	// Publish sends a message to all subscribers of a channel.
	Publish(channel string, message []byte) error

	// Subscribe listens for messages on a channel.
	Subscribe(channel string) (Subscription, error)

	// Close releases any resources held by the store.
	Close() error
}
