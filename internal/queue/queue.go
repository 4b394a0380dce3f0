// Package queue is the fire-and-forget post-processing pipeline. The API
// process only ever enqueues; cmd/worker consumes. Enqueue outcomes are
// never awaited or reported back to clients — an upload that reaches the
// store is a successful upload even if the broker is down.
package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names, shared by the client and the worker mux.
const (
	TypeThumbnail = "image:thumbnail"
	TypeWelcome   = "user:welcome"
)

// ThumbnailPayload identifies the uploaded image to post-process.
type ThumbnailPayload struct {
	UserID string `json:"userId"`
	FileID string `json:"fileId"`
}

// WelcomePayload identifies the newly registered user to greet.
type WelcomePayload struct {
	UserID string `json:"userId"`
}

// Enqueuer is the one-way send the services depend on.
type Enqueuer interface {
	EnqueueThumbnail(ctx context.Context, userID, fileID string) error
	EnqueueWelcome(ctx context.Context, userID string) error
}

// Client enqueues tasks onto the redis-backed broker.
type Client struct {
	client *asynq.Client
}

var _ Enqueuer = (*Client)(nil)

// NewClient creates an enqueue-only broker client for the redis at addr.
func NewClient(addr string) *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: addr})}
}

// EnqueueThumbnail queues thumbnail generation for an uploaded image.
func (c *Client) EnqueueThumbnail(ctx context.Context, userID, fileID string) error {
	return c.enqueue(ctx, TypeThumbnail, ThumbnailPayload{UserID: userID, FileID: fileID})
}

// EnqueueWelcome queues the post-registration notification.
func (c *Client) EnqueueWelcome(ctx context.Context, userID string) error {
	return c.enqueue(ctx, TypeWelcome, WelcomePayload{UserID: userID})
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("queue: marshalling %s payload: %w", taskType, err)
	}
	if _, err := c.client.EnqueueContext(ctx, asynq.NewTask(taskType, data)); err != nil {
		return fmt.Errorf("queue: enqueueing %s: %w", taskType, err)
	}
	return nil
}

// Close releases the broker connection.
func (c *Client) Close() error {
	return c.client.Close()
}
