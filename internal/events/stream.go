package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/survey_workspace_app/internal/middleware"
	"github.com/redis/go-redis/v9"
)

// StreamDispatcher enqueues events on a Redis stream for the worker to execute.
type StreamDispatcher struct {
	client  *redis.Client
	stream  string
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewStreamDispatcher creates a dispatcher that XADDs to stream.
func NewStreamDispatcher(client *redis.Client, stream string, timeout time.Duration) *StreamDispatcher {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	return &StreamDispatcher{client: client, stream: stream, timeout: timeout}
}

var _ Dispatcher = (*StreamDispatcher)(nil)

// Dispatch enqueues evt in the background. Enqueue failures are logged.
func (d *StreamDispatcher) Dispatch(ctx context.Context, evt Event) {
	runCtx := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(runCtx, d.timeout)
		defer cancel()

		logger := middleware.GetLoggerFromCtx(ctx)
		values, err := encodeMessage(evt, 1)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to encode event", slog.String("event_type", string(evt.Type)), slog.String("error", err.Error()))
			return
		}
		if err := d.client.XAdd(ctx, &redis.XAddArgs{Stream: d.stream, Values: values}).Err(); err != nil {
			logger.ErrorContext(ctx, "Failed to enqueue event",
				slog.String("event_type", string(evt.Type)),
				slog.String("stream", d.stream),
				slog.String("error", err.Error()))
			return
		}
		logger.DebugContext(ctx, "Enqueued event", slog.String("event_type", string(evt.Type)), slog.String("stream", d.stream))
	}()
}

// Wait blocks until every pending enqueue has finished.
func (d *StreamDispatcher) Wait() {
	d.wg.Wait()
}

// ConsumerConfig configures a StreamConsumer.
type ConsumerConfig struct {
	Stream         string        // Redis stream name
	Group          string        // Redis consumer group name
	Consumer       string        // Redis consumer name
	DLQStream      string        // Dead letter stream for events that exhausted their attempts
	BatchSize      int64         // Number of messages per read
	Block          time.Duration // How long a read blocks waiting for messages
	MaxAttempts    int           // Attempts before an event moves to the DLQ
	HandlerTimeout time.Duration // Upper bound for one handler run
	ClaimMinIdle   time.Duration // Pending entries idle this long are taken over from their consumer
	ClaimInterval  time.Duration // How often pending entries are checked
}

// Message is an event read from the stream.
type Message struct {
	ID      string
	Event   Event
	Attempt int
}

// streamClient is the subset of *redis.Client the consumer needs.
type streamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd
	XClaim(ctx context.Context, a *redis.XClaimArgs) *redis.XMessageSliceCmd
}

// StreamConsumer reads events with a consumer group and runs the handler.
// Entries left unacknowledged by a crashed or interrupted consumer are
// reclaimed once they have been idle for ClaimMinIdle.
type StreamConsumer struct {
	client  streamClient
	cfg     ConsumerConfig
	handler Handler
	logger  *slog.Logger
}

// NewStreamConsumer creates a consumer and makes sure its group exists.
func NewStreamConsumer(ctx context.Context, client *redis.Client, cfg ConsumerConfig, handler Handler, logger *slog.Logger) (*StreamConsumer, error) {
	return newStreamConsumer(ctx, client, cfg, handler, logger)
}

func newStreamConsumer(ctx context.Context, client streamClient, cfg ConsumerConfig, handler Handler, logger *slog.Logger) (*StreamConsumer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = defaultHandlerTimeout
	}
	if cfg.ClaimMinIdle <= 0 {
		cfg.ClaimMinIdle = time.Minute
	}
	if cfg.ClaimInterval <= 0 {
		cfg.ClaimInterval = 30 * time.Second
	}

	c := &StreamConsumer{client: client, cfg: cfg, handler: handler, logger: logger}
	// Starting from "0" keeps events that were enqueued before the group existed.
	if err := client.XGroupCreateMkStream(ctx, cfg.Stream, cfg.Group, "0").Err(); err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return nil, fmt.Errorf("creating consumer group: %w", err)
	}
	return c, nil
}

// Run consumes until ctx is cancelled. It first replays entries this consumer
// had read but not acknowledged, then interleaves new reads with reclaim passes.
func (c *StreamConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Event consumer started",
		slog.String("stream", c.cfg.Stream),
		slog.String("group", c.cfg.Group),
		slog.String("consumer", c.cfg.Consumer))

	if err := c.replayOwnPending(ctx); err != nil && ctx.Err() == nil {
		c.logger.ErrorContext(ctx, "Failed to replay pending events", slog.String("error", err.Error()))
	}

	lastReclaim := time.Now()
	for {
		if ctx.Err() != nil {
			c.logger.InfoContext(ctx, "Event consumer stopped")
			return nil
		}

		if time.Since(lastReclaim) >= c.cfg.ClaimInterval {
			if err := c.reclaimOnce(ctx); err != nil && ctx.Err() == nil {
				c.logger.ErrorContext(ctx, "Reclaim cycle failed", slog.String("error", err.Error()))
			}
			lastReclaim = time.Now()
		}

		messages, err := c.read(ctx, ">", c.cfg.Block)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.ErrorContext(ctx, "Failed to read events", slog.String("error", err.Error()))
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(time.Second):
			}
			continue
		}

		for _, msg := range messages {
			if ctx.Err() != nil {
				// Unprocessed entries stay pending and are replayed or reclaimed later.
				return nil
			}
			c.process(ctx, msg)
		}
	}
}

// replayOwnPending processes entries delivered to this consumer name that were
// never acknowledged, e.g. because the previous process crashed mid-handler.
func (c *StreamConsumer) replayOwnPending(ctx context.Context) error {
	// Reading history past the last seen id guarantees progress even when an
	// entry cannot be settled and stays pending.
	start := "0"
	for ctx.Err() == nil {
		messages, err := c.read(ctx, start, -1)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			return nil
		}
		c.logger.InfoContext(ctx, "Replaying pending events", slog.Int("count", len(messages)))
		for _, msg := range messages {
			c.process(ctx, msg)
		}
		start = messages[len(messages)-1].ID
	}
	return nil
}

// reclaimOnce takes over entries other consumers left idle for too long.
func (c *StreamConsumer) reclaimOnce(ctx context.Context) error {
	pending, err := c.client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: c.cfg.Stream,
		Group:  c.cfg.Group,
		Idle:   c.cfg.ClaimMinIdle,
		Start:  "-",
		End:    "+",
		Count:  c.cfg.BatchSize,
	}).Result()
	if err != nil {
		return fmt.Errorf("xpending: %w", err)
	}

	for _, p := range pending {
		if ctx.Err() != nil {
			return nil
		}
		claimed, err := c.client.XClaim(ctx, &redis.XClaimArgs{
			Stream:   c.cfg.Stream,
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			MinIdle:  c.cfg.ClaimMinIdle,
			Messages: []string{p.ID},
		}).Result()
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to claim event",
				slog.String("message_id", p.ID),
				slog.String("original_consumer", p.Consumer),
				slog.String("error", err.Error()))
			continue
		}
		if len(claimed) == 0 {
			// Another consumer got there first.
			continue
		}

		c.logger.InfoContext(ctx, "Reclaimed stale event",
			slog.String("message_id", p.ID),
			slog.String("original_consumer", p.Consumer),
			slog.Duration("idle", p.Idle),
			slog.Int64("deliveries", p.RetryCount))
		for _, raw := range claimed {
			msg, ok := c.decode(ctx, raw)
			if !ok {
				continue
			}
			// Each delivery that never finished counts as an attempt.
			if n := int(p.RetryCount); n > msg.Attempt {
				msg.Attempt = n
			}
			c.process(ctx, msg)
		}
	}
	return nil
}

func (c *StreamConsumer) read(ctx context.Context, start string, block time.Duration) ([]Message, error) {
	streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, start},
		Count:    c.cfg.BatchSize,
		Block:    block,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading from stream: %w", err)
	}

	var messages []Message
	for _, stream := range streams {
		for _, raw := range stream.Messages {
			if msg, ok := c.decode(ctx, raw); ok {
				messages = append(messages, msg)
			}
		}
	}
	return messages, nil
}

// decode parses raw, acknowledging and dropping it when it is malformed.
func (c *StreamConsumer) decode(ctx context.Context, raw redis.XMessage) (Message, bool) {
	msg, err := decodeMessage(raw)
	if err != nil {
		c.logger.ErrorContext(ctx, "Dropping malformed event",
			slog.String("message_id", raw.ID),
			slog.String("error", err.Error()))
		_ = c.ack(ctx, raw.ID)
		return Message{}, false
	}
	return msg, true
}

// process runs the handler and settles the entry. The run is detached from ctx
// so a shutdown lets the current event finish instead of leaving it half done.
func (c *StreamConsumer) process(ctx context.Context, msg Message) {
	logger := c.logger.With(
		slog.String("message_id", msg.ID),
		slog.String("event_type", string(msg.Event.Type)),
		slog.Int("attempt", msg.Attempt))

	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.HandlerTimeout)
	defer cancel()

	err := runHandler(middleware.WithLogger(runCtx, logger), c.handler, msg.Event)
	if err == nil {
		if ackErr := c.ack(runCtx, msg.ID); ackErr != nil {
			logger.ErrorContext(runCtx, "Failed to ack event", slog.String("error", ackErr.Error()))
		}
		return
	}

	if msg.Attempt >= c.cfg.MaxAttempts {
		if dlqErr := c.moveToDLQ(runCtx, msg, err.Error()); dlqErr != nil {
			logger.ErrorContext(runCtx, "Failed to move event to DLQ", slog.String("error", dlqErr.Error()))
		}
		return
	}

	logger.WarnContext(runCtx, "Event handler failed, requeueing", slog.String("error", err.Error()))
	if reqErr := c.requeue(runCtx, msg, err.Error()); reqErr != nil {
		logger.ErrorContext(runCtx, "Failed to requeue event", slog.String("error", reqErr.Error()))
	}
}

func (c *StreamConsumer) ack(ctx context.Context, id string) error {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, id).Err(); err != nil {
		return fmt.Errorf("xack (stream=%s): %w", c.cfg.Stream, err)
	}
	return nil
}

// requeue appends the next attempt and only then acknowledges the failed entry.
// If the XADD fails the entry stays pending and is reclaimed later.
func (c *StreamConsumer) requeue(ctx context.Context, msg Message, errMsg string) error {
	values, err := encodeMessage(msg.Event, msg.Attempt+1)
	if err != nil {
		return err
	}
	values["last_error"] = errMsg
	if err := c.client.XAdd(ctx, &redis.XAddArgs{Stream: c.cfg.Stream, Values: values}).Err(); err != nil {
		return fmt.Errorf("xadd requeue: %w", err)
	}
	if err := c.ack(ctx, msg.ID); err != nil {
		return fmt.Errorf("acking requeued message: %w", err)
	}
	return nil
}

func (c *StreamConsumer) moveToDLQ(ctx context.Context, msg Message, errMsg string) error {
	values, err := encodeMessage(msg.Event, msg.Attempt)
	if err != nil {
		return err
	}
	values["error"] = errMsg
	if err := c.client.XAdd(ctx, &redis.XAddArgs{Stream: c.cfg.DLQStream, Values: values}).Err(); err != nil {
		return fmt.Errorf("xadd dlq (stream=%s): %w", c.cfg.DLQStream, err)
	}
	if err := c.ack(ctx, msg.ID); err != nil {
		return fmt.Errorf("acking dead-lettered message: %w", err)
	}
	c.logger.ErrorContext(ctx, "Event sent to DLQ",
		slog.String("event_type", string(msg.Event.Type)),
		slog.String("final_error", errMsg),
		slog.String("dlq_stream", c.cfg.DLQStream))
	return nil
}

func encodeMessage(evt Event, attempt int) (map[string]any, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("encoding event: %w", err)
	}
	if attempt <= 0 {
		attempt = 1
	}
	return map[string]any{
		"event_type": string(evt.Type),
		"payload":    string(payload),
		"attempt":    attempt,
	}, nil
}

func decodeMessage(raw redis.XMessage) (Message, error) {
	payload, ok := raw.Values["payload"]
	if !ok {
		return Message{}, fmt.Errorf("missing payload")
	}

	var evt Event
	if err := json.Unmarshal([]byte(fmt.Sprint(payload)), &evt); err != nil {
		return Message{}, fmt.Errorf("parsing payload: %w", err)
	}
	if evt.Type == "" {
		return Message{}, fmt.Errorf("missing event type")
	}

	attempt := 1
	if rawAttempt, ok := raw.Values["attempt"]; ok {
		n, err := strconv.Atoi(fmt.Sprint(rawAttempt))
		if err != nil {
			return Message{}, fmt.Errorf("parsing attempt: %w", err)
		}
		if n > 0 {
			attempt = n
		}
	}

	return Message{ID: raw.ID, Event: evt, Attempt: attempt}, nil
}
