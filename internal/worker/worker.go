package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aescanero/greeting-machine/internal/config"
	"github.com/aescanero/greeting-machine/internal/greeting"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// stopTimeout bounds how long Stop waits for the processing loop.
const stopTimeout = 5 * time.Second

var errInvalidRequest = errors.New("invalid greeting request")

// StreamClient is the subset of Redis stream commands the worker uses.
// *redis.Client satisfies it.
type StreamClient interface {
	XGroupCreateMkStream(ctx context.Context, stream, group, start string) *redis.StatusCmd
	XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd
}

// Worker represents the greeting worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   StreamClient
	machine       *greeting.Machine
	metrics       *Metrics
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	done          chan struct{}
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient StreamClient,
	machine *greeting.Machine,
	metrics *Metrics,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		machine:       machine,
		metrics:       metrics,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		done:          make(chan struct{}),
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting greeting worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	go w.processWork()

	w.logger.Info("greeting worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight message to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping greeting worker", zap.String("worker_id", w.id))

	w.cancel()

	select {
	case <-w.done:
	case <-time.After(stopTimeout):
		return fmt.Errorf("worker %s did not stop within %s", w.id, stopTimeout)
	}

	w.logger.Info("greeting worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP means the group already exists
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer close(w.done)
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single greeting request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing greeting request",
		zap.String("message_id", messageID),
	)

	request, err := w.parseGreetingRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse greeting request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.metrics.observeFailure(reasonInvalidRequest)
		w.publishError(&GreetingRequest{RequestID: messageID}, err)
		w.acknowledgeMessage(messageID)
		return
	}

	result, err := w.processGreetingRequest(request)
	if err != nil {
		w.logger.Error("failed to process greeting request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		w.metrics.observeFailure(failureReason(err))
		w.publishError(request, err)
		w.acknowledgeMessage(messageID)
		return
	}

	if err := w.publishResult(result); err != nil {
		w.logger.Error("failed to publish greeting",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		w.metrics.observeFailure(reasonPublish)
	} else {
		w.metrics.observeRendered(string(result.Category))
	}

	w.acknowledgeMessage(messageID)
}

// GreetingRequest represents a greeting work request
type GreetingRequest struct {
	RequestID     string         `json:"request_id"`
	User          *greeting.User `json:"user"`
	Category      string         `json:"category,omitempty"`
	Locale        string         `json:"locale,omitempty"`
	CustomMessage string         `json:"custom_message,omitempty"`
}

// GreetingResult is published for every rendered greeting
type GreetingResult struct {
	GreetingID string            `json:"greeting_id"`
	RequestID  string            `json:"request_id"`
	Category   greeting.Category `json:"category"`
	Locale     string            `json:"locale"`
	Greeting   string            `json:"greeting"`
	Timestamp  time.Time         `json:"timestamp"`
}

// parseGreetingRequest parses a greeting request from a Redis message
func (w *Worker) parseGreetingRequest(values map[string]interface{}) (*GreetingRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing or invalid 'data' field", errInvalidRequest)
	}

	var request GreetingRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}

	return &request, nil
}

// processGreetingRequest renders the greeting for a request. An empty
// request locale falls back to the user's own locale.
func (w *Worker) processGreetingRequest(request *GreetingRequest) (*GreetingResult, error) {
	category, err := greeting.ParseCategory(request.Category)
	if err != nil {
		return nil, err
	}
	// Resolved here as well so the result reports the category used.
	if category == "" {
		category = w.machine.DefaultCategory()
	}

	localeTag := request.Locale
	if localeTag == "" && request.User != nil {
		localeTag = request.User.Locale()
	}

	text, err := w.machine.GenerateGreeting(request.User, category, localeTag, request.CustomMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to generate greeting: %w", err)
	}

	return &GreetingResult{
		GreetingID: uuid.NewString(),
		RequestID:  request.RequestID,
		Category:   category,
		Locale:     localeTag,
		Greeting:   text,
		Timestamp:  time.Now().UTC(),
	}, nil
}

// publishResult publishes a rendered greeting
func (w *Worker) publishResult(result *GreetingResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal greeting: %w", err)
	}

	_, err = w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	w.logger.Info("published greeting",
		zap.String("request_id", result.RequestID),
		zap.String("greeting_id", result.GreetingID),
		zap.String("category", string(result.Category)),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(request *GreetingRequest, err error) {
	errorEvent := map[string]interface{}{
		"request_id": request.RequestID,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}

	data, marshalErr := json.Marshal(errorEvent)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	_, publishErr := w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream + ".errors",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, errInvalidRequest):
		return reasonInvalidRequest
	case errors.Is(err, greeting.ErrNilUser):
		return reasonNilUser
	case errors.Is(err, greeting.ErrUnknownCategory):
		return reasonUnknownCategory
	default:
		return reasonOther
	}
}
