package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/DRSN-tech/go-catalog/internal/cfg"
	"github.com/DRSN-tech/go-catalog/internal/usecase"
	"github.com/DRSN-tech/go-catalog/pkg/e"
	"github.com/DRSN-tech/go-catalog/pkg/jitter"
	"github.com/DRSN-tech/go-catalog/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	eventTypeHeader = "event_type"

	retryBase = 100 * time.Millisecond
	retryMax  = 2 * time.Second
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer публикует события каталога в Kafka. Значение сообщения google.protobuf.Struct,
// ключ равен имени продукта, поэтому события одного продукта попадают в одну партицию.
type Producer struct {
	writer messageWriter
	logger logger.Logger
	policy jitter.Policy
	topic  string
}

func NewProducer(logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            1,
		BatchSize:              10,
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           10 * time.Second,
		AllowAutoTopicCreation: true,
	}

	return newProducer(writer, logger, cfg)
}

func newProducer(writer messageWriter, logger logger.Logger, cfg *cfg.KafkaCfg) *Producer {
	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
		policy: jitter.Policy{
			Attempts: cfg.MaxAttempts,
			Base:     retryBase,
			Max:      retryMax,
			Jitter:   jitter.DefaultJitter,
		},
	}
}

// WriteMessage кодирует событие и отправляет его, повторяя попытки с экспоненциальной задержкой.
func (p *Producer) WriteMessage(ctx context.Context, req *usecase.WriteMessageReq) error {
	value, err := EncodeEvent(req)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	msg := kafka.Message{
		Key:   []byte(req.Key),
		Value: value,
		Time:  req.OccurredAt,
		Headers: []kafka.Header{
			{Key: eventTypeHeader, Value: []byte(req.Type)},
		},
	}

	err = jitter.Retry(ctx, p.policy, func(ctx context.Context, attempt int) error {
		if err := p.writer.WriteMessages(ctx, msg); err != nil {
			p.logger.Warnf("Kafka write failed: topic=%s event=%s attempt=%d: %v", p.topic, req.ID, attempt+1, err)
			return err
		}
		return nil
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("%w: %w", e.ErrPublishAttempts, err))
	}

	p.logger.Debugf("Event published: topic=%s type=%s key=%s", p.topic, req.Type, req.Key)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// EncodeEvent сериализует событие в protobuf Struct:
// {event_id, type, key, occurred_at (RFC 3339), payload}.
func EncodeEvent(req *usecase.WriteMessageReq) ([]byte, error) {
	payload := req.Payload
	if payload == nil {
		payload = map[string]any{}
	}

	event, err := structpb.NewStruct(map[string]any{
		"event_id":    req.ID,
		"type":        string(req.Type),
		"key":         req.Key,
		"occurred_at": req.OccurredAt.UTC().Format(time.RFC3339Nano),
		"payload":     payload,
	})
	if err != nil {
		return nil, e.Wrap("EncodeEvent", err)
	}

	return proto.Marshal(event)
}

// DecodeEvent выполняет обратное к EncodeEvent преобразование для потребителей и тестов.
func DecodeEvent(data []byte) (map[string]any, error) {
	var event structpb.Struct
	if err := proto.Unmarshal(data, &event); err != nil {
		return nil, e.Wrap("DecodeEvent", err)
	}

	return event.AsMap(), nil
}
