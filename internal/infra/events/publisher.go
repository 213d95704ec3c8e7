package events

import (
	"context"
	"fmt"
	"log/slog"

	"belizevibes-booking/internal/pkg/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// Bus is where booking events leave the service. Subscriber is only set for
// the in-memory driver, where consumers live in the same process. The
// in-memory channel is persistent: a subscriber that attaches after a publish
// still receives the message, which the process holds until it exits.
type Bus struct {
	Publisher  message.Publisher
	Subscriber message.Subscriber
	close      []func() error
}

func (b *Bus) Close() error {
	var firstErr error
	for i := len(b.close) - 1; i >= 0; i-- {
		if err := b.close[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func NewBus(ctx context.Context, cfg config.EventsConfig, logger *slog.Logger) (*Bus, error) {
	wlogger := watermill.NewSlogLogger(logger)

	switch cfg.Driver {
	case config.EventsDriverMemory, "":
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64, Persistent: true}, wlogger)
		return &Bus{Publisher: ch, Subscriber: ch, close: []func() error{ch.Close}}, nil

	case config.EventsDriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}

		pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client:     rdb,
			Marshaller: redisstream.DefaultMarshallerUnmarshaller{},
		}, wlogger)
		if err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to create redis stream publisher: %w", err)
		}
		return &Bus{Publisher: pub, close: []func() error{rdb.Close, pub.Close}}, nil

	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
