package infra

import (
	"context"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ChangeListener relays NOTIFY payloads (table names) to a callback.
type ChangeListener struct {
	listener *pq.Listener
	log      *zap.Logger
	onChange func(table string)
	done     chan struct{}
}

func NewChangeListener(dsn, channel string, log *zap.Logger, onChange func(table string)) (*ChangeListener, error) {
	report := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Warn("postgres listener event", zap.Int("event", int(ev)), zap.Error(err))
		}
	}

	l := pq.NewListener(dsn, 2*time.Second, time.Minute, report)
	if err := l.Listen(channel); err != nil {
		_ = l.Close()
		return nil, err
	}

	return &ChangeListener{
		listener: l,
		log:      log,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

func (c *ChangeListener) Run(ctx context.Context) {
	defer close(c.done)
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-c.listener.Notify:
			if !ok {
				return
			}
			// nil notification means the connection was re-established and
			// events may have been missed.
			if n == nil {
				c.onChange("")
				continue
			}
			c.log.Debug("remote change", zap.String("table", n.Extra))
			c.onChange(n.Extra)
		case <-ping.C:
			if err := c.listener.Ping(); err != nil {
				c.log.Warn("postgres listener ping failed", zap.Error(err))
			}
		}
	}
}

func (c *ChangeListener) Close() error {
	err := c.listener.Close()
	<-c.done
	return err
}
