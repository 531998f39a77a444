package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresRelay передаёт изменения через LISTEN/NOTIFY. Отправка идёт через
// пул pgx, прослушивание - через отдельное соединение pq.Listener.
type PostgresRelay struct {
	pool         *pgxpool.Pool
	listener     *pq.Listener
	channel      string
	pingInterval time.Duration
	logger       *zap.Logger
}

func NewPostgresRelay(pool *pgxpool.Pool, dsn, channel string, logger *zap.Logger) (*PostgresRelay, error) {
	l := pq.NewListener(
		dsn,
		10*time.Second,
		time.Minute,
		func(ev pq.ListenerEventType, err error) {
			if err != nil {
				logger.Error("Ретранслятор Postgres: событие слушателя", zap.Error(err))
			}
		},
	)
	if err := l.Listen(channel); err != nil {
		l.Close()
		return nil, fmt.Errorf("failed to listen to channel: %w", err)
	}

	return &PostgresRelay{
		pool:         pool,
		listener:     l,
		channel:      channel,
		pingInterval: 90 * time.Second,
		logger:       logger,
	}, nil
}

func (r *PostgresRelay) Publish(ctx context.Context, change Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, "SELECT pg_notify($1, $2)", r.channel, string(payload))
	return err
}

func (r *PostgresRelay) Run(ctx context.Context, deliver func(Change)) error {
	r.logger.Info("Ретранслятор Postgres слушает канал", zap.String("channel", r.channel))

	pingTicker := time.NewTicker(r.pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case note := <-r.listener.Notify:
			if note == nil {
				// nil приходит после переподключения
				continue
			}
			var change Change
			if err := json.Unmarshal([]byte(note.Extra), &change); err != nil {
				r.logger.Warn("Ретранслятор Postgres: некорректное уведомление", zap.String("payload", note.Extra), zap.Error(err))
				continue
			}
			deliver(change)
		case <-pingTicker.C:
			if err := r.listener.Ping(); err != nil {
				r.logger.Error("Ретранслятор Postgres: ping не прошёл", zap.Error(err))
			}
		}
	}
}

func (r *PostgresRelay) Close() error {
	return r.listener.Close()
}
