package session

import (
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gnolang/tinfer/internal/config"
)

// Session is the per-run context handed to every point: configuration,
// logger, counters, and the invariant ID sequence. It is safe for
// concurrent use by points processed in parallel.
type Session struct {
	ID      uuid.UUID
	Config  *config.Config
	Metrics *Metrics

	logger *zap.Logger
	nextID atomic.Int64
}

// New creates a session. A nil cfg means config.Default and a nil logger
// discards output.
func New(cfg *config.Config, logger *zap.Logger) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		ID:      id,
		Config:  cfg,
		Metrics: newMetrics(),
		logger:  logger.With(zap.String("run", id.String())),
	}
}

func (s *Session) Logger() *zap.Logger { return s.logger }

// NextInvariantID returns a run-unique, increasing invariant ID.
func (s *Session) NextInvariantID() int {
	return int(s.nextID.Add(1))
}
