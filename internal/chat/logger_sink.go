package chat

import (
	"context"

	"go.uber.org/zap"
)

// LoggerSink writes messages to a zap logger. The CLI uses it as its
// chat window; the server adds it next to the roll log.
type LoggerSink struct {
	logger *zap.Logger
}

// NewLoggerSink creates a LoggerSink. A nil logger discards output.
func NewLoggerSink(logger *zap.Logger) *LoggerSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerSink{logger: logger}
}

// Send logs the message at info
func (s *LoggerSink) Send(_ context.Context, msg *Message) error {
	s.logger.Info(msg.Flavor,
		zap.String("message_id", msg.ID),
		zap.String("agent_id", msg.AgentID),
		zap.String("speaker", msg.Speaker),
		zap.String("visibility", string(msg.Visibility)),
		zap.String("kind", string(msg.Kind)),
		zap.Int("total", msg.Total),
		zap.String("content", msg.Content),
	)
	return nil
}
