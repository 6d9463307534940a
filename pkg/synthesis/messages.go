package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gnsynth/pkg/query"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// Texts of messages.
const (
	msgNoView         = "Plugin view does not exist"
	msgNoDataSource   = "DataSource not found for retrieve request"
	msgInvalidQuery   = "Translated query for datasource %s is not valid."
	msgUnexpected     = "Unexpected Error(%T): %s"
	msgMissingID      = "query.id field is missing and is required for monitoring feature request by id."
	msgIDWithFeatures = "Monitoring Feature query has both id %s and monitoring_feature %s specified. " +
		"Removing monitoring_feature and using id."
)

// messageLog collects messages of one synthesis call.
type messageLog struct {
	acc      *Access
	logger   *slog.Logger
	messages []query.Message
}

func newMessageLog(acc *Access, synthesisID string) *messageLog {
	return &messageLog{
		acc:    acc,
		logger: slog.With("synthesis_id", synthesisID),
	}
}

func (l *messageLog) warn(ctx context.Context, where []string, msg string) {
	l.add(ctx, vocab.LevelWarn, where, msg)
}

func (l *messageLog) fail(ctx context.Context, where []string, msg string) {
	l.add(ctx, vocab.LevelError, where, msg)
}

func (l *messageLog) unexpected(ctx context.Context, where []string, err error) {
	l.fail(ctx, where, fmt.Sprintf(msgUnexpected, err, err))
}

func (l *messageLog) add(
	ctx context.Context,
	level vocab.MessageLevel,
	where []string,
	msg string,
) {
	m := query.Message{
		Msg:   msg,
		Level: level,
		Where: slices.Clone(where),
	}
	if m.Where == nil {
		m.Where = []string{}
	}
	l.messages = append(l.messages, m)

	attr := slog.String("where", strings.Join(where, "/"))
	switch level {
	case vocab.LevelWarn:
		l.logger.Warn(msg, attr)
	default:
		l.logger.Error(msg, attr, "level", string(level))
	}

	if l.acc.rec != nil {
		l.acc.rec.AddMessage(ctx, l.acc.mt, m)
	}
}

func (l *messageLog) list() []query.Message {
	return slices.Clone(l.messages)
}
