package logging

import (
	"github.com/arthur-debert/srcexport/pkg/types"
	"github.com/rs/zerolog"
)

// Events is the zerolog-backed event sink used by the CLI. Traversal and copy
// events are chatty and go out at debug; run-level events at info.
type Events struct {
	logger zerolog.Logger
}

// NewEvents creates an event sink writing through the global logger
func NewEvents() *Events {
	return NewEventsWithLogger(GetLogger("export.events"))
}

// NewEventsWithLogger creates an event sink writing through logger
func NewEventsWithLogger(logger zerolog.Logger) *Events {
	return &Events{logger: logger}
}

// Log implements types.EventSink
func (e *Events) Log(category types.Category, value string) {
	var ev *zerolog.Event
	switch category {
	case types.CategoryConfiguration, types.CategoryCreateDirectory, types.CategorySummary:
		ev = e.logger.Info()
	default:
		ev = e.logger.Debug()
	}
	ev.Str("category", string(category)).Str("value", value).Msg(string(category))
}
