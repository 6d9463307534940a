package query

import (
	"github.com/gnames/gnsynth/pkg/model"
	"github.com/gnames/gnsynth/pkg/vocab"
)

// Message is a diagnostic message of a synthesis call.
type Message struct {
	// Msg is the text of the message.
	Msg string `json:"msg"`

	// Level is the severity of the message.
	Level vocab.MessageLevel `json:"level"`

	// Where is [datasource ID, model type] of the source the message is
	// about. Empty Where marks a message of the synthesis core.
	Where []string `json:"where"`
}

// Response is the result of a synthesis call.
type Response struct {
	// Query is the canonical query as it was executed.
	Query Query `json:"query"`

	// Data is the retrieved object or nil. Calls that list objects
	// return them through an iterator instead.
	Data model.Object `json:"data"`

	// Messages describe every place where the quality of the result
	// degraded.
	Messages []Message `json:"messages"`
}
