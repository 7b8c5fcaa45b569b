// Package nlp turns free-form text into a structured task draft by calling a
// language-model completion service. Callers treat any failure as a signal to
// fall back to the raw text; errors from Extract must never reach a client.
package nlp

import (
	"context"
	"time"
)

// Extraction is the structured result of parsing one piece of user text.
// Deadline is nil when the model could not pin down a time.
type Extraction struct {
	Title    string
	Deadline *time.Time
}

// Extractor parses text into a task draft. referenceTime anchors relative
// phrases such as "tomorrow morning".
type Extractor interface {
	Extract(ctx context.Context, text string, referenceTime time.Time) (*Extraction, error)
}
