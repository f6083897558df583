package recorder

import "github.com/fertroya/cedears-ai-analyzer/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *model.AnalysisSnapshot) error { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
