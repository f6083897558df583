package recorder

import "github.com/fertroya/cedears-ai-analyzer/internal/model"

// Recorder persists analysis snapshots for later inspection.
type Recorder interface {
	RecordSnapshot(snap *model.AnalysisSnapshot) error
	Close() error
}
