package corpus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// notesDocument is the on-disk shape written by the overlay app.
type notesDocument struct {
	Records []LearningRecord `json:"records"`
}

// FileSource reads learning records from the overlay app's notes JSON file.
type FileSource struct {
	path string
	log  *logrus.Logger
}

// NewFileSource creates a FileSource reading from path.
func NewFileSource(path string, log *logrus.Logger) *FileSource {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &FileSource{path: path, log: log}
}

// LoadAll reads and validates all records from the notes file.
// A missing file yields an empty slice, not an error: the overlay app
// creates the file lazily on the first translation.
func (s *FileSource) LoadAll(_ context.Context) ([]LearningRecord, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read notes file: %w", err)
	}

	if len(raw) == 0 {
		return nil, nil
	}

	var doc notesDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse notes file %s: %w", s.path, err)
	}

	records := make([]LearningRecord, 0, len(doc.Records))
	for _, r := range doc.Records {
		normalize(&r)
		if !r.Usable() {
			s.log.WithField("record_id", r.ID).Warn("skipping record with no usable content")
			continue
		}
		records = append(records, r)
	}

	return records, nil
}

// normalize repairs fields that older versions of the overlay app left unset.
func normalize(r *LearningRecord) {
	if r.ImportantWords == nil {
		r.ImportantWords = map[string]string{}
	}
	if r.GrammarPoints == nil {
		r.GrammarPoints = map[string]string{}
	}
	if r.LearnCount < 1 {
		r.LearnCount = 1
	}
}
