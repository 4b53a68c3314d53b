// Package knowledge persists the learned question/answer pairs.
package knowledge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jeanpaul/helpdesk/internal/schema"
)

// DefaultPath is where the knowledge base lives unless configured otherwise.
const DefaultPath = "knowledge_base.json"

// ErrCorrupt is returned by Read when the document is not a knowledge base.
var ErrCorrupt = errors.New("knowledge base is corrupt")

// Record is a single learned question and its answer.
type Record struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Base is the ordered set of learned records. Duplicate questions are
// allowed; lookups return the first one.
type Base struct {
	Records []Record `json:"questions"`
}

// New returns an empty knowledge base.
func New() *Base {
	return &Base{Records: []Record{}}
}

const documentSchema = `{
	"type": "object",
	"required": ["questions"],
	"properties": {
		"questions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["question", "answer"],
				"properties": {
					"question": {"type": "string"},
					"answer": {"type": "string"}
				}
			}
		}
	}
}`

var validator = schema.NewValidator()

// Read parses the knowledge base at path without any recovery. A document
// that is not valid JSON or does not have the knowledge base shape yields an
// error wrapping ErrCorrupt.
func Read(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: %w: invalid JSON", path, ErrCorrupt)
	}
	if err := validator.Validate(documentSchema, path, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	base := New()
	if err := json.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", path, ErrCorrupt, err)
	}
	if base.Records == nil {
		base.Records = []Record{}
	}
	return base, nil
}

// Load reads the knowledge base at path. A missing or corrupt document is
// replaced by an empty base, which is written to path before returning, and
// a warning is printed to warn. Other read failures and a failure to write
// the replacement are returned.
func Load(path string, warn io.Writer) (*Base, error) {
	base, err := Read(path)
	if err == nil {
		return base, nil
	}
	if !errors.Is(err, fs.ErrNotExist) && !errors.Is(err, ErrCorrupt) {
		return nil, fmt.Errorf("load knowledge base: %w", err)
	}

	fmt.Fprintf(warn, "Error: Could not load data from %s. Initializing with an empty knowledge base.\n", path)
	base = New()
	if err := Save(path, base); err != nil {
		return nil, fmt.Errorf("initialize knowledge base: %w", err)
	}
	return base, nil
}

// Save writes the whole base to path. The document is written to a temporary
// file in the same directory and renamed over path, so readers see either the
// old or the new document. An existing file keeps its permissions, and a
// symlinked path is written through to its target.
func Save(path string, base *Base) error {
	records := base.Records
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(Base{Records: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal knowledge base: %w", err)
	}
	data = append(data, '\n')

	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save knowledge base: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save knowledge base: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("save knowledge base: %w", err)
	}
	return nil
}

// FindAnswer returns the answer of the first record whose question is
// exactly question.
func (b *Base) FindAnswer(question string) (string, bool) {
	for _, r := range b.Records {
		if r.Question == question {
			return r.Answer, true
		}
	}
	return "", false
}

// Questions returns the stored questions in order. The slice is a copy.
func (b *Base) Questions() []string {
	qs := make([]string, len(b.Records))
	for i, r := range b.Records {
		qs[i] = r.Question
	}
	return qs
}

// Len reports the number of records.
func (b *Base) Len() int {
	return len(b.Records)
}

// Add appends records and writes the base to path. If the write fails the
// records are dropped again, so memory never runs ahead of disk.
func (b *Base) Add(path string, records ...Record) error {
	if len(records) == 0 {
		return nil
	}
	n := len(b.Records)
	b.Records = append(b.Records, records...)
	if err := Save(path, b); err != nil {
		b.Records = b.Records[:n]
		return err
	}
	return nil
}

// Learn records a single new question/answer pair. See Add.
func (b *Base) Learn(path, question, answer string) error {
	return b.Add(path, Record{Question: question, Answer: answer})
}
