package knowledge

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_MissingFileCreatesEmptyBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knowledge_base.json")
	var warn bytes.Buffer

	base, err := Load(path, &warn)
	require.NoError(t, err)
	assert.Equal(t, 0, base.Len())
	assert.Contains(t, warn.String(), "Could not load data from "+path)

	onDisk, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, 0, onDisk.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"questions": []}`, string(data))
}

func TestLoad_CorruptFileIsReplaced(t *testing.T) {
	cases := map[string]string{
		"syntax":       `{"questions": [`,
		"wrong shape":  `{"faq": []}`,
		"wrong record": `{"questions": [{"question": "q"}]}`,
		"wrong type":   `{"questions": "none"}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kb.json")
			writeFile(t, path, content)
			var warn bytes.Buffer

			base, err := Load(path, &warn)
			require.NoError(t, err)
			assert.Equal(t, 0, base.Len())
			assert.NotEmpty(t, warn.String())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.JSONEq(t, `{"questions": []}`, string(data))
		})
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	writeFile(t, path, `{"questions": [
		{"question": "How can I pay?", "answer": "Card or cash."},
		{"question": "Do you deliver?", "answer": "Yes."}
	]}`)
	var warn bytes.Buffer

	base, err := Load(path, &warn)
	require.NoError(t, err)
	assert.Empty(t, warn.String())
	assert.Equal(t, []string{"How can I pay?", "Do you deliver?"}, base.Questions())
}

func TestLoad_UnreadableFileIsAnError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	path := filepath.Join(t.TempDir(), "kb.json")
	writeFile(t, path, `{"questions": []}`)
	require.NoError(t, os.Chmod(path, 0000))

	_, err := Load(path, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRead_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "not json")
	_, err = Read(bad)
	assert.True(t, errors.Is(err, ErrCorrupt))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	base := &Base{Records: []Record{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q1", Answer: "duplicate"},
		{Question: "Ünïcode? ", Answer: "  spaced\nanswer  "},
	}}

	require.NoError(t, Save(path, base))
	got, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, base.Records, got.Records)

	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, Save(path, got))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSave_NilRecordsWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, Save(path, &Base{}))

	var doc map[string]any
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, []any{}, doc["questions"])
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	require.NoError(t, Save(path, &Base{Records: []Record{{Question: "q", Answer: "a"}}}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "kb.json", entries[0].Name())
}

func TestSave_UnwritableDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "kb.json")
	err := Save(path, New())
	assert.Error(t, err)
}

func TestSave_KeepsExistingPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"questions": []}`), 0600))

	require.NoError(t, Save(path, &Base{Records: []Record{{Question: "q", Answer: "a"}}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0600), info.Mode().Perm())
}

func TestSave_NewFileIsWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, Save(path, New()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())
}

func TestSave_WritesThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges")
	}
	dir := t.TempDir()
	target := filepath.Join(dir, "data", "kb.json")
	require.NoError(t, os.Mkdir(filepath.Dir(target), 0755))
	writeFile(t, target, `{"questions": []}`)
	link := filepath.Join(dir, "kb.json")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, Save(link, &Base{Records: []Record{{Question: "q", Answer: "a"}}}))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&fs.ModeSymlink, "link must survive the save")

	got, err := Read(target)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Question: "q", Answer: "a"}}, got.Records)
}

func TestFindAnswer(t *testing.T) {
	base := &Base{Records: []Record{
		{Question: "Q", Answer: "first"},
		{Question: "Q", Answer: "second"},
		{Question: "Other", Answer: "other"},
	}}

	got, ok := base.FindAnswer("Q")
	assert.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = base.FindAnswer("q")
	assert.False(t, ok)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	base := &Base{Records: []Record{{Question: "Q", Answer: "A"}}}
	qs := base.Questions()
	qs[0] = "changed"
	assert.Equal(t, "Q", base.Records[0].Question)
}

func TestLearn_WritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	base := New()

	require.NoError(t, base.Learn(path, "What is the meaning of life?", "42"))
	assert.Equal(t, 1, base.Len())

	onDisk, err := Read(path)
	require.NoError(t, err)
	answer, ok := onDisk.FindAnswer("What is the meaning of life?")
	assert.True(t, ok)
	assert.Equal(t, "42", answer)
}

func TestAdd_RollsBackOnWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "kb.json")
	base := &Base{Records: []Record{{Question: "Q", Answer: "A"}}}

	err := base.Add(path, Record{Question: "new", Answer: "answer"})
	assert.Error(t, err)
	assert.Equal(t, 1, base.Len())
}

func TestAdd_Nothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, New().Add(path))
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
