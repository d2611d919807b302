package builtin

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textsaver/internal/saver"
	"textsaver/internal/tools"
)

func newSaveTextTool(t *testing.T) (tools.ToolExecutor, string) {
	t.Helper()
	dir := t.TempDir()
	sv, err := saver.New(saver.Config{BaseDir: dir})
	require.NoError(t, err)
	return NewSaveText(sv), sv.BaseDir()
}

func execute(t *testing.T, tool tools.ToolExecutor, args map[string]any) (*tools.ToolResult, saver.Result) {
	t.Helper()
	result, err := tool.Execute(context.Background(), tools.ToolCall{ID: "1", Name: "save_text", Arguments: args})
	require.NoError(t, err)

	var res saver.Result
	require.NoError(t, json.Unmarshal([]byte(result.Content), &res),
		"tool content must always be a structured result payload")
	return result, res
}

func TestSaveTextExecute(t *testing.T) {
	tool, dir := newSaveTextTool(t)

	result, res := execute(t, tool, map[string]any{"text": "hello", "filename": "notes.txt"})
	assert.NoError(t, result.Error)
	assert.True(t, res.Success)
	assert.Equal(t, filepath.Join(dir, "notes.txt"), res.Path)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
}

func TestSaveTextMissingText(t *testing.T) {
	tool, _ := newSaveTextTool(t)

	result, res := execute(t, tool, map[string]any{"filename": "notes.txt"})
	assert.Error(t, result.Error)
	assert.False(t, res.Success)
	assert.Equal(t, string(saver.KindInvalidInput), res.Kind)
}

func TestSaveTextNonStringText(t *testing.T) {
	tool, dir := newSaveTextTool(t)

	// JSON numbers, bools and objects are all rejected the same way.
	for _, bad := range []any{float64(42), true, map[string]any{"a": 1}} {
		result, res := execute(t, tool, map[string]any{"text": bad})
		assert.Error(t, result.Error)
		assert.False(t, res.Success)
		assert.Contains(t, res.Error, "text must be a string")
	}

	// No file may be created for rejected input.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveTextNonStringFilename(t *testing.T) {
	tool, _ := newSaveTextTool(t)

	result, res := execute(t, tool, map[string]any{"text": "data", "filename": float64(7)})
	assert.Error(t, result.Error)
	assert.False(t, res.Success)
	assert.Contains(t, res.Error, "filename must be a string")
}

func TestSaveTextNullFilenameGeneratesName(t *testing.T) {
	tool, _ := newSaveTextTool(t)

	result, res := execute(t, tool, map[string]any{"text": "data", "filename": nil})
	assert.NoError(t, result.Error)
	assert.True(t, res.Success)
	assert.Contains(t, res.Filename, "saved_text_")
}

func TestSaveTextDefinition(t *testing.T) {
	tool, _ := newSaveTextTool(t)

	def := tool.Definition()
	assert.Equal(t, "save_text", def.Name)
	assert.Equal(t, "object", def.Parameters.Type)
	assert.Equal(t, []string{"text"}, def.Parameters.Required)
	assert.Contains(t, def.Parameters.Properties, "text")
	assert.Contains(t, def.Parameters.Properties, "filename")

	meta := tool.Metadata()
	assert.Equal(t, "save_text", meta.Name)
	assert.True(t, meta.Dangerous)
}
