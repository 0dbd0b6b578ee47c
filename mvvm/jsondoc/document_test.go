package jsondoc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

func testCatalogue() *mvvm.ItemCatalogue {
	c := mvvm.NewItemCatalogue()
	c.RegisterItem("Parent", func() *mvvm.SessionItem {
		item := mvvm.NewSessionItem("Parent")
		item.RegisterTag(mvvm.UniversalTag("defaultTag"), true)
		return item
	}, "Parent")
	c.RegisterItem("Child", func() *mvvm.SessionItem {
		return mvvm.NewSessionItem("Child")
	}, "Child")
	return c
}

func newModel(modelType string) *mvvm.SessionModel {
	return mvvm.NewSessionModel(modelType, mvvm.WithCatalogue(testCatalogue()), mvvm.WithUndoLimit(0))
}

func TestSaveLoad(t *testing.T) {
	model := newModel("TestModel")
	parent, err := model.InsertNewItem("Parent", nil, mvvm.Append(""))
	require.NoError(t, err)
	child, err := model.InsertNewItem("Child", parent, mvvm.Append(""))
	require.NoError(t, err)
	_, err = model.SetData(parent, mvvm.RoleData, 42)
	require.NoError(t, err)
	parentID, childID := parent.Identifier(), child.Identifier()

	path := filepath.Join(t.TempDir(), "document.json")
	doc := New(model)
	require.NoError(t, doc.Save(path))

	require.NoError(t, model.RemoveItem(model.RootItem(), mvvm.TagRow{Tag: mvvm.RootTag, Row: 0}))
	assert.Empty(t, model.TopItems())

	require.NoError(t, doc.Load(path))
	require.Len(t, model.TopItems(), 1)
	restored := model.TopItems()[0]
	assert.Equal(t, parentID, restored.Identifier())
	assert.Equal(t, 42, restored.Value())
	assert.Equal(t, "defaultTag", restored.DefaultTag())
	require.Equal(t, 1, restored.ChildrenCount())
	assert.Equal(t, childID, restored.Children()[0].Identifier())
	assert.Same(t, restored, model.FindItem(parentID))

	// Loading resets the history
	assert.False(t, model.UndoStack().CanUndo())
}

func TestLoadSwappedModels(t *testing.T) {
	first, second := newModel("FirstModel"), newModel("SecondModel")
	_, err := first.InsertNewItem("Parent", nil, mvvm.Append(""))
	require.NoError(t, err)
	_, err = second.InsertNewItem("Child", nil, mvvm.Append(""))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "document.json")
	require.NoError(t, New(first, second).Save(path))

	first.Clear()
	second.Clear()
	err = New(second, first).Load(path)
	assert.True(t, errors.Is(err, mvvm.ErrRestore), err)
	assert.Empty(t, first.TopItems())
	assert.Empty(t, second.TopItems())

	err = New(first).Load(path)
	assert.True(t, errors.Is(err, mvvm.ErrRestore), "count mismatch")

	require.NoError(t, New(first, second).Load(path))
	assert.Len(t, first.TopItems(), 1)
	assert.Len(t, second.TopItems(), 1)
}

func TestLoadPartialFailure(t *testing.T) {
	first, second := newModel("FirstModel"), newModel("SecondModel")
	_, err := first.InsertNewItem("Parent", nil, mvvm.Append(""))
	require.NoError(t, err)
	_, err = second.InsertNewItem("Parent", nil, mvvm.Append(""))
	require.NoError(t, err)

	records := New(first, second).Records()
	records[1].Root.Items[0].Tag = "missing"

	first.Clear()
	err = New(first, second).Restore(records)
	assert.True(t, errors.Is(err, mvvm.ErrRestore), err)
	assert.Empty(t, first.TopItems(), "first model is untouched")
	assert.Len(t, second.TopItems(), 1)
}

func TestCompressedDocuments(t *testing.T) {
	for _, name := range []string{"document.json.gz", "document.json.zst"} {
		t.Run(name, func(t *testing.T) {
			model := newModel("TestModel")
			item, err := model.InsertNewItem("Parent", nil, mvvm.Append(""))
			require.NoError(t, err)
			require.NoError(t, item.SetValue([]float64{1, 2, 3}))

			path := filepath.Join(t.TempDir(), name)
			doc := New(model)
			require.NoError(t, doc.Save(path))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.NotContains(t, string(raw), item.Identifier())

			model.Clear()
			require.NoError(t, doc.Load(path))
			restored := model.FindItem(item.Identifier())
			require.NotNil(t, restored)
			assert.Equal(t, []float64{1, 2, 3}, restored.Value())
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	model := newModel("TestModel")
	item, err := model.InsertNewItem("Parent", nil, mvvm.Append(""))
	require.NoError(t, err)
	require.NoError(t, item.SetDisplayName("named"))

	var buf bytes.Buffer
	doc := New(model)
	doc.SetIndent(0)
	require.NoError(t, doc.Encode(&buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"), "compact output")

	model.Clear()
	require.NoError(t, doc.Decode(&buf))
	assert.Equal(t, "named", model.TopItems()[0].DisplayName())

	err = doc.Decode(strings.NewReader(`{"version": 7, "models": []}`))
	assert.True(t, errors.Is(err, mvvm.ErrRestore))
	err = doc.Decode(strings.NewReader(`not json`))
	assert.True(t, errors.Is(err, mvvm.ErrRestore))
}

func TestFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = New(newModel("TestModel")).Save(filepath.Join(t.TempDir(), "missing", "document.json"))
	assert.Error(t, err)
}

func TestSaveFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "document.json")
	doc := New(newModel("TestModel"))

	require.NoError(t, doc.Save(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, doc.Save(path))
	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
