package mvvm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func undoModel() *SessionModel {
	return NewSessionModel("TestModel", WithCatalogue(testCatalogue()), WithUndoLimit(0))
}

func TestUndoRedoInsert(t *testing.T) {
	model := undoModel()
	stack := model.UndoStack()
	require.NotNil(t, stack)
	assert.False(t, stack.CanUndo())

	item, err := model.InsertNewItem("Vector", nil, Append(""))
	require.NoError(t, err)
	id := item.Identifier()
	assert.Equal(t, 1, stack.Count())
	assert.Equal(t, 1, stack.Index())
	assert.True(t, stack.CanUndo())

	require.NoError(t, stack.Undo())
	assert.Empty(t, model.TopItems())
	assert.True(t, stack.CanRedo())

	require.NoError(t, stack.Redo())
	require.Len(t, model.TopItems(), 1)
	assert.Equal(t, id, model.TopItems()[0].Identifier())
	assert.False(t, stack.CanRedo())
}

func TestUndoRedoSetData(t *testing.T) {
	model := undoModel()
	item, _ := model.InsertNewItem("Property", nil, Append(""))
	id := item.Identifier()
	stack := model.UndoStack()

	require.NoError(t, item.SetValue(1.0))
	require.NoError(t, item.SetValue(2.0))
	assert.Equal(t, 3, stack.Count())

	// Unchanged values are not recorded
	require.NoError(t, item.SetValue(2.0))
	assert.Equal(t, 3, stack.Count())

	require.NoError(t, stack.Undo())
	assert.Equal(t, 1.0, item.Value())
	require.NoError(t, stack.Undo())
	assert.Equal(t, 0.0, item.Value())
	require.NoError(t, stack.Undo())
	assert.Empty(t, model.TopItems())

	// Redo of the insert restores the identifier the data commands address
	require.NoError(t, stack.Redo())
	require.NoError(t, stack.Redo())
	require.NoError(t, stack.Redo())
	restored := model.FindItem(id)
	require.NotNil(t, restored)
	assert.Equal(t, 2.0, restored.Value())
}

func TestUndoRoundTrip(t *testing.T) {
	model := undoModel()
	stack := model.UndoStack()
	initial := model.Snapshot()

	a, _ := model.InsertNewItem("Container", nil, Append(""))
	b, _ := model.InsertNewItem("Container", nil, Append(""))
	v, _ := model.InsertNewItem("Vector", a, Append(""))
	require.NoError(t, v.SetProperty("X", 1.5))
	require.NoError(t, model.MoveItem(v, b, Append("")))
	_, err := model.CopyItem(v, a, Append(""))
	require.NoError(t, err)
	require.NoError(t, model.RemoveItem(nil, TagRow{RootTag, 0}))
	final := model.Snapshot()

	for stack.CanUndo() {
		require.NoError(t, stack.Undo())
	}
	assert.Equal(t, initial, model.Snapshot())

	for stack.CanRedo() {
		require.NoError(t, stack.Redo())
	}
	assert.Equal(t, final, model.Snapshot())
}

func TestPushTruncatesRedo(t *testing.T) {
	model := undoModel()
	stack := model.UndoStack()
	model.InsertNewItem("Property", nil, Append(""))
	model.InsertNewItem("Property", nil, Append(""))
	require.NoError(t, stack.Undo())
	assert.Equal(t, 2, stack.Count())

	model.InsertNewItem("Container", nil, Append(""))
	assert.Equal(t, 2, stack.Count())
	assert.Equal(t, 2, stack.Index())
	assert.False(t, stack.CanRedo())
}

func TestUndoLimit(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()), WithUndoLimit(2))
	stack := model.UndoStack()
	for i := 0; i < 4; i++ {
		model.InsertNewItem("Property", nil, Append(""))
	}
	assert.Equal(t, 2, stack.Count())
	assert.Equal(t, 2, stack.Index())

	stack.SetUndoLimit(1)
	assert.Equal(t, 1, stack.Count())
	for stack.CanUndo() {
		require.NoError(t, stack.Undo())
	}
	assert.Len(t, model.TopItems(), 3)
}

func TestMacro(t *testing.T) {
	model := undoModel()
	stack := model.UndoStack()

	stack.BeginMacro("two items")
	model.InsertNewItem("Property", nil, Append(""))
	model.InsertNewItem("Vector", nil, Append(""))
	assert.False(t, stack.CanUndo(), "macro is open")
	require.NoError(t, stack.EndMacro())

	assert.Equal(t, 1, stack.Count())
	assert.Equal(t, "two items", stack.Description(0))
	require.NoError(t, stack.Undo())
	assert.Empty(t, model.TopItems())
	require.NoError(t, stack.Redo())
	assert.Len(t, model.TopItems(), 2)

	stack.BeginMacro("empty")
	require.NoError(t, stack.EndMacro())
	assert.Equal(t, 1, stack.Count())

	assert.True(t, errors.Is(stack.EndMacro(), ErrCommandState))
}

func TestUndoDropsBrokenCommand(t *testing.T) {
	model := undoModel()
	stack := model.UndoStack()
	item, _ := model.InsertNewItem("Property", nil, Append(""))
	require.NoError(t, item.SetValue(1.0))

	// Swap the item behind the stack's back
	model.SetUndoRedoEnabled(false)
	require.NoError(t, model.RemoveItem(nil, TagRow{RootTag, 0}))
	model.InsertNewItem("Property", nil, Append(""))
	model.undoStack = stack

	err := stack.Undo()
	assert.True(t, errors.Is(err, ErrResolution))
	assert.Equal(t, 1, stack.Count())
	assert.Equal(t, 1, stack.Index())
}

func TestSetUndoRedoEnabled(t *testing.T) {
	model := NewSessionModel("TestModel", WithCatalogue(testCatalogue()))
	assert.Nil(t, model.UndoStack())
	model.SetUndoRedoEnabled(true)
	require.NotNil(t, model.UndoStack())
	model.InsertNewItem("Property", nil, Append(""))
	assert.Equal(t, 1, model.UndoStack().Count())

	model.SetUndoRedoEnabled(false)
	assert.Nil(t, model.UndoStack())
}
