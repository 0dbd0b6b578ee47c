package standarditems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

func newModel() *mvvm.SessionModel {
	return mvvm.NewSessionModel("TestModel", mvvm.WithCatalogue(NewCatalogue()), mvvm.WithUndoLimit(0))
}

func TestCatalogue(t *testing.T) {
	c := NewCatalogue()
	for _, modelType := range c.ModelTypes() {
		item, err := c.Create(modelType)
		require.NoError(t, err, modelType)
		assert.Equal(t, modelType, item.ModelType())
	}
	assert.Len(t, c.ModelTypes(), 10)
}

func TestCompound(t *testing.T) {
	item := NewCompound()
	property, err := AddProperty(item, "thickness", 42.0)
	require.NoError(t, err)
	assert.Equal(t, "thickness", property.DisplayName())
	assert.Equal(t, 42.0, item.Property("thickness"))
	assert.Equal(t, "thickness", item.DefaultTag())

	_, err = AddProperty(item, "thickness", 1.0)
	assert.True(t, errors.Is(err, mvvm.ErrConfiguration))

	model := newModel()
	inserted, err := model.InsertItem(func() *mvvm.SessionItem { return item }, nil, mvvm.Append(""))
	require.NoError(t, err)
	_, err = AddProperty(inserted, "other", 1)
	assert.True(t, errors.Is(err, mvvm.ErrConfiguration))
}

func TestContainer(t *testing.T) {
	model := newModel()
	container, err := model.InsertNewItem(ContainerType, nil, mvvm.Append(""))
	require.NoError(t, err)
	assert.Equal(t, TagItems, container.DefaultTag())

	_, err = model.InsertNewItem(VectorType, container, mvvm.Append(""))
	require.NoError(t, err)
	_, err = model.InsertNewItem(GraphType, container, mvvm.Append(""))
	require.NoError(t, err)
	assert.Equal(t, 2, container.ItemCount(TagItems))
}

func TestVector(t *testing.T) {
	model := newModel()
	item, err := model.InsertNewItem(VectorType, nil, mvvm.Append(""))
	require.NoError(t, err)
	vector, ok := AsVector(item)
	require.True(t, ok)
	assert.Equal(t, "(0, 0, 0)", vector.String())

	require.NoError(t, vector.Set(1, 2, 3))
	assert.Equal(t, 3.0, vector.Z())

	// Set is a single step
	require.NoError(t, model.UndoStack().Undo())
	assert.Equal(t, "(0, 0, 0)", vector.String())

	_, ok = AsVector(NewContainer())
	assert.False(t, ok)

	// Coordinates are properties and can't be removed
	assert.Error(t, model.RemoveItem(item, mvvm.TagRow{Tag: PropertyX, Row: 0}))
}

func TestFixedBinAxis(t *testing.T) {
	axis, ok := AsFixedBinAxis(newDefaultFixedBinAxis())
	require.True(t, ok)
	assert.Equal(t, []float64{0.5}, axis.BinCenters())
	assert.Equal(t, 1, axis.Size())

	axis, _ = AsFixedBinAxis(NewFixedBinAxis(3, 1.0, 4.0))
	assert.Equal(t, 3, axis.Property(PropertyNbins))
	assert.Equal(t, []float64{1.5, 2.5, 3.5}, axis.BinCenters())
	assert.Equal(t, 3, axis.Size())
	lower, upper := axis.Range()
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 4.0, upper)

	require.NoError(t, axis.SetBins(2, 0, 2))
	assert.Equal(t, []float64{0.5, 1.5}, axis.BinCenters())
	assert.True(t, errors.Is(axis.SetBins(0, 0, 1), mvvm.ErrConfiguration))
}

func TestViewportAxis(t *testing.T) {
	axis, ok := AsViewportAxis(NewViewportAxis())
	require.True(t, ok)
	lower, upper := axis.Range()
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 1.0, upper)
	assert.False(t, axis.IsLog())

	require.NoError(t, axis.SetRange(1.0, 2.0))
	assert.Equal(t, 1.0, axis.Property(PropertyMin))
	assert.Equal(t, 2.0, axis.Property(PropertyMax))
	require.NoError(t, axis.SetLog(true))
	assert.True(t, axis.IsLog())
}

func TestData1D(t *testing.T) {
	model := newModel()
	item, err := model.InsertNewItem(Data1DType, nil, mvvm.Append(""))
	require.NoError(t, err)
	data, ok := AsData1D(item)
	require.True(t, ok)
	assert.Empty(t, data.Values())
	assert.Empty(t, data.BinCenters())

	assert.True(t, errors.Is(data.SetValues([]float64{1}), mvvm.ErrConfiguration), "no axis")

	require.NoError(t, data.SetAxis(NewFixedBinAxis(3, 0, 3)))
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, data.BinCenters())
	assert.Equal(t, []float64{0, 0, 0}, data.Values())

	require.NoError(t, data.SetValues([]float64{2, -1, 4}))
	lower, upper := data.ValueRange()
	assert.Equal(t, -1.0, lower)
	assert.Equal(t, 4.0, upper)
	assert.True(t, errors.Is(data.SetValues([]float64{1, 2}), mvvm.ErrConfiguration))

	require.NoError(t, data.Scale(2))
	assert.Equal(t, []float64{4, -2, 8}, data.Values())

	// Replacing the axis keeps a single axis, and is undone in one step
	require.NoError(t, data.SetAxis(NewFixedBinAxis(2, 0, 1)))
	assert.Equal(t, 1, item.ItemCount(TagAxis))
	assert.Equal(t, []float64{0, 0}, data.Values())
	require.NoError(t, model.UndoStack().Undo())
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, data.BinCenters())
	assert.Equal(t, []float64{4, -2, 8}, data.Values())

	assert.True(t, errors.Is(data.SetAxis(NewViewportAxis()), mvvm.ErrConfiguration))
}

func TestGraphLink(t *testing.T) {
	model := newModel()
	container, _ := model.InsertNewItem(ContainerType, nil, mvvm.Append(""))
	dataItem, _ := model.InsertNewItem(Data1DType, container, mvvm.Append(""))
	data, _ := AsData1D(dataItem)
	require.NoError(t, data.SetAxis(NewFixedBinAxis(2, 0, 2)))
	require.NoError(t, data.SetValues([]float64{5, 6}))

	viewportItem, err := model.InsertNewItem(GraphViewportType, nil, mvvm.Append(""))
	require.NoError(t, err)
	graphItem, err := model.InsertNewItem(GraphType, viewportItem, mvvm.Append(""))
	require.NoError(t, err)
	graph, ok := AsGraph(graphItem)
	require.True(t, ok)

	_, ok = graph.DataItem()
	assert.False(t, ok)
	require.NoError(t, graph.SetDataItem(data))
	linked, ok := graph.DataItem()
	require.True(t, ok)
	assert.Same(t, dataItem, linked.SessionItem)
	assert.Equal(t, []float64{0.5, 1.5}, graph.BinCenters())
	assert.Equal(t, []float64{5, 6}, graph.Values())
	assert.Equal(t, DefaultGraphColor, graph.Color())

	// The link survives removal and undo, since identifiers are restored
	require.NoError(t, model.RemoveItem(container, mvvm.TagRow{Tag: TagItems, Row: 0}))
	_, ok = graph.DataItem()
	assert.False(t, ok)
	require.NoError(t, model.UndoStack().Undo())
	_, ok = graph.DataItem()
	assert.True(t, ok)
}

func TestGraphViewport(t *testing.T) {
	model := newModel()
	viewportItem, _ := model.InsertNewItem(GraphViewportType, nil, mvvm.Append(""))
	viewport, ok := AsGraphViewport(viewportItem)
	require.True(t, ok)
	assert.Equal(t, TagItems, viewportItem.DefaultTag())
	assert.Empty(t, viewport.Graphs())
	assert.True(t, errors.Is(viewport.SetViewportToContent(0), mvvm.ErrConfiguration))

	_, err := model.InsertNewItem(VectorType, viewportItem, mvvm.Append(""))
	assert.Error(t, err, "viewport only holds graphs")

	for _, values := range [][]float64{{1, 3}, {-2, 2}} {
		dataItem, _ := model.InsertNewItem(Data1DType, nil, mvvm.Append(""))
		data, _ := AsData1D(dataItem)
		require.NoError(t, data.SetAxis(NewFixedBinAxis(2, 0, 4)))
		require.NoError(t, data.SetValues(values))
		graphItem, _ := model.InsertNewItem(GraphType, viewportItem, mvvm.Append(""))
		graph, _ := AsGraph(graphItem)
		require.NoError(t, graph.SetDataItem(data))
	}
	require.Len(t, viewport.Graphs(), 2)

	require.NoError(t, viewport.SetViewportToContent(0.1))
	lower, upper := viewport.XAxis().Range()
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 3.0, upper)
	lower, upper = viewport.YAxis().Range()
	assert.InDelta(t, -2.5, lower, 1e-9)
	assert.InDelta(t, 3.5, upper, 1e-9)
}
