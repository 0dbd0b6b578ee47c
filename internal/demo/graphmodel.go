// Package demo builds a small graph model used by the mvvmtool demo and the
// graphmodel example.
package demo

import (
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/CrimsonAS/qmvvm/mvvm"
	"github.com/CrimsonAS/qmvvm/mvvm/standarditems"
)

// ModelType of graph models
const ModelType = "GraphModel"

// Bins of the data of every new graph
const (
	Bins  = 20
	Lower = 0.0
	Upper = 2 * math.Pi
)

// Margin added to the value axis of the viewport
const Margin = 0.1

var palette = []string{"#209fdf", "#df5020", "#20df70", "#9f20df"}

// GraphModel holds a container of data items and a viewport showing a
// graph for each of them.
type GraphModel struct {
	*mvvm.SessionModel
	rand *rand.Rand
}

// NewGraphModel creates the model with an empty container and viewport.
// The seed makes generated values reproducible.
func NewGraphModel(undoLimit int, log *zap.Logger, seed int64) (*GraphModel, error) {
	model := &GraphModel{
		SessionModel: mvvm.NewSessionModel(ModelType,
			mvvm.WithCatalogue(standarditems.NewCatalogue()),
			mvvm.WithLogger(log),
			mvvm.WithUndoLimit(undoLimit)),
		rand: rand.New(rand.NewSource(seed)),
	}
	if _, err := model.InsertNewItem(standarditems.ContainerType, nil, mvvm.Append("")); err != nil {
		return nil, err
	}
	if _, err := model.InsertNewItem(standarditems.GraphViewportType, nil, mvvm.Append("")); err != nil {
		return nil, err
	}
	// Setup isn't undoable
	model.UndoStack().Clear()
	return model, nil
}

// NewCatalogueModel returns an empty model of modelType that knows every
// standard item.
func NewCatalogueModel(modelType string) *mvvm.SessionModel {
	return mvvm.NewSessionModel(modelType, mvvm.WithCatalogue(standarditems.NewCatalogue()))
}

func (m *GraphModel) topItem(modelType string) *mvvm.SessionItem {
	for _, item := range m.TopItems() {
		if item.ModelType() == modelType {
			return item
		}
	}
	return nil
}

// Container returns the container holding data items
func (m *GraphModel) Container() *mvvm.SessionItem {
	return m.topItem(standarditems.ContainerType)
}

func (m *GraphModel) Viewport() standarditems.GraphViewport {
	viewport, _ := standarditems.AsGraphViewport(m.topItem(standarditems.GraphViewportType))
	return viewport
}

func (m *GraphModel) macro(name string, f func() error) error {
	stack := m.UndoStack()
	if stack == nil {
		return f()
	}
	stack.BeginMacro(name)
	err := f()
	if endErr := stack.EndMacro(); err == nil {
		err = endErr
	}
	return err
}

// AddGraph adds a data item with generated values and a graph showing it,
// then fits the viewport. It is a single undo step.
func (m *GraphModel) AddGraph() (standarditems.Graph, error) {
	var graph standarditems.Graph
	err := m.macro("Add graph", func() error {
		dataItem, err := m.InsertNewItem(standarditems.Data1DType, m.Container(), mvvm.Append(""))
		if err != nil {
			return err
		}
		data, _ := standarditems.AsData1D(dataItem)
		if err := data.SetAxis(standarditems.NewFixedBinAxis(Bins, Lower, Upper)); err != nil {
			return err
		}
		if err := data.SetValues(m.values(data.BinCenters())); err != nil {
			return err
		}

		graphItem, err := m.InsertNewItem(standarditems.GraphType, m.Viewport().SessionItem, mvvm.Append(""))
		if err != nil {
			return err
		}
		graph, _ = standarditems.AsGraph(graphItem)
		n := len(m.Viewport().Graphs())
		if err := graph.SetDataItem(data); err != nil {
			return err
		}
		if err := graph.SetTitle(fmt.Sprintf("Graph %d", n)); err != nil {
			return err
		}
		if err := graph.SetColor(palette[(n-1)%len(palette)]); err != nil {
			return err
		}
		return m.Viewport().SetViewportToContent(Margin)
	})
	return graph, err
}

// values returns a sine with random amplitude and phase over centers
func (m *GraphModel) values(centers []float64) []float64 {
	amplitude := 0.5 + m.rand.Float64()*2
	phase := m.rand.Float64() * math.Pi
	values := make([]float64, len(centers))
	for i, x := range centers {
		values[i] = amplitude * math.Sin(x+phase)
	}
	return values
}

// RemoveGraph removes the last graph and its data as one undo step
func (m *GraphModel) RemoveGraph() error {
	graphs := m.Viewport().Graphs()
	if len(graphs) == 0 {
		return fmt.Errorf("%w: no graph to remove", mvvm.ErrConfiguration)
	}
	graph := graphs[len(graphs)-1]
	return m.macro("Remove graph", func() error {
		if data, ok := graph.DataItem(); ok {
			if err := m.RemoveItem(data.Parent(), data.TagRow()); err != nil {
				return err
			}
		}
		return m.RemoveItem(graph.Parent(), graph.TagRow())
	})
}

// Randomize scales the values of every graph by a random factor and fits
// the viewport.
func (m *GraphModel) Randomize() error {
	return m.macro("Randomize", func() error {
		for _, graph := range m.Viewport().Graphs() {
			data, ok := graph.DataItem()
			if !ok {
				continue
			}
			if err := data.Scale(0.5 + m.rand.Float64()); err != nil {
				return err
			}
		}
		if len(m.Viewport().Graphs()) == 0 {
			return nil
		}
		return m.Viewport().SetViewportToContent(Margin)
	})
}
