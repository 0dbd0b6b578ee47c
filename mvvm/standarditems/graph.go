package standarditems

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Properties of graphs and viewports
const (
	PropertyLink      = "P_LINK"
	PropertyTitle     = "P_GRAPH_TITLE"
	PropertyColor     = "P_COLOR"
	PropertyDisplayed = "P_DISPLAYED"
	PropertyXAxis     = "P_XAXIS"
	PropertyYAxis     = "P_YAXIS"
)

// DefaultGraphColor is the colour of new graphs
const DefaultGraphColor = "#209fdf"

// NewGraph returns a graph not linked to any data
func NewGraph() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(GraphType)
	mustAddProperty(item, PropertyLink, "")
	mustAddProperty(item, PropertyTitle, "")
	mustAddProperty(item, PropertyColor, DefaultGraphColor)
	mustAddProperty(item, PropertyDisplayed, true)
	return item
}

// Graph is a view of a graph, which draws a Data1D item found by
// identifier in the same model.
type Graph struct {
	*mvvm.SessionItem
}

func AsGraph(item *mvvm.SessionItem) (Graph, bool) {
	if item == nil || item.ModelType() != GraphType {
		return Graph{}, false
	}
	return Graph{item}, true
}

// SetDataItem links the graph to data
func (g Graph) SetDataItem(data Data1D) error {
	return g.SetProperty(PropertyLink, data.Identifier())
}

// DataItem returns the linked data. It is not found when the graph or the
// data is outside of a model, or the data was removed.
func (g Graph) DataItem() (Data1D, bool) {
	link := stringProperty(g.SessionItem, PropertyLink)
	model := g.Model()
	if link == "" || model == nil {
		return Data1D{}, false
	}
	return AsData1D(model.FindItem(link))
}

func (g Graph) BinCenters() []float64 {
	if data, ok := g.DataItem(); ok {
		return data.BinCenters()
	}
	return []float64{}
}

func (g Graph) Values() []float64 {
	if data, ok := g.DataItem(); ok {
		return data.Values()
	}
	return []float64{}
}

func (g Graph) Color() string {
	return stringProperty(g.SessionItem, PropertyColor)
}

func (g Graph) SetColor(color string) error {
	return g.SetProperty(PropertyColor, color)
}

func (g Graph) Title() string {
	return stringProperty(g.SessionItem, PropertyTitle)
}

func (g Graph) SetTitle(title string) error {
	return g.SetProperty(PropertyTitle, title)
}

func (g Graph) IsDisplayed() bool {
	return boolProperty(g.SessionItem, PropertyDisplayed)
}

func (g Graph) SetDisplayed(value bool) error {
	return g.SetProperty(PropertyDisplayed, value)
}

// NewGraphViewport returns a viewport with two axes and no graphs
func NewGraphViewport() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(GraphViewportType)
	for _, name := range []string{PropertyXAxis, PropertyYAxis} {
		item.RegisterTag(mvvm.PropertyTag(name, ViewportAxisType), false)
		axis := NewViewportAxis()
		axis.SetDisplayName(name)
		item.InsertItem(axis, mvvm.Append(name))
	}
	item.RegisterTag(mvvm.UniversalTag(TagItems, GraphType), true)
	return item
}

// GraphViewport is a view of a plot area showing graphs
type GraphViewport struct {
	*mvvm.SessionItem
}

func AsGraphViewport(item *mvvm.SessionItem) (GraphViewport, bool) {
	if item == nil || item.ModelType() != GraphViewportType {
		return GraphViewport{}, false
	}
	return GraphViewport{item}, true
}

func (v GraphViewport) XAxis() ViewportAxis {
	axis, _ := AsViewportAxis(v.GetItem(PropertyXAxis, 0))
	return axis
}

func (v GraphViewport) YAxis() ViewportAxis {
	axis, _ := AsViewportAxis(v.GetItem(PropertyYAxis, 0))
	return axis
}

// Graphs returns the graphs of the viewport in order
func (v GraphViewport) Graphs() []Graph {
	var graphs []Graph
	for _, item := range v.GetItems(TagItems) {
		if graph, ok := AsGraph(item); ok {
			graphs = append(graphs, graph)
		}
	}
	return graphs
}

// SetViewportToContent sets the axes to the extent of the displayed graphs.
// The value axis is widened by margin times the value span on both sides.
func (v GraphViewport) SetViewportToContent(margin float64) error {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	ymin, ymax := math.Inf(1), math.Inf(-1)
	for _, graph := range v.Graphs() {
		if !graph.IsDisplayed() {
			continue
		}
		if centers := graph.BinCenters(); len(centers) > 0 {
			xmin, xmax = math.Min(xmin, floats.Min(centers)), math.Max(xmax, floats.Max(centers))
		}
		if values := graph.Values(); len(values) > 0 {
			ymin, ymax = math.Min(ymin, floats.Min(values)), math.Max(ymax, floats.Max(values))
		}
	}
	if math.IsInf(xmin, 1) || math.IsInf(ymin, 1) {
		return fmt.Errorf("%w: viewport %s has no content", mvvm.ErrConfiguration, v.Identifier())
	}

	span := (ymax - ymin) * margin
	return grouped(v.SessionItem, "Set viewport to content", func() error {
		if err := v.XAxis().SetRange(xmin, xmax); err != nil {
			return err
		}
		return v.YAxis().SetRange(ymin-span, ymax+span)
	})
}
