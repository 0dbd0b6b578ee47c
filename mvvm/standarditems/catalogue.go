package standarditems

import "github.com/CrimsonAS/qmvvm/mvvm"

// NewCatalogue returns a catalogue of every standard item
func NewCatalogue() *mvvm.ItemCatalogue {
	c := mvvm.NewItemCatalogue()
	entries := []struct {
		modelType string
		factory   mvvm.ItemFactory
		label     string
	}{
		{PropertyType, func() *mvvm.SessionItem { return mvvm.NewSessionItem(PropertyType) }, "Property"},
		{CompoundType, NewCompound, "Compound"},
		{ContainerType, NewContainer, "Container"},
		{VectorType, NewVector, "Vector"},
		{FixedBinAxisType, newDefaultFixedBinAxis, "Fixed bin axis"},
		{ViewportAxisType, NewViewportAxis, "Viewport axis"},
		{Data1DType, NewData1D, "Data 1D"},
		{GraphType, NewGraph, "Graph"},
		{GraphViewportType, NewGraphViewport, "Graph viewport"},
	}
	for _, e := range entries {
		if err := c.RegisterItem(e.modelType, e.factory, e.label); err != nil {
			panic(err)
		}
	}
	return c
}
