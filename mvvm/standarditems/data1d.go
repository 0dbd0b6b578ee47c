package standarditems

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// TagAxis holds the axis of a Data1D item
const TagAxis = "T_AXIS"

// NewData1D returns a data item without axis and values. Values are kept
// as RoleData of the item itself.
func NewData1D() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(Data1DType)
	item.RegisterTag(mvvm.TagInfo{Name: TagAxis, Min: 0, Max: 1, ModelTypes: []string{FixedBinAxisType}}, true)
	item.SetValue([]float64{})
	return item
}

// Data1D is a view of one-dimensional binned data
type Data1D struct {
	*mvvm.SessionItem
}

func AsData1D(item *mvvm.SessionItem) (Data1D, bool) {
	if item == nil || item.ModelType() != Data1DType {
		return Data1D{}, false
	}
	return Data1D{item}, true
}

// SetAxis replaces the axis. Values are reset to zero for every bin.
func (d Data1D) SetAxis(axis *mvvm.SessionItem) error {
	a, ok := AsFixedBinAxis(axis)
	if !ok {
		return fmt.Errorf("%w: %s is not an axis", mvvm.ErrConfiguration, axis)
	}
	size := a.Size()
	return grouped(d.SessionItem, "Set axis", func() error {
		if err := replaceChild(d.SessionItem, axis, TagAxis); err != nil {
			return err
		}
		return d.SetValue(make([]float64, size))
	})
}

// Axis returns the axis, if there is one
func (d Data1D) Axis() (FixedBinAxis, bool) {
	return AsFixedBinAxis(d.GetItem(TagAxis, 0))
}

// BinCenters returns the bin centers of the axis, or nothing without axis
func (d Data1D) BinCenters() []float64 {
	if axis, ok := d.Axis(); ok {
		return axis.BinCenters()
	}
	return []float64{}
}

// Values returns the value of every bin
func (d Data1D) Values() []float64 {
	values, _ := d.Value().([]float64)
	return values
}

// SetValues stores the values, which must match the number of bins
func (d Data1D) SetValues(values []float64) error {
	axis, ok := d.Axis()
	if !ok {
		return fmt.Errorf("%w: %s has no axis", mvvm.ErrConfiguration, d.SessionItem)
	} else if axis.Size() != len(values) {
		return fmt.Errorf("%w: %d values for %d bins", mvvm.ErrConfiguration, len(values), axis.Size())
	}
	return d.SetValue(values)
}

// ValueRange returns the smallest and largest value, or zeros without values
func (d Data1D) ValueRange() (float64, float64) {
	values := d.Values()
	if len(values) == 0 {
		return 0, 0
	}
	return floats.Min(values), floats.Max(values)
}

// Scale multiplies every value by factor
func (d Data1D) Scale(factor float64) error {
	values := d.Values()
	floats.Scale(factor, values)
	return d.SetValue(values)
}
