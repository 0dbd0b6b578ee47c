package standarditems

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Properties of axes
const (
	PropertyNbins = "P_NBINS"
	PropertyMin   = "P_MIN"
	PropertyMax   = "P_MAX"
	PropertyIsLog = "P_IS_LOG"
)

// NewFixedBinAxis returns an axis of nbins equal bins over [lower, upper]
func NewFixedBinAxis(nbins int, lower, upper float64) *mvvm.SessionItem {
	item := mvvm.NewSessionItem(FixedBinAxisType)
	mustAddProperty(item, PropertyNbins, nbins)
	mustAddProperty(item, PropertyMin, lower)
	mustAddProperty(item, PropertyMax, upper)
	return item
}

func newDefaultFixedBinAxis() *mvvm.SessionItem {
	return NewFixedBinAxis(1, 0.0, 1.0)
}

// FixedBinAxis is a view of an axis with equal bins
type FixedBinAxis struct {
	*mvvm.SessionItem
}

func AsFixedBinAxis(item *mvvm.SessionItem) (FixedBinAxis, bool) {
	if item == nil || item.ModelType() != FixedBinAxisType {
		return FixedBinAxis{}, false
	}
	return FixedBinAxis{item}, true
}

// Size returns the number of bins
func (a FixedBinAxis) Size() int {
	return intProperty(a.SessionItem, PropertyNbins)
}

func (a FixedBinAxis) Range() (float64, float64) {
	return floatProperty(a.SessionItem, PropertyMin), floatProperty(a.SessionItem, PropertyMax)
}

// BinCenters returns the center of every bin
func (a FixedBinAxis) BinCenters() []float64 {
	n := a.Size()
	if n <= 0 {
		return []float64{}
	}
	lower, upper := a.Range()
	half := (upper - lower) / float64(n) / 2
	if n == 1 {
		return []float64{lower + half}
	}
	return floats.Span(make([]float64, n), lower+half, upper-half)
}

// SetBins changes bin count and range as one step
func (a FixedBinAxis) SetBins(nbins int, lower, upper float64) error {
	if nbins < 1 {
		return fmt.Errorf("%w: axis needs at least one bin, got %d", mvvm.ErrConfiguration, nbins)
	}
	return grouped(a.SessionItem, "Set bins", func() error {
		if err := a.SetProperty(PropertyNbins, nbins); err != nil {
			return err
		}
		if err := a.SetProperty(PropertyMin, lower); err != nil {
			return err
		}
		return a.SetProperty(PropertyMax, upper)
	})
}

// NewViewportAxis returns a linear axis showing [0, 1]
func NewViewportAxis() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(ViewportAxisType)
	mustAddProperty(item, PropertyMin, 0.0)
	mustAddProperty(item, PropertyMax, 1.0)
	mustAddProperty(item, PropertyIsLog, false)
	return item
}

// ViewportAxis is a view of the visible range of a plot axis
type ViewportAxis struct {
	*mvvm.SessionItem
}

func AsViewportAxis(item *mvvm.SessionItem) (ViewportAxis, bool) {
	if item == nil || item.ModelType() != ViewportAxisType {
		return ViewportAxis{}, false
	}
	return ViewportAxis{item}, true
}

func (a ViewportAxis) Range() (float64, float64) {
	return floatProperty(a.SessionItem, PropertyMin), floatProperty(a.SessionItem, PropertyMax)
}

// SetRange changes both bounds as one step
func (a ViewportAxis) SetRange(lower, upper float64) error {
	return grouped(a.SessionItem, "Set range", func() error {
		if err := a.SetProperty(PropertyMin, lower); err != nil {
			return err
		}
		return a.SetProperty(PropertyMax, upper)
	})
}

func (a ViewportAxis) IsLog() bool {
	return boolProperty(a.SessionItem, PropertyIsLog)
}

func (a ViewportAxis) SetLog(value bool) error {
	return a.SetProperty(PropertyIsLog, value)
}
