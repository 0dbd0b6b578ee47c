package standarditems

import (
	"fmt"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Properties of a vector
const (
	PropertyX = "P_X"
	PropertyY = "P_Y"
	PropertyZ = "P_Z"
)

// NewVector returns a vector item at the origin
func NewVector() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(VectorType)
	mustAddProperty(item, PropertyX, 0.0)
	mustAddProperty(item, PropertyY, 0.0)
	mustAddProperty(item, PropertyZ, 0.0)
	return item
}

// Vector is a view of a vector item
type Vector struct {
	*mvvm.SessionItem
}

func AsVector(item *mvvm.SessionItem) (Vector, bool) {
	if item == nil || item.ModelType() != VectorType {
		return Vector{}, false
	}
	return Vector{item}, true
}

func (v Vector) X() float64 { return floatProperty(v.SessionItem, PropertyX) }
func (v Vector) Y() float64 { return floatProperty(v.SessionItem, PropertyY) }
func (v Vector) Z() float64 { return floatProperty(v.SessionItem, PropertyZ) }

func (v Vector) SetX(value float64) error { return v.SetProperty(PropertyX, value) }
func (v Vector) SetY(value float64) error { return v.SetProperty(PropertyY, value) }
func (v Vector) SetZ(value float64) error { return v.SetProperty(PropertyZ, value) }

// Set changes all three coordinates as one step
func (v Vector) Set(x, y, z float64) error {
	return grouped(v.SessionItem, "Set vector", func() error {
		if err := v.SetX(x); err != nil {
			return err
		}
		if err := v.SetY(y); err != nil {
			return err
		}
		return v.SetZ(z)
	})
}

func (v Vector) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X(), v.Y(), v.Z())
}
