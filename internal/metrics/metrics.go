// Package metrics exports prometheus metrics about session models. A
// Collector subscribes to the mapper of each observed model and counts its
// notifications by kind.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Notification kinds
const (
	KindDataChange    = "data_change"
	KindInserted      = "inserted"
	KindAboutToRemove = "about_to_remove"
	KindRemoved       = "removed"
	KindReset         = "reset"
	KindDestroyed     = "destroyed"
)

// Collector holds the model metrics
type Collector struct {
	// Notifications counts mapper notifications by model type and kind
	Notifications *prometheus.CounterVec
	// UndoCommands is the number of commands in the undo history
	UndoCommands *prometheus.GaugeVec
	// UndoIndex is the position of the undo history, counting executed commands
	UndoIndex *prometheus.GaugeVec
}

// NewCollector creates the metrics and registers them with reg
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Notifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mvvm_notifications_total",
				Help: "Total model notifications by model and kind",
			},
			[]string{"model", "kind"},
		),
		UndoCommands: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mvvm_undo_commands",
				Help: "Commands in the undo history by model",
			},
			[]string{"model"},
		),
		UndoIndex: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mvvm_undo_index",
				Help: "Current undo history position by model",
			},
			[]string{"model"},
		),
	}
}

// Observe subscribes to the notifications of model
func (c *Collector) Observe(model *mvvm.SessionModel) {
	name := model.ModelType()
	count := func(kind string) {
		c.Notifications.WithLabelValues(name, kind).Inc()
	}

	mapper := model.Mapper()
	mapper.SetOnDataChange(func(*mvvm.SessionItem, int) { count(KindDataChange) }, c)
	mapper.SetOnItemInserted(func(*mvvm.SessionItem, mvvm.TagRow) { count(KindInserted) }, c)
	mapper.SetOnAboutToRemoveItem(func(*mvvm.SessionItem, mvvm.TagRow) { count(KindAboutToRemove) }, c)
	mapper.SetOnItemRemoved(func(*mvvm.SessionItem, mvvm.TagRow) { count(KindRemoved) }, c)
	mapper.SetOnModelReset(func(*mvvm.SessionModel) {
		count(KindReset)
		c.Update(model)
	}, c)
	mapper.SetOnModelDestroyed(func(*mvvm.SessionModel) {
		count(KindDestroyed)
		c.UndoCommands.DeleteLabelValues(name)
		c.UndoIndex.DeleteLabelValues(name)
	}, c)
	c.Update(model)
}

// Update sets the undo gauges of model. Models without undo report zero.
func (c *Collector) Update(model *mvvm.SessionModel) {
	var commands, index int
	if stack := model.UndoStack(); stack != nil {
		commands, index = stack.Count(), stack.Index()
	}
	c.UndoCommands.WithLabelValues(model.ModelType()).Set(float64(commands))
	c.UndoIndex.WithLabelValues(model.ModelType()).Set(float64(index))
}

// Forget unsubscribes from model. Counted notifications are kept.
func (c *Collector) Forget(model *mvvm.SessionModel) {
	model.Mapper().Unsubscribe(c)
}
