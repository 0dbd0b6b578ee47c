package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/CrimsonAS/qmvvm/internal/demo"
	"github.com/CrimsonAS/qmvvm/internal/metrics"
	"github.com/CrimsonAS/qmvvm/mvvm/jsondoc"
)

func (t *tool) demo(args []string) error {
	fs := t.flags("demo")
	output := fs.String("o", "", "save the resulting document to `file`")
	showMetrics := fs.Bool("metrics", false, "print model metrics when done")
	seed := fs.Int64("seed", 1, "seed of generated values")
	if err := parse(fs, args, 0, 0); err != nil {
		return err
	}

	model, err := demo.NewGraphModel(t.cfg.Undo.Limit, t.log.ForModel(demo.ModelType), *seed)
	if err != nil {
		return err
	}
	defer model.Destroy()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	collector.Observe(model.SessionModel)

	stack := model.UndoStack()
	steps := []struct {
		name string
		run  func() error
	}{
		{"add graph", func() error { _, err := model.AddGraph(); return err }},
		{"add graph", func() error { _, err := model.AddGraph(); return err }},
		{"add graph", func() error { _, err := model.AddGraph(); return err }},
		{"randomize", model.Randomize},
		{"remove graph", model.RemoveGraph},
		{"undo", stack.Undo},
		{"undo", stack.Undo},
		{"redo", stack.Redo},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
		collector.Update(model.SessionModel)
		lower, upper := model.Viewport().YAxis().Range()
		fmt.Fprintf(t.stdout, "%-13s graphs=%d history=%d/%d y=[%.3f, %.3f]\n",
			step.name, len(model.Viewport().Graphs()), stack.Index(), stack.Count(), lower, upper)
	}

	if *output != "" {
		doc := jsondoc.New(model.SessionModel)
		doc.SetLogger(t.log.Logger)
		doc.SetIndent(t.cfg.Document.Indent)
		if err := doc.Save(*output); err != nil {
			return err
		}
		t.log.Info("saved demo document", zap.String("path", *output))
	}

	if *showMetrics {
		families, err := reg.Gather()
		if err != nil {
			return err
		}
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(t.stdout, mf); err != nil {
				return err
			}
		}
	}
	return nil
}
