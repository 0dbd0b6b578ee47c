package main

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/CrimsonAS/qmvvm/internal/demo"
	"github.com/CrimsonAS/qmvvm/mvvm"
	"github.com/CrimsonAS/qmvvm/mvvm/jsondoc"
)

func (t *tool) check(args []string) error {
	fs := t.flags("check")
	if err := parse(fs, args, 1, -1); err != nil {
		return err
	}

	var files []string
	for _, pattern := range fs.Args() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("%w: bad pattern %q: %v", errUsage, pattern, err)
		}
		if len(matches) == 0 {
			t.log.Warn("pattern matches no documents", zap.String("pattern", pattern))
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no documents match %v", fs.Args())
	}

	failed := 0
	for _, path := range files {
		models, items, err := checkDocument(path)
		if err != nil {
			failed++
			fmt.Fprintf(t.stdout, "FAIL %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(t.stdout, "ok   %s (%d models, %d items)\n", path, models, items)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(files))
	}
	return nil
}

// checkDocument restores the document at path into fresh models of the
// types it names.
func checkDocument(path string) (int, int, error) {
	records, err := jsondoc.ReadFile(path)
	if err != nil {
		return 0, 0, err
	}

	models := make([]*mvvm.SessionModel, 0, len(records))
	for _, record := range records {
		models = append(models, demo.NewCatalogueModel(record.Model))
	}
	if err := jsondoc.New(models...).Restore(records); err != nil {
		return 0, 0, err
	}

	items := 0
	for _, m := range models {
		items += countItems(m.RootItem()) - 1
	}
	return len(models), items, nil
}

func countItems(item *mvvm.SessionItem) int {
	n := 1
	for _, child := range item.Children() {
		n += countItems(child)
	}
	return n
}
