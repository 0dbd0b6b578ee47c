package main

import (
	"fmt"

	"github.com/CrimsonAS/qmvvm/mvvm"
	"github.com/CrimsonAS/qmvvm/mvvm/jsondoc"
)

func (t *tool) dump(args []string) error {
	fs := t.flags("dump")
	format := fs.String("format", "json", "output format: json, yaml or toml")
	if err := parse(fs, args, 1, 1); err != nil {
		return err
	}

	var render func(mvvm.ModelRecord) (string, error)
	switch *format {
	case "json":
		render = func(r mvvm.ModelRecord) (string, error) {
			return jsondoc.RecordToJSONString(r, t.cfg.Document.Indent)
		}
	case "yaml":
		render = jsondoc.RecordToYAML
	case "toml":
		render = jsondoc.RecordToTOML
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, *format)
	}

	records, err := jsondoc.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	for i, record := range records {
		text, err := render(record)
		if err != nil {
			return fmt.Errorf("model %s: %w", record.Model, err)
		}
		if i > 0 && *format == "yaml" {
			fmt.Fprintln(t.stdout, "---")
		}
		fmt.Fprintln(t.stdout, text)
	}
	return nil
}
