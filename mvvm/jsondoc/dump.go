package jsondoc

import (
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// ModelToJSONString returns the indented JSON of a single model
func ModelToJSONString(model *mvvm.SessionModel) (string, error) {
	return RecordToJSONString(model.Snapshot(), DefaultIndent)
}

func RecordToJSONString(record mvvm.ModelRecord, indent int) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(record, "", strings.Repeat(" ", indent))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ModelToYAML returns the model as YAML. It is meant for reading; documents
// are only loaded from JSON.
func ModelToYAML(model *mvvm.SessionModel) (string, error) {
	return RecordToYAML(model.Snapshot())
}

func RecordToYAML(record mvvm.ModelRecord) (string, error) {
	data, err := yaml.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ModelToTOML returns the model as TOML, for reading only
func ModelToTOML(model *mvvm.SessionModel) (string, error) {
	return RecordToTOML(model.Snapshot())
}

func RecordToTOML(record mvvm.ModelRecord) (string, error) {
	data, err := toml.Marshal(record)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
