// Package config loads chart definitions from TOML files.
//
// A definition file looks like:
//
//	id = "revenue"
//	title = "Quarterly Revenue"
//
//	[bounds]
//	left = 40
//	top = 20
//	width = 700
//	height = 400
//
//	[axes.y]
//	label = "Revenue"
//	position = "left"
//	tick_number = 5
//	[axes.y.scale]
//	min = 0
//	max = 100
//
//	[[series]]
//	name = "q3"
//	axis_id = "y"
//	points = [{ x = 0, y = 10 }, { x = 1, y = 40 }]
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/chartkit/chartkit/pkg/chart"
	"github.com/chartkit/chartkit/pkg/errors"
)

// Load reads and validates a chart definition from a TOML file.
func Load(path string) (*chart.Definition, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read definition file %s", path)
	}
	return LoadBytes(data)
}

// LoadBytes decodes and validates a chart definition from TOML bytes.
func LoadBytes(data []byte) (*chart.Definition, error) {
	var def chart.Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode definition")
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}
