package yaml

import "gopkg.in/yaml.v3"

// yamlDocument represents the top-level structure of a YAML document file.
// Nodes are kept raw so that positions survive into the model.
type yamlDocument struct {
	Process   yaml.Node      `yaml:"process"`
	MaxEvents yaml.Node      `yaml:"max_events"`
	Schedule  []yaml.Node    `yaml:"schedule"`
	Source    *yamlModule    `yaml:"source"`
	Modules   []yamlModule   `yaml:"modules"`
	Outputs   []yamlModule   `yaml:"outputs"`
	Sequences []yamlSequence `yaml:"sequences"`
	Paths     []yamlSequence `yaml:"paths"`
	EndPaths  []yamlSequence `yaml:"end_paths"`
}

type yamlModule struct {
	Label  yaml.Node `yaml:"label"`
	Type   yaml.Node `yaml:"type"`
	Params yaml.Node `yaml:"params"`
}

type yamlSequence struct {
	Label   yaml.Node   `yaml:"label"`
	Modules []yaml.Node `yaml:"modules"`
}
