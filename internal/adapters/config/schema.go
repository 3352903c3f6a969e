package config

import (
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Leinfile represents the structure of the plein.yaml configuration file.
type Leinfile struct {
	Version     string            `yaml:"version"`
	Task        TaskText          `yaml:"task"`
	Parallel    bool              `yaml:"parallel"`
	Subdir      string            `yaml:"subdir"`
	JVMOpts     string            `yaml:"jvmOpts"`
	JarPath     string            `yaml:"jarPath"`
	JDK         string            `yaml:"jdk"`
	Parallelism int               `yaml:"parallelism"`
	Strict      bool              `yaml:"strict"`
	Env         map[string]string `yaml:"env"`
}

// TaskText is the task field. It may be written as a single (block) string or as a
// list of lines, which is joined with newlines.
type TaskText string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *TaskText) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = TaskText(node.Value)
		return nil
	case yaml.SequenceNode:
		var lines []string
		if err := node.Decode(&lines); err != nil {
			return err
		}
		*t = TaskText(strings.Join(lines, "\n"))
		return nil
	default:
		return zerr.With(zerr.New("task must be a string or a list of strings"), "line", node.Line)
	}
}
