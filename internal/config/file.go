package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration for the task manager examples.
//
//	server:
//	  command: npx
//	  args: ["-y", "@modelcontextprotocol/server-filesystem", "/tmp"]
//	  env:
//	    NODE_OPTIONS: --no-warnings
//	  initialize_timeout: 30s
//	tasks:
//	  path: /tmp/tasks.json
//	tools:
//	  read: read_file
//	  write: write_file
//	  list: list_directory
//	  check: true
type File struct {
	Server ServerFile `yaml:"server"`
	Tasks  TasksFile  `yaml:"tasks"`
	Tools  ToolsFile  `yaml:"tools"`
}

// ServerFile describes how to launch the tool server.
type ServerFile struct {
	Command           string            `yaml:"command"`
	Args              []string          `yaml:"args"`
	Env               map[string]string `yaml:"env"`
	Cwd               string            `yaml:"cwd"`
	InitializeTimeout time.Duration     `yaml:"initialize_timeout"`
}

// TasksFile locates the task document.
type TasksFile struct {
	Path string `yaml:"path"`
}

// ToolsFile overrides tool names and the local catalog check.
type ToolsFile struct {
	Read  string `yaml:"read"`
	Write string `yaml:"write"`
	List  string `yaml:"list"`
	Check bool   `yaml:"check"`
}

// LoadFile reads and parses a YAML configuration file. Unknown keys are
// rejected so typos surface instead of silently falling back to defaults.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if f.Server.InitializeTimeout < 0 {
		return nil, fmt.Errorf("parse config: initialize_timeout must not be negative")
	}

	return &f, nil
}

// Apply copies every value set in f onto o. Zero values leave o untouched.
func (f *File) Apply(o *Options) {
	if f.Server.Command != "" {
		o.Command = f.Server.Command
		o.Args = f.Server.Args
	}

	if len(f.Server.Env) > 0 {
		o.Env = f.Server.Env
	}

	if f.Server.Cwd != "" {
		o.Cwd = f.Server.Cwd
	}

	if f.Server.InitializeTimeout > 0 {
		timeout := f.Server.InitializeTimeout
		o.InitializeTimeout = &timeout
	}

	if f.Tasks.Path != "" {
		o.TasksPath = f.Tasks.Path
	}

	if f.Tools.Read != "" {
		o.ReadTool = f.Tools.Read
	}

	if f.Tools.Write != "" {
		o.WriteTool = f.Tools.Write
	}

	if f.Tools.List != "" {
		o.ListTool = f.Tools.List
	}

	if f.Tools.Check {
		o.CheckTools = true
	}
}
