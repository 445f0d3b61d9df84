// Package config loads run configuration from a YAML file and validates it
// against an embedded CUE schema.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/fixture/internal/fixture"
)

//go:embed schema.cue
var schemaCUE string

// Error codes for configuration failures.
const (
	ErrCodeRead     = "CONFIG_READ"
	ErrCodeParse    = "CONFIG_PARSE"
	ErrCodeSchema   = "CONFIG_SCHEMA"
	ErrCodeInternal = "CONFIG_INTERNAL"
)

// Error describes a configuration file that could not be used.
type Error struct {
	Code string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsSchemaError reports whether err is a schema validation failure.
func IsSchemaError(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == ErrCodeSchema
}

// File is the on-disk configuration.
//
//	verbose: true
//	exec_time: true
//	capacity: 8
//	group: stack
//	repeat: 2
type File struct {
	Verbose    bool   `yaml:"verbose" json:"verbose"`
	Silent     bool   `yaml:"silent" json:"silent"`
	RepeatName bool   `yaml:"repeat_name" json:"repeat_name"`
	ExecTime   bool   `yaml:"exec_time" json:"exec_time"`
	Capacity   int    `yaml:"capacity" json:"capacity"`
	Group      string `yaml:"group" json:"group"`
	Name       string `yaml:"name" json:"name"`
	Repeat     int    `yaml:"repeat" json:"repeat"`
	EOL        string `yaml:"eol" json:"eol"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	Format     string `yaml:"format" json:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	return &File{LogLevel: "warn", Format: "text"}
}

// Load reads, decodes and validates the file at path. Keys missing from
// the file keep their Default values.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Path: path, Err: err}
	}

	f, err := Parse(data)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return f, nil
}

// Parse decodes and validates YAML configuration.
func Parse(data []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, &Error{Code: ErrCodeParse, Err: err}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks f against the CUE schema.
func (f *File) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return &Error{Code: ErrCodeInternal, Err: fmt.Errorf("compile schema: %w", err)}
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	v := ctx.Encode(f)
	if err := v.Err(); err != nil {
		return &Error{Code: ErrCodeInternal, Err: fmt.Errorf("encode config: %w", err)}
	}

	if err := def.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return &Error{Code: ErrCodeSchema, Err: errors.New(cueerrors.Details(err, nil))}
	}
	return nil
}

// Options converts the file into runner options.
func (f *File) Options() fixture.Options {
	return fixture.Options{
		Verbose:     f.Verbose,
		Silent:      f.Silent,
		RepeatName:  f.RepeatName,
		ExecTime:    f.ExecTime,
		Capacity:    f.Capacity,
		GroupFilter: f.Group,
		NameFilter:  f.Name,
		Repeat:      f.Repeat,
		EOL:         f.EOL,
	}
}
