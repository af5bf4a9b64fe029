// Package wrapper generates the Modelica model that wraps an original
// model, exposing its signal exchange blocks as FMU inputs and outputs,
// and recompiles the result into the final FMU.
package wrapper

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/tzakula/project1-boptest/internal/analyze"
	"github.com/tzakula/project1-boptest/internal/compiler"
	"github.com/tzakula/project1-boptest/internal/naming"
)

const filePerm = 0o644

// Config holds configuration for wrapper generation.
type Config struct {
	// ModelName is the name of the generated Modelica model.
	ModelName string
	// Filename is the file the generated model is written to.
	Filename string
	// OutputDir is the directory the generated file is written to;
	// empty means the current directory.
	OutputDir string
}

// DefaultConfig returns the default wrapper configuration.
func DefaultConfig() Config {
	return Config{
		ModelName: "wrapped",
		Filename:  "wrapped.mo",
	}
}

// Generator generates wrapper Modelica source from a classification.
type Generator struct {
	config Config
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration.
// A nil logger disables logging.
func NewGenerator(config Config, logger *zap.Logger) *Generator {
	if config.ModelName == "" {
		config.ModelName = "wrapped"
	}

	if config.Filename == "" {
		config.Filename = "wrapped.mo"
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Modelica source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "wrapped.mo").
	Filename string
	// Content is the Modelica source text.
	Content []byte
}

// Generate produces the wrapper Modelica source for the given original
// model and classification. Duplicate instances in the classification
// produce duplicate declarations; no syntax validation is performed.
func (g *Generator) Generate(ref compiler.ModelReference, cls analyze.Classification) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(ref, cls)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := wrapperTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing wrapper template: %w", err)
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  buf.Bytes(),
	}, nil
}

// WriteFile writes a generated file into the configured output directory
// and returns its path.
func (g *Generator) WriteFile(file *GeneratedFile) (string, error) {
	path := filepath.Join(g.config.OutputDir, file.Filename)

	if err := os.WriteFile(path, file.Content, filePerm); err != nil {
		return "", fmt.Errorf("writing wrapper source %s: %w", file.Filename, err)
	}

	return path, nil
}

// Export generates the wrapper source, writes it to disk and compiles it
// into the final FMU with the wrapper prepended to the auxiliary file
// list. It returns the FMU path and the wrapper source path. On a
// compilation failure the already-written source stays on disk.
func (g *Generator) Export(
	ctx context.Context,
	c compiler.Compiler,
	ref compiler.ModelReference,
	cls analyze.Classification,
) (string, string, error) {
	file, err := g.Generate(ref, cls)
	if err != nil {
		return "", "", err
	}

	sourcePath, err := g.WriteFile(file)
	if err != nil {
		return "", "", err
	}

	g.logger.Debug("wrote wrapper source",
		zap.String("path", sourcePath),
		zap.Int("overwrite", len(cls.Overwrite)),
		zap.Int("read", len(cls.Read)))

	wrappedRef := compiler.ModelReference{Model: g.config.ModelName}
	wrappedRef = wrappedRef.WithFiles(append([]string{sourcePath}, ref.Files...)...)

	fmuPath, err := c.Compile(ctx, wrappedRef)
	if err != nil {
		return "", "", fmt.Errorf("compiling wrapper model: %w", err)
	}

	return fmuPath, sourcePath, nil
}

// templateData holds all data needed for the wrapper template.
type templateData struct {
	ModelName string
	Model     string
	Overwrite []overwriteBlock
	Read      []readBlock
}

type overwriteBlock struct {
	Instance string
	Signal   string
	Activate string
}

type readBlock struct {
	Instance string
	Output   string
}

func (g *Generator) buildTemplateData(ref compiler.ModelReference, cls analyze.Classification) (*templateData, error) {
	data := &templateData{
		ModelName: g.config.ModelName,
		Model:     ref.Model,
	}

	for _, instance := range cls.Overwrite {
		signal, err := naming.VarName(instance, naming.StyleInputSignal)
		if err != nil {
			return nil, err
		}

		activate, err := naming.VarName(instance, naming.StyleInputActivate)
		if err != nil {
			return nil, err
		}

		data.Overwrite = append(data.Overwrite, overwriteBlock{
			Instance: instance,
			Signal:   signal,
			Activate: activate,
		})
	}

	for _, instance := range cls.Read {
		output, err := naming.VarName(instance, naming.StyleOutput)
		if err != nil {
			return nil, err
		}

		data.Read = append(data.Read, readBlock{Instance: instance, Output: output})
	}

	return data, nil
}

// wrapperTemplate emits the wrapper model. The instantiation of the
// original model is closed unconditionally so that a classification with
// zero overwrite blocks still yields syntactically valid Modelica.
var wrapperTemplate = template.Must(template.New("wrapper").Parse(`model {{.ModelName}} "Wrapped model"
	// Input overwrite
{{- range .Overwrite}}
	Modelica.Blocks.Interfaces.RealInput {{.Signal}} "Signal for overwrite block {{.Instance}}";
	Modelica.Blocks.Interfaces.BooleanInput {{.Activate}} "Activation for overwrite block {{.Instance}}";
{{- end}}
	// Out read
{{- range .Read}}
	Modelica.Blocks.Interfaces.RealOutput {{.Output}} = mod.{{.Instance}}.y "Measured signal for {{.Instance}}";
{{- end}}
	// Original model
	{{.Model}} mod({{range $i, $b := .Overwrite}}{{if $i}},
		{{else}}
		{{end}}{{$b.Instance}}(uExt(y={{$b.Signal}}),activate(y={{$b.Activate}})){{end}}) "Original model with overwrites";
end {{.ModelName}};`))
