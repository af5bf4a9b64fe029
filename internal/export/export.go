// Package export orchestrates the full pipeline: introspect the model,
// generate and compile the wrapper, and write the KPI manifest.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/tzakula/project1-boptest/internal/analyze"
	"github.com/tzakula/project1-boptest/internal/compiler"
	"github.com/tzakula/project1-boptest/internal/kpi"
	"github.com/tzakula/project1-boptest/internal/wrapper"
)

// Pipeline runs the export sequence against one compiler instance.
// There is no rollback on partial failure: a wrapper source already
// written stays on disk, and no manifest is written if the wrapper
// compilation fails.
type Pipeline struct {
	compiler  compiler.Compiler
	generator *wrapper.Generator
	// manifestDir is where kpis.json is written; empty means the
	// current working directory.
	manifestDir  string
	manifestName string
	logger       *zap.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithGenerator overrides the default wrapper generator.
func WithGenerator(g *wrapper.Generator) Option {
	return func(p *Pipeline) { p.generator = g }
}

// WithManifestDir sets the directory the KPI manifest is written to.
func WithManifestDir(dir string) Option {
	return func(p *Pipeline) { p.manifestDir = dir }
}

// WithManifestName overrides the KPI manifest file name.
func WithManifestName(name string) Option {
	return func(p *Pipeline) { p.manifestName = name }
}

// New creates a Pipeline. A nil logger disables logging.
func New(c compiler.Compiler, logger *zap.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{
		compiler:     c,
		generator:    wrapper.NewGenerator(wrapper.DefaultConfig(), logger),
		manifestName: kpi.ManifestName,
		logger:       logger,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Export runs introspection, wrapper generation and recompilation, then
// serializes the KPI map. It returns the wrapper FMU path and the KPI
// manifest path.
func (p *Pipeline) Export(ctx context.Context, ref compiler.ModelReference) (string, string, error) {
	result, err := p.introspect(ctx, ref)
	if err != nil {
		return "", "", err
	}

	fmuPath, sourcePath, err := p.generator.Export(ctx, p.compiler, ref, result.Classification)
	if err != nil {
		return "", "", err
	}

	p.logger.Info("wrapper exported",
		zap.String("fmu", fmuPath),
		zap.String("source", sourcePath))

	kpiPath, err := p.writeManifest(result.KPIs)
	if err != nil {
		return "", "", err
	}

	return fmuPath, kpiPath, nil
}

// Parse runs only the introspection pass. The wrapper is not generated
// and nothing is written besides the compiler's own artifacts, which are
// removed again after introspection.
func (p *Pipeline) Parse(ctx context.Context, ref compiler.ModelReference) (*analyze.Result, error) {
	return p.introspect(ctx, ref)
}

func (p *Pipeline) introspect(ctx context.Context, ref compiler.ModelReference) (*analyze.Result, error) {
	result, err := analyze.NewIntrospector(p.compiler, p.logger).ParseInstances(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("introspecting %s: %w", ref.Model, err)
	}

	for _, warning := range result.Diagnostics.Warnings {
		p.logger.Warn("introspection warning", zap.String("diagnostic", warning.String()))
	}

	return result, nil
}

func (p *Pipeline) writeManifest(kpis kpi.Map) (string, error) {
	dir := p.manifestDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}

		dir = cwd
	}

	kpiPath := filepath.Join(dir, p.manifestName)
	if err := kpi.WriteManifest(kpis, kpiPath); err != nil {
		return "", err
	}

	return kpiPath, nil
}
