package analyze

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tzakula/project1-boptest/internal/compiler"
	"github.com/tzakula/project1-boptest/internal/diagnostic"
	"github.com/tzakula/project1-boptest/internal/fmu"
	"github.com/tzakula/project1-boptest/internal/kpi"
	"github.com/tzakula/project1-boptest/internal/naming"
)

// Marker substrings identifying signal exchange block parameters.
// Precedence is overwrite, then read, then KPI; first match wins.
const (
	markerOverwrite = "boptestOverwrite"
	markerRead      = "boptestRead"
	markerKPI       = "KPIs"
)

// requiredVersion is the only FMI interface version the pipeline accepts.
const requiredVersion = "2.0"

// ErrUnsupportedVersion reports an FMU whose FMI version is not 2.0.
var ErrUnsupportedVersion = errors.New("FMU version must be " + requiredVersion)

// Classification holds the discovered signal exchange block instances.
// Instances are kept in discovery order; duplicates are not removed.
type Classification struct {
	Overwrite []string
	Read      []string
}

// Result is the outcome of one introspection run.
type Result struct {
	Classification Classification
	KPIs           kpi.Map
	Diagnostics    diagnostic.Diagnostics
}

// Introspector compiles a model and classifies its FMU variables.
type Introspector struct {
	compiler compiler.Compiler
	logger   *zap.Logger
}

// NewIntrospector creates an Introspector using the given compiler.
// A nil logger disables logging.
func NewIntrospector(c compiler.Compiler, logger *zap.Logger) *Introspector {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Introspector{compiler: c, logger: logger}
}

// ParseInstances compiles the model, classifies its constant and fixed
// parameter variables by marker, and collects KPI declarations. Constants
// are scanned before fixed parameters, each group in document order, so
// KPI contributor lists always put a constant's output ahead of a fixed
// parameter's. The transient FMU and its companion log are deleted before
// returning.
func (in *Introspector) ParseInstances(ctx context.Context, ref compiler.ModelReference) (*Result, error) {
	fmuPath, err := in.compiler.Compile(ctx, ref)
	if err != nil {
		return nil, err
	}

	// The FMU is only needed for its metadata; drop it and the compiler
	// log once introspection is done, whether it succeeded or not.
	defer func() {
		if err := os.Remove(fmuPath); err != nil {
			in.logger.Warn("removing transient FMU", zap.String("path", fmuPath), zap.Error(err))
		}

		logPath := compiler.LogPath(fmuPath)
		if err := os.Remove(logPath); err != nil {
			in.logger.Warn("removing compiler log", zap.String("path", logPath), zap.Error(err))
		}
	}()

	model, err := fmu.Load(fmuPath)
	if err != nil {
		return nil, err
	}

	if v := model.Version(); v != requiredVersion {
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedVersion, v)
	}

	result := &Result{KPIs: kpi.Map{}}

	for _, name := range model.Variables(fmu.VariabilityConstant, fmu.VariabilityFixed) {
		if err := in.classify(model, name, result); err != nil {
			return nil, err
		}
	}

	in.diagnoseNameCollisions(result)

	in.logger.Debug("introspection finished",
		zap.String("model", ref.Model),
		zap.Int("overwrite", len(result.Classification.Overwrite)),
		zap.Int("read", len(result.Classification.Read)),
		zap.Int("kpis", len(result.KPIs)))

	return result, nil
}

// classify applies the marker precedence to one variable name.
func (in *Introspector) classify(model *fmu.Model, name string, result *Result) error {
	instance := instancePath(name)

	switch {
	case strings.Contains(name, markerOverwrite):
		in.diagnoseDuplicate(result, result.Classification.Overwrite, instance, name)
		result.Classification.Overwrite = append(result.Classification.Overwrite, instance)

	case strings.Contains(name, markerRead):
		in.diagnoseDuplicate(result, result.Classification.Read, instance, name)
		result.Classification.Read = append(result.Classification.Read, instance)

	case strings.Contains(name, markerKPI):
		return in.collectKPIs(model, name, instance, result)
	}

	return nil
}

// collectKPIs splits a KPI declaration's comma-separated start value and
// records the instance's output variable under each KPI name.
func (in *Introspector) collectKPIs(model *fmu.Model, name, instance string, result *Result) error {
	value, ok := model.StartValue(name)
	if !ok {
		result.Diagnostics.AddWarning("kpi-no-value",
			"KPI declaration has no start value", instance, name)

		return nil
	}

	output, err := naming.VarName(instance, naming.StyleOutput)
	if err != nil {
		return err
	}

	for _, kpiName := range strings.Split(value, ",") {
		if kpiName == "" {
			continue
		}

		result.KPIs.Add(kpiName, output)
	}

	return nil
}

// diagnoseDuplicate warns when an instance is recorded more than once in
// the same classification list. The duplicate is still kept, matching
// the downstream wrapper's declaration-per-recording behavior.
func (in *Introspector) diagnoseDuplicate(result *Result, list []string, instance, variable string) {
	for _, existing := range list {
		if existing == instance {
			result.Diagnostics.AddWarning("duplicate-instance",
				"instance recorded more than once", instance, variable)

			return
		}
	}
}

// diagnoseNameCollisions warns when two distinct instance paths map to
// the same identifier after the underscore transform, e.g. "a.b_c" and
// "a.b.c". The generated wrapper would declare colliding names.
func (in *Introspector) diagnoseNameCollisions(result *Result) {
	byTransformed := make(map[string]string)

	check := func(instance string) {
		transformed := strings.ReplaceAll(instance, ".", "_")

		if prev, ok := byTransformed[transformed]; ok && prev != instance {
			result.Diagnostics.AddWarning("name-collision",
				fmt.Sprintf("instance collides with %q after underscore transform", prev),
				instance, "")

			return
		}

		byTransformed[transformed] = instance
	}

	for _, instance := range result.Classification.Overwrite {
		check(instance)
	}

	for _, instance := range result.Classification.Read {
		check(instance)
	}
}

// instancePath strips the parameter's own name, the last dot-separated
// segment, from a fully qualified variable name.
func instancePath(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}

	return name[:idx]
}
