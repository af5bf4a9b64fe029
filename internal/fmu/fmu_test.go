package fmu_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzakula/project1-boptest/internal/fmu"
	"github.com/tzakula/project1-boptest/internal/fmu/fmutest"
)

func writeFixture(t *testing.T, desc fmutest.Description) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.fmu")
	require.NoError(t, fmutest.WriteArchive(path, desc))

	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, fmutest.Description{
		FMIVersion: "2.0",
		ModelName:  "SimpleRC",
		Variables: []fmutest.Variable{
			{Name: "zone.heater.boptestOverwrite", Variability: "fixed", Type: "Boolean", Start: "true"},
			{Name: "zone.sensor.boptestRead", Variability: "constant", Type: "Boolean", Start: "true"},
			{Name: "zone.T", Variability: "continuous", Causality: "output"},
		},
	})

	m, err := fmu.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.0", m.Version())
	assert.Equal(t, "SimpleRC", m.ModelName())
}

func TestModel_VariablesFiltersAndOrders(t *testing.T) {
	path := writeFixture(t, fmutest.Description{
		ModelName: "SimpleRC",
		Variables: []fmutest.Variable{
			{Name: "a.constant", Variability: "constant"},
			{Name: "b.continuous", Variability: "continuous"},
			{Name: "c.fixed", Variability: "fixed"},
			{Name: "d.tunable", Variability: "tunable"},
			{Name: "e.fixed", Variability: "fixed"},
		},
	})

	m, err := fmu.Load(path)
	require.NoError(t, err)

	got := m.Variables(fmu.VariabilityConstant, fmu.VariabilityFixed)
	assert.Equal(t, []string{"a.constant", "c.fixed", "e.fixed"}, got)

	all := m.Variables()
	assert.Len(t, all, 5)
}

func TestModel_VariablesGroupsByKind(t *testing.T) {
	// Document order interleaves the kinds; the result lists every
	// variable of the first requested kind before any of the second.
	path := writeFixture(t, fmutest.Description{
		ModelName: "SimpleRC",
		Variables: []fmutest.Variable{
			{Name: "a.fixed", Variability: "fixed"},
			{Name: "b.constant", Variability: "constant"},
			{Name: "c.fixed", Variability: "fixed"},
			{Name: "d.constant", Variability: "constant"},
		},
	})

	m, err := fmu.Load(path)
	require.NoError(t, err)

	got := m.Variables(fmu.VariabilityConstant, fmu.VariabilityFixed)
	assert.Equal(t, []string{"b.constant", "d.constant", "a.fixed", "c.fixed"}, got)
}

func TestModel_StartValue(t *testing.T) {
	path := writeFixture(t, fmutest.Description{
		ModelName: "SimpleRC",
		Variables: []fmutest.Variable{
			{Name: "zone.kpis.KPIs", Variability: "fixed", Type: "String", Start: "energy,comfort"},
			{Name: "zone.T", Variability: "continuous"},
		},
	})

	m, err := fmu.Load(path)
	require.NoError(t, err)

	start, ok := m.StartValue("zone.kpis.KPIs")
	require.True(t, ok)
	assert.Equal(t, "energy,comfort", start)

	_, ok = m.StartValue("no.such.variable")
	assert.False(t, ok)
}

func TestModel_Lookup(t *testing.T) {
	path := writeFixture(t, fmutest.Description{
		ModelName: "SimpleRC",
		Variables: []fmutest.Variable{
			{Name: "zone.T", Variability: "continuous", Causality: "output"},
		},
	})

	m, err := fmu.Load(path)
	require.NoError(t, err)

	v, ok := m.Lookup("zone.T")
	require.True(t, ok)
	assert.Equal(t, fmu.VariabilityContinuous, v.Variability)
	assert.Equal(t, fmu.CausalityOutput, v.Causality)
}

func TestLoad_NotAnArchive(t *testing.T) {
	_, err := fmu.Load(filepath.Join(t.TempDir(), "missing.fmu"))
	require.Error(t, err)
}

func TestLoad_MissingDescription(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fmu")

	f, err := os.Create(path)
	require.NoError(t, err)

	zw := zip.NewWriter(f)
	_, err = zw.Create("binaries/placeholder")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = fmu.Load(path)
	require.ErrorIs(t, err, fmu.ErrMissingDescription)
}

func TestParseVariability_Defaults(t *testing.T) {
	assert.Equal(t, fmu.VariabilityContinuous, fmu.ParseVariability(""))
	assert.Equal(t, fmu.VariabilityFixed, fmu.ParseVariability("fixed"))
	assert.Equal(t, fmu.VariabilityUnknown, fmu.ParseVariability("bogus"))
}

func TestParseCausality_Defaults(t *testing.T) {
	assert.Equal(t, fmu.CausalityLocal, fmu.ParseCausality(""))
	assert.Equal(t, fmu.CausalityParameter, fmu.ParseCausality("parameter"))
	assert.Equal(t, fmu.CausalityUnknown, fmu.ParseCausality("bogus"))
}
