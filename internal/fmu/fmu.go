// Package fmu reads the metadata of a compiled Functional Mock-up Unit.
//
// An FMU is a zip archive with a modelDescription.xml document at its
// root describing the model's variable interface. Only metadata is read
// here; no simulation runtime is loaded.
//
// Both FMI 2.0 variable attributes are decoded: variability drives the
// signal exchange classification, while causality is exposed on Variable
// purely for metadata completeness of the reader.
package fmu

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
)

const descriptionFile = "modelDescription.xml"

// ErrMissingDescription is returned when the archive has no modelDescription.xml.
var ErrMissingDescription = errors.New("FMU archive has no " + descriptionFile)

// Variable is a single scalar variable declared by an FMU.
type Variable struct {
	// Name is the fully qualified dotted variable name.
	Name        string
	Variability Variability
	Causality   Causality
	// Start is the declared start value, if any.
	Start    string
	HasStart bool
}

// Model is the decoded metadata of a loaded FMU.
type Model struct {
	version string
	name    string
	vars    []Variable
	byName  map[string]int
}

// Load opens an FMU archive and decodes its model description.
func Load(path string) (*Model, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening FMU %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != descriptionFile {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s in %s: %w", descriptionFile, path, err)
		}
		defer rc.Close()

		var md modelDescription
		if err := xml.NewDecoder(rc).Decode(&md); err != nil {
			return nil, fmt.Errorf("decoding %s in %s: %w", descriptionFile, path, err)
		}

		return newModel(&md), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrMissingDescription, path)
}

func newModel(md *modelDescription) *Model {
	m := &Model{
		version: md.FMIVersion,
		name:    md.ModelName,
		byName:  make(map[string]int, len(md.ModelVariables.Variables)),
	}

	for _, sv := range md.ModelVariables.Variables {
		v := Variable{
			Name:        sv.Name,
			Variability: ParseVariability(sv.Variability),
			Causality:   ParseCausality(sv.Causality),
		}

		if start := sv.start(); start != nil {
			v.Start = *start
			v.HasStart = true
		}

		m.byName[v.Name] = len(m.vars)
		m.vars = append(m.vars, v)
	}

	return m
}

// Version returns the declared FMI interface version, e.g. "2.0".
func (m *Model) Version() string {
	return m.version
}

// ModelName returns the model name declared by the FMU.
func (m *Model) ModelName() string {
	return m.name
}

// Variables returns the qualified names of all variables whose variability
// is one of the given kinds. Names are grouped by kind in the order the
// kinds are given, and within a kind follow document order, so
// Variables(VariabilityConstant, VariabilityFixed) lists every constant
// before any fixed parameter. With no kinds, all variable names are
// returned in document order.
func (m *Model) Variables(kinds ...Variability) []string {
	var names []string

	if len(kinds) == 0 {
		for _, v := range m.vars {
			names = append(names, v.Name)
		}

		return names
	}

	for _, kind := range kinds {
		for _, v := range m.vars {
			if v.Variability == kind {
				names = append(names, v.Name)
			}
		}
	}

	return names
}

// Lookup returns the variable with the given qualified name.
func (m *Model) Lookup(name string) (Variable, bool) {
	idx, ok := m.byName[name]
	if !ok {
		return Variable{}, false
	}

	return m.vars[idx], true
}

// StartValue returns the declared start value of the named variable.
func (m *Model) StartValue(name string) (string, bool) {
	v, ok := m.Lookup(name)
	if !ok || !v.HasStart {
		return "", false
	}

	return v.Start, true
}

// --- modelDescription.xml document types ---

type modelDescription struct {
	XMLName        xml.Name `xml:"fmiModelDescription"`
	FMIVersion     string   `xml:"fmiVersion,attr"`
	ModelName      string   `xml:"modelName,attr"`
	ModelVariables struct {
		Variables []scalarVariable `xml:"ScalarVariable"`
	} `xml:"ModelVariables"`
}

type scalarVariable struct {
	Name        string `xml:"name,attr"`
	Variability string `xml:"variability,attr"`
	Causality   string `xml:"causality,attr"`

	Real        *typedElement `xml:"Real"`
	Integer     *typedElement `xml:"Integer"`
	Boolean     *typedElement `xml:"Boolean"`
	String      *typedElement `xml:"String"`
	Enumeration *typedElement `xml:"Enumeration"`
}

type typedElement struct {
	Start *string `xml:"start,attr"`
}

// start returns the start value from whichever typed element is present.
func (sv *scalarVariable) start() *string {
	for _, el := range []*typedElement{sv.Real, sv.Integer, sv.Boolean, sv.String, sv.Enumeration} {
		if el != nil && el.Start != nil {
			return el.Start
		}
	}

	return nil
}
