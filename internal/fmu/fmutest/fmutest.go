// Package fmutest builds FMU fixture archives and provides a scripted
// compiler for tests that need a full compile-then-introspect cycle
// without a real Modelica toolchain.
package fmutest

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tzakula/project1-boptest/internal/compiler"
)

// Variable describes one scalar variable of a fixture FMU.
type Variable struct {
	Name        string
	Variability string
	Causality   string
	// Type is the FMI type element name: Real, Integer, Boolean, String
	// or Enumeration. Defaults to String when a start value is set and
	// Real otherwise.
	Type  string
	Start string
}

// Description describes a fixture FMU's modelDescription.xml.
type Description struct {
	// FMIVersion defaults to "2.0".
	FMIVersion string
	ModelName  string
	Variables  []Variable
}

// WriteArchive writes a minimal FMU zip archive at path.
func WriteArchive(path string, desc Description) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating fixture FMU %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	w, err := zw.Create("modelDescription.xml")
	if err != nil {
		return fmt.Errorf("creating modelDescription.xml entry: %w", err)
	}

	if _, err := w.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("writing XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	if err := enc.Encode(buildDocument(desc)); err != nil {
		return fmt.Errorf("encoding modelDescription.xml: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing fixture FMU %s: %w", path, err)
	}

	return f.Close()
}

// Compiler is a scripted compiler.Compiler. Compile writes a fixture FMU
// (plus the companion log file) into Dir for any model present in Models,
// recording every call it receives.
type Compiler struct {
	// Dir is where compiled fixture artifacts are placed.
	Dir string
	// Models maps a model path to the fixture description to compile.
	Models map[string]Description
	// Err, when set, fails every Compile call.
	Err error

	// Calls records every compile request in order.
	Calls []compiler.ModelReference
}

// Compile implements compiler.Compiler.
func (c *Compiler) Compile(_ context.Context, ref compiler.ModelReference) (string, error) {
	c.Calls = append(c.Calls, ref)

	if c.Err != nil {
		return "", c.Err
	}

	desc, ok := c.Models[ref.Model]
	if !ok {
		return "", fmt.Errorf("fmutest: no scripted model %q", ref.Model)
	}

	base := compiler.ArtifactBase(ref.Model)
	fmuPath := filepath.Join(c.Dir, base+".fmu")

	if err := WriteArchive(fmuPath, desc); err != nil {
		return "", err
	}

	logPath := filepath.Join(c.Dir, base+"_log.txt")
	if err := os.WriteFile(logPath, []byte("fmutest: compiled "+ref.Model+"\n"), 0o644); err != nil {
		return "", err
	}

	return fmuPath, nil
}

// --- XML document construction ---

type xmlDocument struct {
	XMLName        xml.Name    `xml:"fmiModelDescription"`
	FMIVersion     string      `xml:"fmiVersion,attr"`
	ModelName      string      `xml:"modelName,attr"`
	GUID           string      `xml:"guid,attr"`
	ModelVariables xmlVarBlock `xml:"ModelVariables"`
}

type xmlVarBlock struct {
	Variables []xmlScalarVariable `xml:"ScalarVariable"`
}

type xmlScalarVariable struct {
	Name           string `xml:"name,attr"`
	ValueReference int    `xml:"valueReference,attr"`
	Variability    string `xml:"variability,attr,omitempty"`
	Causality      string `xml:"causality,attr,omitempty"`

	Real        *xmlTypedElement `xml:"Real"`
	Integer     *xmlTypedElement `xml:"Integer"`
	Boolean     *xmlTypedElement `xml:"Boolean"`
	String      *xmlTypedElement `xml:"String"`
	Enumeration *xmlTypedElement `xml:"Enumeration"`
}

type xmlTypedElement struct {
	Start string `xml:"start,attr,omitempty"`
}

func buildDocument(desc Description) *xmlDocument {
	doc := &xmlDocument{
		FMIVersion: desc.FMIVersion,
		ModelName:  desc.ModelName,
		GUID:       "{fmutest}",
	}

	if doc.FMIVersion == "" {
		doc.FMIVersion = "2.0"
	}

	for i, v := range desc.Variables {
		sv := xmlScalarVariable{
			Name:           v.Name,
			ValueReference: i,
			Variability:    v.Variability,
			Causality:      v.Causality,
		}

		el := &xmlTypedElement{Start: v.Start}

		switch typeName(v) {
		case "Real":
			sv.Real = el
		case "Integer":
			sv.Integer = el
		case "Boolean":
			sv.Boolean = el
		case "Enumeration":
			sv.Enumeration = el
		default:
			sv.String = el
		}

		doc.ModelVariables.Variables = append(doc.ModelVariables.Variables, sv)
	}

	return doc
}

func typeName(v Variable) string {
	if v.Type != "" {
		return v.Type
	}

	if v.Start != "" {
		return "String"
	}

	return "Real"
}
