// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lems extracts the recorded-channel schema from a LEMS simulation
// description file.  The c302 simulator writes its numeric output as a
// headerless table, so the only record of what each column contains is the
// ordered list of OutputColumn elements in the LEMS file generated next to
// it.  The walk preserves document order, which is the column order the
// simulator writes.
package lems

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrSchemaNotFound indicates the LEMS schema file could not be located.
	ErrSchemaNotFound = errors.New("lems: schema file not found")

	// ErrSchemaParse indicates the LEMS file was found but its recorded-output
	// structure was absent or malformed.
	ErrSchemaParse = errors.New("lems: schema parse failed")
)

// VoltSuffix is the quantity suffix c302 appends to membrane-voltage
// output column ids (e.g. VB2_v records the membrane voltage of VB2).
const VoltSuffix = "_v"

// Column is one recorded output column from the schema, in the order the
// simulator writes them after the leading time column.
type Column struct {

	// Name is the full column id as written by the simulator, e.g. VB2_v
	Name string

	// Base is Name with any recognized quantity suffix stripped, e.g. VB2 --
	// this is what group-classification rules match against
	Base string
}

// BaseName strips the recognized quantity suffix from a column id,
// returning the bare population identifier.
func BaseName(name string) string {
	return strings.TrimSuffix(name, VoltSuffix)
}

// Columns parses the LEMS file at the given path and returns the ordered
// list of recorded output columns.  Returns ErrSchemaNotFound if the file
// does not exist, and ErrSchemaParse if it is not valid XML or contains no
// OutputColumn elements.
func Columns(path string) ([]Column, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSchemaNotFound, path, err)
	}
	defer f.Close()
	cols, err := ReadColumns(f)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, path)
	}
	return cols, nil
}

// ReadColumns extracts the ordered OutputColumn ids from LEMS XML read from
// r.  Element matching is namespace-agnostic: generated LEMS files appear
// both with and without the neuroml LEMS namespace.
func ReadColumns(r io.Reader) ([]Column, error) {
	dec := xml.NewDecoder(r)
	var cols []Column
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaParse, err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "OutputColumn" {
			continue
		}
		id := ""
		for _, at := range se.Attr {
			if at.Name.Local == "id" {
				id = at.Value
				break
			}
		}
		if id == "" {
			return nil, fmt.Errorf("%w: OutputColumn without id attribute", ErrSchemaParse)
		}
		cols = append(cols, Column{Name: id, Base: BaseName(id)})
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no OutputColumn elements", ErrSchemaParse)
	}
	return cols, nil
}

// FindForData infers the LEMS schema path from the numeric data file path,
// following the c302 naming convention: c302_A_EternalPain.dat is described
// by LEMS_c302_A_EternalPain.xml in the same directory.  Returns
// ErrSchemaNotFound if no file exists at the inferred location.
func FindForData(datPath string) (string, error) {
	dir := filepath.Dir(datPath)
	base := strings.TrimSuffix(filepath.Base(datPath), filepath.Ext(datPath))
	if !strings.HasPrefix(base, "LEMS_") {
		base = "LEMS_" + base
	}
	lp := filepath.Join(dir, base+".xml")
	if _, err := os.Stat(lp); err != nil {
		return "", fmt.Errorf("%w: inferred %s from %s", ErrSchemaNotFound, lp, datPath)
	}
	return lp, nil
}
