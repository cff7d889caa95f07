// Copyright (c) 2026, The WormSim Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lems

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestColumns(t *testing.T) {
	cols, err := Columns(filepath.Join("testdata", "LEMS_c302_A_Sample.xml"))
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"VB1_v", "VB2_v", "DB1_v", "VD1_v", "VD2_v", "DD1_v", "AVBL_v"}
	wantBases := []string{"VB1", "VB2", "DB1", "VD1", "VD2", "DD1", "AVBL"}
	if len(cols) != len(wantNames) {
		t.Fatalf("got %d columns, want %d", len(cols), len(wantNames))
	}
	for i, c := range cols {
		if c.Name != wantNames[i] {
			t.Errorf("col %d: name %q, want %q", i, c.Name, wantNames[i])
		}
		if c.Base != wantBases[i] {
			t.Errorf("col %d: base %q, want %q", i, c.Base, wantBases[i])
		}
	}
}

func TestReadColumnsNamespaced(t *testing.T) {
	// generated LEMS files sometimes carry the neuroml LEMS namespace
	src := `<Lems xmlns="http://www.neuroml.org/lems/0.7.1">
  <Simulation id="sim1">
    <OutputFile id="of0" fileName="out.dat">
      <OutputColumn id="DB3_v" quantity="DB3/0/cell/v"/>
      <OutputColumn id="DD2_v" quantity="DD2/0/cell/v"/>
    </OutputFile>
  </Simulation>
</Lems>`
	cols, err := ReadColumns(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != 2 || cols[0].Name != "DB3_v" || cols[1].Base != "DD2" {
		t.Errorf("namespaced parse wrong: %+v", cols)
	}
}

func TestColumnsMissing(t *testing.T) {
	_, err := Columns(filepath.Join(t.TempDir(), "LEMS_nope.xml"))
	if !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("missing file: got %v, want ErrSchemaNotFound", err)
	}
}

func TestColumnsMalformed(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "LEMS_bad.xml")
	if err := os.WriteFile(bad, []byte("<Lems><OutputColumn id="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Columns(bad); !errors.Is(err, ErrSchemaParse) {
		t.Errorf("truncated xml: got %v, want ErrSchemaParse", err)
	}

	empty := filepath.Join(dir, "LEMS_empty.xml")
	if err := os.WriteFile(empty, []byte("<Lems><Simulation id=\"s\"/></Lems>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Columns(empty); !errors.Is(err, ErrSchemaParse) {
		t.Errorf("no output columns: got %v, want ErrSchemaParse", err)
	}

	noid := filepath.Join(dir, "LEMS_noid.xml")
	if err := os.WriteFile(noid, []byte("<Lems><OutputColumn quantity=\"x\"/></Lems>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Columns(noid); !errors.Is(err, ErrSchemaParse) {
		t.Errorf("missing id attr: got %v, want ErrSchemaParse", err)
	}
}

func TestFindForData(t *testing.T) {
	dir := t.TempDir()
	lp := filepath.Join(dir, "LEMS_c302_A_EternalPain.xml")
	if err := os.WriteFile(lp, []byte("<Lems/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := FindForData(filepath.Join(dir, "c302_A_EternalPain.dat"))
	if err != nil {
		t.Fatal(err)
	}
	if got != lp {
		t.Errorf("inferred %q, want %q", got, lp)
	}

	if _, err := FindForData(filepath.Join(dir, "c302_B_EternalPain.dat")); !errors.Is(err, ErrSchemaNotFound) {
		t.Errorf("no schema present: got %v, want ErrSchemaNotFound", err)
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("VB2_v"); got != "VB2" {
		t.Errorf("BaseName(VB2_v) = %q", got)
	}
	if got := BaseName("AVBL"); got != "AVBL" {
		t.Errorf("BaseName(AVBL) = %q", got)
	}
}
