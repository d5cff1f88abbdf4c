package mapfile

import (
	"errors"
	"strings"
	"testing"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
	"github.com/jverhoeven/anchormap/pkg/layout"
)

const sampleMap = `
macros:
  unit: "10"
groups:
  rack:
    macros:
      title: rack
    components:
      motor:
        width: "20"
        height: ${unit}
        label: ${title} motor
      pump:
        width: "20"
        height: ${unit}
    layout:
      - vertical: [motor, pump]
    anchors:
      n: motor
components:
  web:
    width: "30"
    height: "30"
  db:
    group: rack
    macros:
      title: db
layout:
  - horizontal: [web, db]
`

func mustLoad(t *testing.T, doc string) *Map {
	t.Helper()
	m, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return m
}

func TestLoadSampleMap(t *testing.T) {
	m := mustLoad(t, sampleMap)

	if len(m.Groups) != 1 || len(m.Components) != 2 {
		t.Fatalf("groups = %d, components = %d", len(m.Groups), len(m.Components))
	}

	rack := m.Groups["rack"]
	wantDecls := []layout.Declaration{{Parent: "motor", Dir: compass.South, Child: "pump"}}
	if len(rack.decls) != 1 || rack.decls[0] != wantDecls[0] {
		t.Errorf("rack decls = %+v, want %+v", rack.decls, wantDecls)
	}

	want := layout.Declaration{Parent: "web", Dir: compass.East, Child: "db"}
	if len(m.decls) != 1 || m.decls[0] != want {
		t.Errorf("top decls = %+v, want %+v", m.decls, want)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name: "unknown layout name",
			doc: `
components:
  a: {width: "1", height: "1"}
layout:
  - horizontal: [a, ghost]
`,
			wantErr: ErrUnknownComponent,
		},
		{
			name: "duplicate slot",
			doc: `
components:
  a: {width: "1", height: "1"}
  b: {width: "1", height: "1"}
  c: {width: "1", height: "1"}
layout:
  - horizontal: [a, b]
  - directional:
      a: {e: c}
`,
			wantErr: ErrDuplicateConnection,
		},
		{
			name: "duplicate slot via inversion",
			doc: `
components:
  a: {width: "1", height: "1"}
  b: {width: "1", height: "1"}
  c: {width: "1", height: "1"}
layout:
  - horizontal: [a, b]
  - directional:
      c: {e: b}
`,
			wantErr: ErrDuplicateConnection,
		},
		{
			name: "component missing extent",
			doc: `
components:
  a: {width: "1"}
layout: []
`,
			wantErr: ErrBadComponent,
		},
		{
			name: "component with shape and group",
			doc: `
groups:
  g:
    components:
      x: {width: "1", height: "1"}
    layout: []
components:
  a: {group: g, width: "1", height: "1"}
layout: []
`,
			wantErr: ErrBadComponent,
		},
		{
			name: "unknown group reference",
			doc: `
components:
  a: {group: ghost}
layout: []
`,
			wantErr: ErrUnknownGroup,
		},
		{
			name: "component clashes with group",
			doc: `
groups:
  a:
    components:
      x: {width: "1", height: "1"}
    layout: []
components:
  a: {width: "1", height: "1"}
layout: []
`,
			wantErr: ErrNameClash,
		},
		{
			name: "nested group",
			doc: `
groups:
  inner:
    components:
      x: {width: "1", height: "1"}
    layout: []
  outer:
    components:
      y: {group: inner}
    layout: []
layout: []
`,
			wantErr: ErrNestedGroup,
		},
		{
			name: "anchor names non-member",
			doc: `
groups:
  g:
    components:
      x: {width: "1", height: "1"}
    layout: []
    anchors:
      n: ghost
layout: []
`,
			wantErr: ErrUnknownGroup,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	docs := map[string]string{
		"top level": `
components:
  a: {width: "1", height: "1"}
layout: []
typo: true
`,
		"group": `
groups:
  g:
    components:
      x: {width: "1", height: "1"}
    layout: []
    typo: true
layout: []
`,
		"layout block": `
components:
  a: {width: "1", height: "1"}
layout:
  - sideways: [a]
`,
		"anchor direction": `
groups:
  g:
    components:
      x: {width: "1", height: "1"}
    layout: []
    anchors:
      up: x
layout: []
`,
	}

	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(doc)); err == nil {
				t.Error("Load() = nil error")
			}
		})
	}
}

func TestLayoutBlockForms(t *testing.T) {
	m := mustLoad(t, `
components:
  a: {width: "1", height: "1"}
  b: {width: "1", height: "1"}
  c: {width: "1", height: "1"}
  d: {width: "1", height: "1"}
layout:
  - vertical: [a, b]
  - diagonal: [b, c]
  - directional:
      c: {nw: d}
`)

	want := []layout.Declaration{
		{Parent: "a", Dir: compass.South, Child: "b"},
		{Parent: "b", Dir: compass.SouthEast, Child: "c"},
		{Parent: "c", Dir: compass.NorthWest, Child: "d"},
	}
	if len(m.decls) != len(want) {
		t.Fatalf("decls = %+v, want %+v", m.decls, want)
	}
	for i := range want {
		if m.decls[i] != want[i] {
			t.Errorf("decl %d = %+v, want %+v", i, m.decls[i], want[i])
		}
	}
}

func TestConnectorNames(t *testing.T) {
	m := mustLoad(t, `
components:
  a: {width: "5", height: "5"}
  b: {width: "5", height: "5"}
layout:
  - horizontal: [a, join*, b]
`)

	conn, ok := m.Components["join*"]
	if !ok {
		t.Fatal("connector component not declared")
	}
	if conn.Width != "1" || conn.Height != "1" {
		t.Errorf("connector extent = %sx%s, want 1x1", conn.Width, conn.Height)
	}

	plan, err := m.Instantiate(Options{MinSpacing: 10})
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	shape, ok := plan.TopShapes["join*"]
	if !ok {
		t.Fatal("connector shape missing from plan")
	}
	if shape.Name() != "join_" {
		t.Errorf("connector shape name = %q, want join_", shape.Name())
	}
}

func TestExpandMacros(t *testing.T) {
	macros := map[string]string{
		"a": "A",
		"b": "${a}B",
		"c": "${b}C",
	}

	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"${a}", "A"},
		{"${c}", "ABC"},
		{"${missing}", "${missing}"},
		{"x${a}y${b}z", "xAyABz"},
	}
	for _, tt := range tests {
		if got := ExpandMacros(tt.in, macros); got != tt.want {
			t.Errorf("ExpandMacros(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpandMacrosRunaway(t *testing.T) {
	macros := map[string]string{"loop": "x${loop}"}
	got := ExpandMacros("${loop}", macros)
	if !strings.Contains(got, "${loop}") {
		t.Errorf("runaway expansion = %q, want partial result", got)
	}
	if len(got) < maxMacroDepth {
		t.Errorf("expansion stopped after %d chars, want %d rounds", len(got), maxMacroDepth)
	}
}

func TestInstantiate(t *testing.T) {
	m := mustLoad(t, sampleMap)
	plan, err := m.Instantiate(Options{MinSpacing: 30})
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	if len(plan.Groups) != 1 {
		t.Fatalf("group plans = %d, want 1", len(plan.Groups))
	}
	gp := plan.Groups[0]
	if gp.Name != "db" {
		t.Errorf("group plan name = %q, want db", gp.Name)
	}

	motor, ok := gp.Shapes["db.motor"]
	if !ok {
		t.Fatalf("missing member shape db.motor; have %v", gp.Shapes)
	}
	if motor.Width() != 20 || motor.Height() != 10 {
		t.Errorf("motor extent = %gx%g, want 20x10", motor.Width(), motor.Height())
	}

	wantDecl := layout.Declaration{Parent: "db.motor", Dir: compass.South, Child: "db.pump"}
	if len(gp.Decls) != 1 || gp.Decls[0] != wantDecl {
		t.Errorf("group decls = %+v, want %+v", gp.Decls, wantDecl)
	}

	// Anchors carry over under the instance's prefixed names.
	if got := gp.Anchors[compass.North]; got != "db.motor" {
		t.Errorf("north anchor = %q, want db.motor", got)
	}

	if _, ok := plan.TopShapes["web"]; !ok {
		t.Error("missing top shape web")
	}
	if len(plan.TopDecls) != 1 || plan.TopDecls[0].Child != "db" {
		t.Errorf("top decls = %+v", plan.TopDecls)
	}
}

func TestInstantiateMacroPrecedence(t *testing.T) {
	m := mustLoad(t, sampleMap)
	plan, err := m.Instantiate(Options{MinSpacing: 30})
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}

	// The component's macros override the group's: db's title wins over
	// rack's in the label expansion.
	motor, ok := plan.Groups[0].Shapes["db.motor"].(*canvas.Shape)
	if !ok {
		t.Fatal("member is not a shape")
	}
	if motor.Label != "db motor" {
		t.Errorf("motor label = %q, want %q", motor.Label, "db motor")
	}

	// Unlabeled members fall back to their full name.
	pump := plan.Groups[0].Shapes["db.pump"].(*canvas.Shape)
	if pump.Label != "db.pump" {
		t.Errorf("pump label = %q, want %q", pump.Label, "db.pump")
	}
}
