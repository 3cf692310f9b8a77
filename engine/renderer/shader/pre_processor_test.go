package shader

import (
	"strings"
	"testing"
)

func TestProcessIncludeAndGroup(t *testing.T) {
	src := strings.Join([]string{
		"//@oxy:include camera",
		"//@oxy:group 0 0 storage_uniform camera camera",
		"fn f() {}",
	}, "\n")

	pp := NewPreProcessor()
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if strings.Contains(out, annotationPrefix) {
		t.Errorf("output still contains annotations:\n%s", out)
	}
	if !strings.Contains(out, "struct Camera {") {
		t.Errorf("camera struct not injected:\n%s", out)
	}
	if !strings.Contains(out, "@group(0) @binding(0) var<uniform> camera: Camera;") {
		t.Errorf("group declaration not generated:\n%s", out)
	}
	if !strings.HasSuffix(out, "fn f() {}") {
		t.Errorf("plain lines not preserved:\n%s", out)
	}

	decls := pp.Declarations()
	if len(decls) != 1 {
		t.Fatalf("len(Declarations()) = %d, want 1", len(decls))
	}
	d := decls[0]
	if d.Type != AnnotationTypeBindingGroup || *d.Group != 0 || *d.Binding != 0 || d.Args[2] != AnnotationArgCamera {
		t.Errorf("declaration = %+v", d)
	}
}

func TestProcessProviderRecordedWithoutOutput(t *testing.T) {
	src := "//@oxy:provider 0 1 environment\n@group(0) @binding(1) var<uniform> env: Environment;"
	pp := NewPreProcessor()
	out, err := pp.Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != "@group(0) @binding(1) var<uniform> env: Environment;" {
		t.Errorf("unexpected output:\n%s", out)
	}
	decls := pp.Declarations()
	if len(decls) != 1 || decls[0].Type != AnnotationTypeProvider || decls[0].Args[0] != AnnotationArgEnvironment {
		t.Errorf("Declarations() = %+v", decls)
	}
}

func TestProcessResetsDeclarations(t *testing.T) {
	pp := NewPreProcessor()
	if _, err := pp.Process("//@oxy:provider 0 0 sky_uniform"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if _, err := pp.Process("fn f() {}"); err != nil {
		t.Fatalf("Process: %v", err)
	}
	if n := len(pp.Declarations()); n != 0 {
		t.Errorf("len(Declarations()) = %d after plain source, want 0", n)
	}
}

func TestProcessErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", "//@oxy:"},
		{"unknown type", "//@oxy:frobnicate camera"},
		{"unknown struct", "//@oxy:include monster"},
		{"include arity", "//@oxy:include camera light"},
		{"group arity", "//@oxy:group 0 0 storage_uniform camera"},
		{"bad group", "//@oxy:group x 0 storage_uniform camera camera"},
		{"negative binding", "//@oxy:group 0 -1 storage_uniform camera camera"},
		{"bad address space", "//@oxy:group 0 0 workgroup camera camera"},
		{"unknown provider", "//@oxy:provider 0 0 shadow"},
		{"double include", "//@oxy:include light\n//@oxy:include light"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewPreProcessor().Process(tt.src); err == nil {
				t.Errorf("Process(%q) = nil error", tt.src)
			}
		})
	}
}

func TestProcessIgnoresNonCommentMentions(t *testing.T) {
	src := `let s = "@oxy:include camera";`
	out, err := NewPreProcessor().Process(src)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if out != src {
		t.Errorf("Process changed a non-comment line: %q", out)
	}
}

func TestStructSizes(t *testing.T) {
	pp := NewPreProcessor()
	want := map[AnnotationArg]int{
		AnnotationArgCamera:         80,
		AnnotationArgVertex:         32,
		AnnotationArgModelData:      128,
		AnnotationArgMaterialParams: 32,
		AnnotationArgLight:          48,
		AnnotationArgLights:         16 + 8*48,
	}
	for arg, size := range want {
		got, ok := pp.StructSize(arg)
		if !ok || got != size {
			t.Errorf("StructSize(%q) = %d, %v; want %d", arg, got, ok, size)
		}
	}
	if _, ok := pp.StructSize("monster"); ok {
		t.Error("StructSize(monster) reported registered")
	}
}
