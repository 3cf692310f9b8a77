package bind_group_provider

import "testing"

func TestNewBindGroupProviderLabel(t *testing.T) {
	p := NewBindGroupProvider("mesh floor")
	if p.Label() != "mesh floor" {
		t.Errorf("Label() = %q", p.Label())
	}
	if p.BindGroup() != nil || p.Buffer(0) != nil || p.VertexBuffer() != nil {
		t.Error("fresh provider holds GPU objects")
	}
}

func TestIndexCountsAndRelease(t *testing.T) {
	p := NewBindGroupProvider("p")
	p.SetIndexBuffer(nil, 36)
	p.SetLineIndexBuffer(nil, 60)
	if p.IndexCount() != 36 || p.LineIndexCount() != 60 {
		t.Errorf("counts = %d, %d", p.IndexCount(), p.LineIndexCount())
	}
	p.SetBuffer(0, nil)
	p.Release()
	if p.IndexCount() != 0 || p.LineIndexCount() != 0 {
		t.Error("Release() did not reset index counts")
	}
}
