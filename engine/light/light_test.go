package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-stage/common"
)

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	if l.Color() != [3]float32{1, 1, 1} || l.Intensity() != 1 || !l.Enabled() {
		t.Errorf("defaults = %v %v %v", l.Color(), l.Intensity(), l.Enabled())
	}
	if l.CastsShadows() {
		t.Error("CastsShadows() default = true, want false")
	}
}

func TestLightOptions(t *testing.T) {
	l := NewLight(LightTypePoint,
		WithColor(common.MustNamedColor("aliceblue")),
		WithIntensity(0.5),
		WithRange(800),
		WithCastsShadows(true),
	)
	if l.Color() != common.Hex(0xf0f8ff).RGB() {
		t.Errorf("Color() = %v", l.Color())
	}
	if l.Intensity() != 0.5 || l.Range() != 800 || !l.CastsShadows() {
		t.Errorf("got intensity %v range %v shadows %v", l.Intensity(), l.Range(), l.CastsShadows())
	}
	l.SetRange(-1)
	if l.Range() != 0 {
		t.Errorf("Range() after negative set = %v, want 0", l.Range())
	}
}

func TestMarshalLightBlock(t *testing.T) {
	lights := make([]GPULight, MaxGPULights+3)
	lights[1] = GPULight{LightType: 1, Intensity: 2, LightRange: 800}

	buf, n := MarshalLightBlock(lights)
	if len(buf) != GPULightBlockSize {
		t.Fatalf("len = %d, want %d", len(buf), GPULightBlockSize)
	}
	if n != MaxGPULights {
		t.Errorf("packed = %d, want %d", n, MaxGPULights)
	}
	if got := binary.LittleEndian.Uint32(buf[0:]); got != MaxGPULights {
		t.Errorf("header count = %d", got)
	}
	slot := buf[16+48:]
	if binary.LittleEndian.Uint32(slot[12:]) != 1 {
		t.Error("slot 1 type not written")
	}
	if math.Float32frombits(binary.LittleEndian.Uint32(slot[44:])) != 800 {
		t.Error("slot 1 range not written")
	}
	var g GPULight
	if g.Size() != 48 {
		t.Errorf("GPULight size = %d, want 48", g.Size())
	}
}
