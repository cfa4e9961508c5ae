package meshio

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/soypat/stilllife"
	"github.com/soypat/stilllife/scene"
)

func TestAddMesh(t *testing.T) {
	var bld stilllife.Builder
	doc := NewDocument()
	for _, m := range []*stilllife.Mesh{bld.NewTorus(stilllife.DefaultTorus), bld.NewCylinder(stilllife.DefaultCylinder)} {
		accStart := len(doc.Accessors)
		idx, err := AddMesh(doc, m)
		if err != nil {
			t.Fatal(err)
		}
		gm := doc.Meshes[idx]
		if gm.Name != m.Name || len(gm.Primitives) != len(m.Ranges) {
			t.Fatalf("%s: unexpected mesh %+v", m.Name, gm)
		}
		pos := doc.Accessors[accStart]
		if pos.Count != uint32(m.NumVertices()) || pos.Type != gltf.AccessorVec3 {
			t.Errorf("%s: unexpected position accessor %+v", m.Name, pos)
		}
		if len(pos.Min) != 3 || len(pos.Max) != 3 {
			t.Errorf("%s: position accessor requires bounds", m.Name)
		}
		for i, p := range gm.Primitives {
			r := m.Ranges[i]
			acc := doc.Accessors[*p.Indices]
			if acc.Count != uint32(r.Count) {
				t.Errorf("%s range %d: want %d indices, got %d", m.Name, i, r.Count, acc.Count)
			}
			if p.Attributes["POSITION"] != uint32(accStart) {
				t.Errorf("%s range %d: wrong position accessor", m.Name, i)
			}
			if p.Mode != primitiveMode(r.Primitive) {
				t.Errorf("%s range %d: want mode %v, got %v", m.Name, i, primitiveMode(r.Primitive), p.Mode)
			}
		}
	}
	buffer := doc.Buffers[0]
	if int(buffer.ByteLength) != len(buffer.Data) {
		t.Errorf("buffer length %d does not match data %d", buffer.ByteLength, len(buffer.Data))
	}
	for i, bv := range doc.BufferViews {
		if bv.ByteOffset+bv.ByteLength > buffer.ByteLength {
			t.Errorf("buffer view %d out of bounds", i)
		}
		if bv.ByteOffset%4 != 0 {
			t.Errorf("buffer view %d not aligned", i)
		}
	}
}

func TestStillLifeGLB(t *testing.T) {
	var bld stilllife.Builder
	set := bld.NewSet()
	groups := scene.StillLife()
	doc := NewDocument()
	err := AddStillLife(doc, set, groups)
	if err != nil {
		t.Fatal(err)
	}
	nobj := 0
	for _, g := range groups {
		nobj += len(g.Objects)
	}
	if len(doc.Meshes) != len(scene.Shapes()) {
		t.Errorf("want one mesh per shape, got %d", len(doc.Meshes))
	}
	if len(doc.Nodes) != nobj+len(groups) {
		t.Errorf("want %d nodes, got %d", nobj+len(groups), len(doc.Nodes))
	}
	if len(doc.Scenes[0].Nodes) != len(groups) {
		t.Errorf("want %d root nodes, got %d", len(groups), len(doc.Scenes[0].Nodes))
	}
	var buf bytes.Buffer
	err = WriteGLB(&buf, doc)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("glTF")) {
		t.Fatal("missing GLB magic")
	}
	var got gltf.Document
	err = gltf.NewDecoder(&buf).Decode(&got)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Meshes) != len(doc.Meshes) || len(got.Nodes) != len(doc.Nodes) || len(got.Accessors) != len(doc.Accessors) {
		t.Errorf("decoded document mismatch: %d meshes %d nodes %d accessors", len(got.Meshes), len(got.Nodes), len(got.Accessors))
	}
	if len(got.Buffers) != 1 || len(got.Buffers[0].Data) < len(doc.Buffers[0].Data) {
		t.Error("binary buffer not embedded")
	}
}

func TestExport(t *testing.T) {
	var glb, stl bytes.Buffer
	err := Export(scene.StillLife(), ExportConfig{GLBOutput: &glb, STLOutput: &stl, Silent: true})
	if err != nil {
		t.Fatal(err)
	}
	if glb.Len() == 0 {
		t.Error("empty glTF output")
	}
	if stl.Len() < 84 {
		t.Fatal("short STL output")
	}
	ntri := binary.LittleEndian.Uint32(stl.Bytes()[80:])
	if stl.Len() != 84+50*int(ntri) {
		t.Errorf("STL size %d does not match %d triangles", stl.Len(), ntri)
	}
	err = Export(nil, ExportConfig{})
	if err == nil {
		t.Error("expected error without outputs")
	}
}
