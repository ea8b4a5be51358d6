package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/FUSEEProjectTeam/Fusee-sub004/internal/scene"
)

// meshBuffers are the GL objects of one uploaded mesh.
type meshBuffers struct {
	vao      uint32
	vbos     []uint32
	ebo      uint32
	count    int32
	indexed  bool
	revision uint32
}

// uploadMesh stores each vertex stream in its own buffer bound to the shared
// attribute locations. Missing streams keep the attribute's constant default.
func uploadMesh(m *scene.Mesh) *meshBuffers {
	b := &meshBuffers{revision: m.Revision}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	b.attribute(attribVertex, 3, len(m.Vertices), gl.Ptr(m.Vertices))
	if len(m.Normals) == len(m.Vertices) {
		b.attribute(attribNormal, 3, len(m.Normals), gl.Ptr(m.Normals))
	}
	if len(m.UVs) == len(m.Vertices) {
		b.attribute(attribUV, 2, len(m.UVs), gl.Ptr(m.UVs))
	}
	if m.Skinned() && len(m.BoneIndices) == len(m.Vertices) {
		b.attribute(attribBoneIndex, 4, len(m.BoneIndices), gl.Ptr(m.BoneIndices))
		b.attribute(attribBoneWeight, 4, len(m.BoneWeights), gl.Ptr(m.BoneWeights))
	}

	if len(m.Triangles) > 0 {
		gl.GenBuffers(1, &b.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Triangles)*4, gl.Ptr(m.Triangles), gl.STATIC_DRAW)
		b.indexed = true
		b.count = int32(len(m.Triangles))
	} else {
		b.count = int32(len(m.Vertices))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

// attribute uploads n tightly packed float32 vectors of the given size.
func (b *meshBuffers) attribute(index uint32, size int32, n int, data unsafe.Pointer) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, n*int(size)*4, data, gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, 0, 0)
	gl.EnableVertexAttribArray(index)
	b.vbos = append(b.vbos, vbo)
}

func (b *meshBuffers) delete() {
	if len(b.vbos) > 0 {
		gl.DeleteBuffers(int32(len(b.vbos)), &b.vbos[0])
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	gl.DeleteVertexArrays(1, &b.vao)
}
