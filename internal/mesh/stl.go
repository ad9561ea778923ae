package mesh

import (
	"encoding/binary"
	"io"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then per triangle a float32 normal, three float32
// vertices, and a zero attribute word.
func (m *Mesh) WriteSTL(w io.Writer, header string) error {
	var head [80]byte
	copy(head[:], header)
	if err := binary.Write(w, binary.LittleEndian, head); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Tris))); err != nil {
		return err
	}

	buf := make([]byte, 4*3*4+2)
	for _, tri := range m.Tris {
		v0 := vec(m.Verts[tri[0]])
		v1 := vec(m.Verts[tri[1]])
		v2 := vec(m.Verts[tri[2]])
		n := r3.Unit(r3.Cross(r3.Sub(v1, v0), r3.Sub(v2, v0)))

		put3(buf[0:], n)
		put3(buf[12:], v0)
		put3(buf[24:], v1)
		put3(buf[36:], v2)
		buf[48], buf[49] = 0, 0
		if _, err := w.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

func put3(b []byte, v r3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
