// Package mesh box-extrudes validated footprints into triangle meshes
// for STL export and for ray-based shadow cross-checks.
//
// The 3D coordinate system extends the 2D world frame:
//
//	Z/up
//	|  Y/south
//	| /
//	|/____ X/east
package mesh

import (
	"github.com/sunpatch/sunpatch/internal/geo"
	"github.com/sunpatch/sunpatch/internal/site"
	"github.com/sunpatch/sunpatch/internal/triangulate"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Verts [][3]float64
	Tris  [][3]int
}

// builder deduplicates vertices while assembling a mesh, the same way
// an STL reader folds repeated corner coordinates into shared indices.
type builder struct {
	mesh    Mesh
	vertMap map[[3]float64]int
}

func newBuilder() *builder {
	return &builder{vertMap: make(map[[3]float64]int)}
}

func (b *builder) vertex(v [3]float64) int {
	if i, ok := b.vertMap[v]; ok {
		return i
	}
	i := len(b.mesh.Verts)
	b.mesh.Verts = append(b.mesh.Verts, v)
	b.vertMap[v] = i
	return i
}

func (b *builder) triangle(v0, v1, v2 [3]float64) {
	b.mesh.Tris = append(b.mesh.Tris, [3]int{b.vertex(v0), b.vertex(v1), b.vertex(v2)})
}

func lift(p geo.Point, z float64) [3]float64 {
	return [3]float64{p.X, p.Y, z}
}

// Extrude builds the box extrusion of one building: a triangulated
// roof at TotalHeight, a floor at ground level, and a quad wall per
// footprint edge. The footprint must be a validated world-space
// polygon.
func Extrude(b site.Building) (*Mesh, error) {
	mb := newBuilder()
	if err := extrudeInto(mb, b); err != nil {
		return nil, err
	}
	return &mb.mesh, nil
}

// Site merges the extrusions of every building into one mesh.
func Site(buildings []site.Building) (*Mesh, error) {
	mb := newBuilder()
	for _, b := range buildings {
		if err := extrudeInto(mb, b); err != nil {
			return nil, err
		}
	}
	return &mb.mesh, nil
}

func extrudeInto(mb *builder, b site.Building) error {
	indices, err := triangulate.Polygon(b.Footprint)
	if err != nil {
		return err
	}
	h := b.TotalHeight()
	fp := b.Footprint

	// Roof and floor reuse the footprint triangulation.
	for i := 0; i+2 < len(indices); i += 3 {
		p0, p1, p2 := fp[indices[i]], fp[indices[i+1]], fp[indices[i+2]]
		mb.triangle(lift(p0, h), lift(p1, h), lift(p2, h))
		mb.triangle(lift(p2, 0), lift(p1, 0), lift(p0, 0))
	}

	// One wall quad (two triangles) per edge.
	for i := range fp {
		a, c := fp[i], fp[(i+1)%len(fp)]
		mb.triangle(lift(a, 0), lift(c, 0), lift(c, h))
		mb.triangle(lift(a, 0), lift(c, h), lift(a, h))
	}
	return nil
}
