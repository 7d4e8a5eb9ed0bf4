// Package scene3d assembles styled text runs into a retained 3D scene:
// per-run mesh assembly, scene composition (build/update/dispose with
// generation tracking), lighting rigs, and text-warp deformation.
package scene3d

import (
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/gogpu/text3d/material"
	"github.com/gogpu/text3d/solid"
)

// Node is a retained scene-graph node. A node may carry mesh data
// (Geometry plus Material), a light, or act as a pure group; transforms
// are uniform scale plus translation, which is all text placement needs.
type Node struct {
	Name     string
	Position vec3.T
	Scale    vec3.T

	// Geometry and Material are set on mesh nodes. The geometry is
	// exclusively owned by this node until it is replaced or released.
	Geometry *solid.Geometry
	Material *material.Material

	// Light is set on light nodes.
	Light *Light

	Children []*Node
}

// NewGroup creates an empty group node with identity scale.
func NewGroup(name string) *Node {
	return &Node{Name: name, Scale: vec3.T{1, 1, 1}}
}

// NewMesh creates a mesh node with identity scale.
func NewMesh(name string, g *solid.Geometry, m *material.Material) *Node {
	return &Node{Name: name, Scale: vec3.T{1, 1, 1}, Geometry: g, Material: m}
}

// Add appends children to the node.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Remove detaches the first occurrence of child and reports whether it
// was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return true
		}
	}
	return false
}

// Bounds computes the node's axis-aligned bounding box in its parent's
// space: the node's own geometry bounds and all child bounds, scaled and
// translated by the node's transform. Light-only and empty groups yield
// an empty box.
func (n *Node) Bounds() solid.Box3 {
	box := solid.EmptyBox3()
	if n.Geometry != nil {
		box = box.Union(n.Geometry.Bounds)
	}
	for _, c := range n.Children {
		box = box.Union(c.Bounds())
	}
	if box.IsEmpty() {
		return box
	}
	return box.Scaled(n.Scale).Translated(n.Position)
}

// ReleaseGeometry frees every mesh buffer in the subtree. Nodes remain in
// the graph but carry no renderable data afterwards.
func (n *Node) ReleaseGeometry() {
	if n.Geometry != nil {
		n.Geometry.Release()
		n.Geometry = nil
	}
	n.Material = nil
	for _, c := range n.Children {
		c.ReleaseGeometry()
	}
}
