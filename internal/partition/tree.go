package partition

import (
	"fmt"

	"github.com/skyframe-data/skypart/internal/healpix"
)

// NodeType classifies a node in the pixel tree.
type NodeType int

const (
	// RootNode is the synthetic node above the 12 base pixels.
	RootNode NodeType = iota
	// InnerNode is a pixel subdivided by finer partition pixels.
	InnerNode
	// LeafNode is a partition pixel holding data.
	LeafNode
)

// PixelNode is one node of the sparse pixel tree.
type PixelNode struct {
	Pixel    healpix.Pixel
	Type     NodeType
	Parent   *PixelNode
	Children []*PixelNode
}

// PixelTree is a sparse quadtree over the pixels of a catalog partition.
// Leaf nodes are the partition pixels; inner nodes are created on demand
// up to a synthetic root above the 12 base pixels.
type PixelTree struct {
	root   *PixelNode
	nodes  map[healpix.Pixel]*PixelNode
	leaves int
}

// NewPixelTree builds a tree from the partition's leaf pixels. It fails
// with ErrInvalidArgument when the pixel set is not a valid partition:
// duplicate pixels, or a pixel nested inside another leaf.
func NewPixelTree(pixels []healpix.Pixel) (*PixelTree, error) {
	t := &PixelTree{
		root:  &PixelNode{Type: RootNode},
		nodes: make(map[healpix.Pixel]*PixelNode),
	}
	for _, p := range pixels {
		if err := t.addLeaf(p); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Root returns the synthetic root node.
func (t *PixelTree) Root() *PixelNode { return t.root }

// Len returns the number of nodes in the tree, inner nodes and the root
// included.
func (t *PixelTree) Len() int { return len(t.nodes) + 1 }

// Leaves returns the number of leaf (partition) pixels.
func (t *PixelTree) Leaves() int { return t.leaves }

// Contains reports whether the tree has a node at the given pixel.
func (t *PixelTree) Contains(p healpix.Pixel) bool {
	_, ok := t.nodes[p]
	return ok
}

// GetNode returns the node at the given pixel, or nil if absent.
func (t *PixelTree) GetNode(p healpix.Pixel) *PixelNode {
	return t.nodes[p]
}

// ContainingLeaf returns the leaf pixel whose region covers p, or nil if
// p falls outside the partition.
func (t *PixelTree) ContainingLeaf(p healpix.Pixel) *PixelNode {
	for {
		if node, ok := t.nodes[p]; ok {
			if node.Type == LeafNode {
				return node
			}
			return nil
		}
		if p.Order == 0 {
			return nil
		}
		p = p.Parent()
	}
}

func (t *PixelTree) addLeaf(p healpix.Pixel) error {
	if t.Contains(p) {
		return fmt.Errorf("partition contains duplicate pixel %v: %w", p, healpix.ErrInvalidArgument)
	}
	t.leaves++
	return t.addNode(p, LeafNode)
}

// addNode inserts a node, creating inner ancestors as needed. Walking into
// an existing leaf means two partition pixels overlap.
func (t *PixelTree) addNode(p healpix.Pixel, typ NodeType) error {
	parent := t.root
	if p.Order > 0 {
		parentPixel := p.Parent()
		existing, ok := t.nodes[parentPixel]
		if !ok {
			if err := t.addNode(parentPixel, InnerNode); err != nil {
				return err
			}
			existing = t.nodes[parentPixel]
		}
		if existing.Type != InnerNode {
			return fmt.Errorf("partition defines pixels at multiple orders under %v: %w",
				existing.Pixel, healpix.ErrInvalidArgument)
		}
		parent = existing
	}
	node := &PixelNode{Pixel: p, Type: typ, Parent: parent}
	parent.Children = append(parent.Children, node)
	t.nodes[p] = node
	return nil
}
