package inventory

import (
	"strconv"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ddb-converter/internal/engine/encumbrance"
	"github.com/KirkDiggler/ddb-converter/internal/entities/ddb"
)

// Entity types reported by Node.GetType.
const (
	EntityTypeItem      = "item"
	EntityTypeContainer = "container"
)

// Node is an inventory item placed in the containment tree.
type Node struct {
	Item     ddb.InventoryItem
	Parent   *Node
	Children []*Node
	Depth    int
}

var _ core.Entity = (*Node)(nil)

// GetID returns the inventory item id.
func (n *Node) GetID() string {
	return strconv.FormatInt(n.Item.ID, 10)
}

// GetType returns EntityTypeContainer for containers and EntityTypeItem
// otherwise.
func (n *Node) GetType() string {
	if n.IsContainer() {
		return EntityTypeContainer
	}
	return EntityTypeItem
}

// Name returns the item name.
func (n *Node) Name() string {
	return n.Item.Definition.Name
}

// IsContainer reports whether the item is a container or holds other items.
func (n *Node) IsContainer() bool {
	return n.Item.Definition.IsContainer || len(n.Children) > 0
}

// ContentsMultiplier is the weight factor applied to the node's contents.
func (n *Node) ContentsMultiplier() float64 {
	return n.Item.Definition.ContentsMultiplier()
}

// IsMagicContainer reports whether the node makes its contents weightless.
// It agrees with EncumbranceItem, which applies ContentsMultiplier to every
// child.
func (n *Node) IsMagicContainer() bool {
	return n.IsContainer() && n.ContentsMultiplier() == 0
}

// Weightless reports whether a magic container above this node cancels its
// weight.
func (n *Node) Weightless() bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsMagicContainer() {
			return true
		}
	}
	return false
}

// EncumbranceItem converts the subtree rooted at n.
func (n *Node) EncumbranceItem() encumbrance.Item {
	item := encumbrance.Item{
		Name:               n.Name(),
		Weight:             n.Item.Definition.Weight,
		Quantity:           n.Item.Count(),
		ContentsMultiplier: n.ContentsMultiplier(),
	}
	for _, child := range n.Children {
		item.Contents = append(item.Contents, child.EncumbranceItem())
	}
	return item
}

// Walk visits n and its descendants depth first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// buildTree nests items under the containers that hold them. Items held by
// the character, by an unknown id, by themselves, or by a containment cycle
// become roots. Input order is preserved among siblings.
func buildTree(items []ddb.InventoryItem, characterID int64) []*Node {
	nodes := make([]*Node, len(items))
	byID := make(map[int64]int, len(items))
	for i, item := range items {
		nodes[i] = &Node{Item: item}
		if _, seen := byID[item.ID]; !seen {
			byID[item.ID] = i
		}
	}

	candidate := func(i int) int {
		item := items[i]
		if item.ContainerEntityID == characterID || item.ContainerEntityID == item.ID {
			return -1
		}
		parent, ok := byID[item.ContainerEntityID]
		if !ok || parent == i {
			return -1
		}
		return parent
	}

	parents := make([]int, len(items))
	for i := range items {
		parents[i] = candidate(i)
		if parents[i] >= 0 && inCycle(i, candidate, len(items)) {
			parents[i] = -1
		}
	}

	var roots []*Node
	for i, node := range nodes {
		if parents[i] < 0 {
			roots = append(roots, node)
			continue
		}
		parent := nodes[parents[i]]
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}

	for _, root := range roots {
		setDepth(root, 0)
	}
	return roots
}

// inCycle follows candidate parents from start and reports whether the
// chain returns to start.
func inCycle(start int, candidate func(int) int, limit int) bool {
	current := start
	for step := 0; step < limit; step++ {
		current = candidate(current)
		if current < 0 {
			return false
		}
		if current == start {
			return true
		}
	}
	return false
}

func setDepth(n *Node, depth int) {
	n.Depth = depth
	for _, child := range n.Children {
		setDepth(child, depth+1)
	}
}
