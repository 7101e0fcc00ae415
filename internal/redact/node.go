package redact

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	ScalarNode NodeKind = iota
	SequenceNode
	MappingNode
)

func (k NodeKind) String() string {
	switch k {
	case SequenceNode:
		return "sequence"
	case MappingNode:
		return "mapping"
	default:
		return "scalar"
	}
}

// Node is a payload tree: a scalar, a sequence of nodes, or an ordered
// mapping from string keys to nodes. The zero Node is a nil scalar.
type Node struct {
	kind    NodeKind
	scalar  any
	items   []Node
	entries []Entry
}

// Entry is one key/value pair of a mapping node.
type Entry struct {
	Key   string
	Value Node
}

// Scalar wraps a leaf value. The value is stored as is.
func Scalar(v any) Node {
	return Node{kind: ScalarNode, scalar: v}
}

// Sequence builds a sequence node.
func Sequence(items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{kind: SequenceNode, items: items}
}

// Mapping builds a mapping node. Entry order is preserved.
func Mapping(entries ...Entry) Node {
	if entries == nil {
		entries = []Entry{}
	}
	return Node{kind: MappingNode, entries: entries}
}

func (n Node) Kind() NodeKind   { return n.kind }
func (n Node) ScalarValue() any { return n.scalar }
func (n Node) Items() []Node    { return n.items }
func (n Node) Entries() []Entry { return n.entries }

// Get returns the value stored under key in a mapping node.
func (n Node) Get(key string) (Node, bool) {
	for _, e := range n.entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Node{}, false
}

// Value converts the tree back to plain Go values: map[string]any for
// mappings, []any for sequences and the stored value for scalars.
func (n Node) Value() any {
	switch n.kind {
	case SequenceNode:
		out := make([]any, len(n.items))
		for i, item := range n.items {
			out[i] = item.Value()
		}
		return out
	case MappingNode:
		out := make(map[string]any, len(n.entries))
		for _, e := range n.entries {
			out[e.Key] = e.Value.Value()
		}
		return out
	default:
		return n.scalar
	}
}
