package panel

// NodeKind classifies a rendered conversation entry.
type NodeKind string

const (
	NodeUser         NodeKind = "user"
	NodeAssistant    NodeKind = "assistant"
	NodeFunctionCall NodeKind = "function_call"
	NodeWidget       NodeKind = "widget"
	NodeRevert       NodeKind = "revert"
)

// Node is one entry on a conversation surface. Seq is the processing sequence
// it was created under; arrival order and display order are decoupled, Seq is
// what positions the node.
type Node struct {
	Seq       int
	MessageID string
	Kind      NodeKind
	// Raw is the source text; Markup the rendered form shown to the user.
	Raw       string
	Markup    string
	Complete  bool
	Cancelled bool
	Widget    renderable
}

type renderable interface {
	Render(width int) []string
}

// Surface is an ordered conversation container. Nodes are kept sorted by Seq:
// an insert walks existing nodes and places the new one before the first node
// with a greater sequence, so late-processed events still land in logical
// position. Equal sequences preserve insertion order.
type Surface struct {
	nodes []*Node
	byID  map[string]*Node
}

// NewSurface creates an empty surface.
func NewSurface() *Surface {
	return &Surface{byID: make(map[string]*Node)}
}

// Insert places the node by sequence position.
func (s *Surface) Insert(n *Node) {
	at := len(s.nodes)
	for i, existing := range s.nodes {
		if existing.Seq > n.Seq {
			at = i
			break
		}
	}
	s.nodes = append(s.nodes, nil)
	copy(s.nodes[at+1:], s.nodes[at:])
	s.nodes[at] = n
	s.index(n)
}

// Append adds the node at the end regardless of sequence. Used for
// synchronous history restoration, which already arrives in display order.
func (s *Surface) Append(n *Node) {
	s.nodes = append(s.nodes, n)
	s.index(n)
}

func (s *Surface) index(n *Node) {
	// Revert markers reference an existing user message id; they must not
	// shadow that message in the id index.
	if n.MessageID == "" || n.Kind == NodeRevert {
		return
	}
	if _, taken := s.byID[n.MessageID]; !taken {
		s.byID[n.MessageID] = n
	}
}

// ByID returns the node that owns a message id.
func (s *Surface) ByID(messageID string) (*Node, bool) {
	n, ok := s.byID[messageID]
	return n, ok
}

// Nodes returns the entries in display order. The slice is shared; callers
// must not mutate it.
func (s *Surface) Nodes() []*Node { return s.nodes }

// Len returns the number of entries.
func (s *Surface) Len() int { return len(s.nodes) }

// Clear removes every entry.
func (s *Surface) Clear() {
	s.nodes = nil
	s.byID = make(map[string]*Node)
}

// MoveAllTo transfers every node, in display order, onto dst and empties the
// receiver. This is the atomic half of background reconstruction: dst is
// cleared first so the swap replaces rather than merges.
func (s *Surface) MoveAllTo(dst *Surface) {
	dst.Clear()
	for _, n := range s.nodes {
		dst.Append(n)
	}
	s.Clear()
}
