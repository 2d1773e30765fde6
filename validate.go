// validate.go implements the structural validator described in the
// package doc: parent/child tag compatibility, port-count and edge-kind
// agreement, dataflow acyclicity, inter-region edge legality, resource-
// set compatibility and constant typechecking.

package hugr

import (
	"fmt"
	"sort"

	"github.com/CQCL-DEV/hugr/ops"
)

// ValidationErrorKind discriminates the variants of ValidationError.
type ValidationErrorKind int

const (
	// ErrNotHierarchyRoot: the HUGR's designated root is not the root
	// of its own hierarchy (only possible by misuse of internal state).
	ErrNotHierarchyRoot ValidationErrorKind = iota
	// ErrRootWithEdges: the root node has at least one port.
	ErrRootWithEdges
	// ErrNoParent: a non-root node has no parent in the hierarchy.
	ErrNoParent
	// ErrInvalidParentOp: a node's tag is not in its parent's
	// AllowedChildren.
	ErrInvalidParentOp
	// ErrInvalidInitialChild: a container's first or last child is not
	// in AllowedFirstChild/AllowedLastChild.
	ErrInvalidInitialChild
	// ErrNonContainerWithChildren: a node with no AllowedChildren has
	// at least one child anyway.
	ErrNonContainerWithChildren
	// ErrContainerWithoutChildren: a node whose operation requires
	// children has none.
	ErrContainerWithoutChildren
	// ErrInvalidChildren: the operation's own ValidateChildren check
	// failed; Err holds the underlying *ops.ChildrenValidationError.
	ErrInvalidChildren
	// ErrInvalidEdges: a sibling-to-sibling edge failed the container
	// operation's EdgeCheck; Err holds the underlying error.
	ErrInvalidEdges
	// ErrNotABoundedDag: a container whose operation requires a DAG has
	// a child unreachable from its Input child along sibling edges, or
	// an actual cycle.
	ErrNotABoundedDag
	// ErrUnconnectedPort: a port that must carry a connection (linear
	// value, or constant input) has none.
	ErrUnconnectedPort
	// ErrTooManyConnections: a linear-kind outgoing port fans out to
	// more than one consumer.
	ErrTooManyConnections
	// ErrIncompatiblePorts: two linked ports disagree on EdgeKind.
	ErrIncompatiblePorts
	// ErrWrongNumberOfPorts: a node's port count in some direction does
	// not equal the count its operation declares.
	ErrWrongNumberOfPorts
	// ErrTgtExceedsSrcResources: an edge's target declares a strict
	// superset of the source's resource set (the mismatch a lift node
	// could repair).
	ErrTgtExceedsSrcResources
	// ErrSrcExceedsTgtResources: an edge's source declares resources
	// the target does not accept.
	ErrSrcExceedsTgtResources
	// ErrConstTypeError: a Const operation's value does not typecheck
	// against its declared type; Err holds the underlying
	// *ops.ConstTypeError.
	ErrConstTypeError
	// ErrInterGraphEdge: an edge between nodes in different regions
	// failed the External/Dominator legality check; Err holds the
	// underlying *InterGraphEdgeError.
	ErrInterGraphEdge
)

// ValidationError reports why Validate failed. Only the fields relevant
// to Kind are meaningful; Err, when non-nil, is the wrapped cause.
type ValidationError struct {
	Kind   ValidationErrorKind
	Node   Node
	Other  Node
	Port   Port
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("hugr: validate: node %d: %s", e.Node, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("hugr: validate: node %d: %s", e.Node, e.Err)
	}

	return fmt.Sprintf("hugr: validate: node %d: validation error %d", e.Node, e.Kind)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// InterGraphEdgeErrorKind discriminates the variants of
// InterGraphEdgeError.
type InterGraphEdgeErrorKind int

const (
	// ErrNonClassicalData: a linear Value edge, or an edge of a kind
	// other than Value, Const or StateOrder, crosses region boundaries
	// (only classical values, constants and order edges may do so).
	ErrNonClassicalData InterGraphEdgeErrorKind = iota
	// ErrInvalidConstSrc: a Const-kind inter-region edge's source is
	// neither a literal Const node nor a Function-tagged node.
	ErrInvalidConstSrc
	// ErrMissingOrderEdge: an External edge's source and the target's
	// ancestor-in-source's-parent are not also joined by a StateOrder
	// edge.
	ErrMissingOrderEdge
	// ErrNonCFGAncestor: a Dominator-shaped edge's grandparent region is
	// not a CFG.
	ErrNonCFGAncestor
	// ErrNonDominatedAncestor: the target's CFG ancestor is not
	// dominated by the source's enclosing basic block.
	ErrNonDominatedAncestor
	// ErrNoRelation: walking up from the target never reaches an
	// ancestor whose parent is the source's parent or grandparent.
	ErrNoRelation
)

// InterGraphEdgeError reports why an edge connecting nodes in different
// regions is not a legal External or Dominator edge.
type InterGraphEdgeError struct {
	Kind       InterGraphEdgeErrorKind
	From, To   Node
	Detail     string
}

func (e *InterGraphEdgeError) Error() string {
	return fmt.Sprintf("hugr: inter-graph edge %d -> %d: %s", e.From, e.To, e.Detail)
}

// portKey addresses one port for the resource table.
type portKey struct {
	node Node
	port Port
}

// validationContext carries the per-run state Validate accumulates:
// cached dominator trees (computed lazily, once per CFG region) and the
// resource set declared at every port.
type validationContext struct {
	h          *HUGR
	resources  map[portKey]ops.ResourceSet
	dominators map[Node]*dominatorTree
}

// Validate checks h for structural well-formedness, returning the first
// violation found. A nil return means h may be safely consumed by
// ApplySimpleReplacement or any other operation assuming well-formed
// input.
func (h *HUGR) Validate() error {
	if !h.hierarchy.IsRoot(h.root) {
		return &ValidationError{Kind: ErrNotHierarchyRoot, Node: h.root}
	}

	ctx := &validationContext{
		h:          h,
		resources:  make(map[portKey]ops.ResourceSet),
		dominators: make(map[Node]*dominatorTree),
	}
	ctx.gatherResources()

	// Visit in identifier order so the first violation reported is
	// deterministic across runs.
	nodes := h.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	for _, n := range nodes {
		if err := ctx.validateNode(n); err != nil {
			return err
		}
	}

	return nil
}

// gatherResources records the declared ResourceSet of every port of
// every node, read once so validatePort never re-derives it from an
// OpType's Signature.
func (c *validationContext) gatherResources() {
	for _, n := range c.h.Nodes() {
		sig := c.h.GetOptype(n).Signature()
		for offset := 0; offset < sig.InputCount(); offset++ {
			c.resources[portKey{n, In(offset)}] = sig.InputResources
		}
		for offset := 0; offset < sig.OutputCount(); offset++ {
			c.resources[portKey{n, Out(offset)}] = sig.OutputResources
		}
	}
}

func (c *validationContext) validateNode(n Node) error {
	op := c.h.GetOptype(n)

	if c.h.IsRoot(n) {
		if c.h.PortCount(n, Incoming) != 0 || c.h.PortCount(n, Outgoing) != 0 {
			return &ValidationError{Kind: ErrRootWithEdges, Node: n}
		}
	} else {
		parent, ok := c.h.Parent(n)
		if !ok {
			return &ValidationError{Kind: ErrNoParent, Node: n}
		}
		parentOp := c.h.GetOptype(parent)
		if !parentOp.ValidityFlags().AllowedChildren.Contains(op.Tag()) {
			return &ValidationError{Kind: ErrInvalidParentOp, Node: n, Other: parent,
				Detail: fmt.Sprintf("%s is not an allowed child of %s", op.Tag(), parentOp.Name())}
		}
	}

	if op.Tag() == ops.TagConst {
		if constOp, ok := op.(ops.ConstOp); ok {
			if err := ops.Typecheck(constOp.Declared, constOp.Value); err != nil {
				return &ValidationError{Kind: ErrConstTypeError, Node: n, Err: err}
			}
		}
	}

	for _, dir := range [...]Direction{Incoming, Outgoing} {
		count := c.h.PortCount(n, dir)
		if !c.h.IsRoot(n) {
			if expected, exact := ops.PortCountBound(op, dir); exact && count != expected {
				return &ValidationError{Kind: ErrWrongNumberOfPorts, Node: n,
					Detail: fmt.Sprintf("%d %s ports, operation declares %d", count, dir, expected)}
			}
		}
		for offset := 0; offset < count; offset++ {
			port := Port{Direction: dir, Offset: offset}
			if err := c.validatePort(n, port, op); err != nil {
				return err
			}
		}
	}

	return c.validateOperation(n, op)
}

func (c *validationContext) validatePort(n Node, port Port, op ops.OpType) error {
	kind, ok := ops.PortKind(op, port)
	if !ok {
		return nil
	}

	if port.Direction == Incoming {
		remote, remotePort, linked := c.h.LinkedPort(n, port)
		if !linked {
			if kind.IsLinear() || kind.Tag == ops.EdgeConst {
				return &ValidationError{Kind: ErrUnconnectedPort, Node: n, Port: port}
			}

			return nil
		}

		return c.validateLink(n, port, kind, remote, remotePort)
	}

	links := c.h.LinkedPorts(n, port)
	if len(links) == 0 {
		if kind.IsLinear() {
			return &ValidationError{Kind: ErrUnconnectedPort, Node: n, Port: port}
		}

		return nil
	}
	if kind.IsLinear() && len(links) > 1 {
		return &ValidationError{Kind: ErrTooManyConnections, Node: n, Port: port,
			Detail: "linear-kind output port fans out to more than one consumer"}
	}
	for _, ep := range links {
		if err := c.validateLink(n, port, kind, ep.Node, ep.Port); err != nil {
			return err
		}
	}

	return nil
}

// validateLink checks one endpoint-to-endpoint link: EdgeKind
// agreement, resource-set agreement, and (when the two nodes sit in
// different regions) inter-graph edge legality.
func (c *validationContext) validateLink(n Node, port Port, kind ops.EdgeKind, remote Node, remotePort Port) error {
	remoteOp := c.h.GetOptype(remote)
	remoteKind, ok := ops.PortKind(remoteOp, remotePort)
	if !ok || !remoteKind.Equal(kind) {
		return &ValidationError{Kind: ErrIncompatiblePorts, Node: n, Other: remote, Port: port,
			Detail: fmt.Sprintf("port kind %s does not match remote port kind", kind)}
	}

	src, srcPort, tgt, tgtPort := n, port, remote, remotePort
	if port.Direction == Incoming {
		src, srcPort, tgt, tgtPort = remote, remotePort, n, port
	}
	if err := c.checkResourcesCompatible(src, srcPort, tgt, tgtPort); err != nil {
		return err
	}

	srcParent, _ := c.h.Parent(src)
	tgtParent, _ := c.h.Parent(tgt)
	if c.h.IsRoot(src) || c.h.IsRoot(tgt) || srcParent == tgtParent {
		return nil
	}

	return c.validateIntergraphEdge(src, srcPort, tgt, tgtPort, kind)
}

func (c *validationContext) checkResourcesCompatible(src Node, srcPort Port, tgt Node, tgtPort Port) error {
	srcRes := c.resources[portKey{src, srcPort}]
	tgtRes := c.resources[portKey{tgt, tgtPort}]
	if srcRes.Equal(tgtRes) {
		return nil
	}
	if srcRes.IsSubsetOf(tgtRes) {
		// The extra requirements reside on the target: a lift node on
		// this edge could repair the mismatch.
		return &ValidationError{Kind: ErrTgtExceedsSrcResources, Node: src, Other: tgt, Port: srcPort,
			Detail: fmt.Sprintf("target resources %s exceed source resources %s", tgtRes, srcRes)}
	}

	return &ValidationError{Kind: ErrSrcExceedsTgtResources, Node: src, Other: tgt, Port: srcPort,
		Detail: fmt.Sprintf("source resources %s exceed target resources %s", srcRes, tgtRes)}
}

func (c *validationContext) validateOperation(n Node, op ops.OpType) error {
	flags := op.ValidityFlags()
	children := c.h.Children(n)

	if len(children) == 0 {
		if flags.RequiresChildren {
			return &ValidationError{Kind: ErrContainerWithoutChildren, Node: n}
		}

		return nil
	}

	if flags.AllowedChildren.IsEmpty() {
		return &ValidationError{Kind: ErrNonContainerWithChildren, Node: n}
	}

	firstOp := c.h.GetOptype(children[0])
	if !flags.AllowedFirstChild.Contains(firstOp.Tag()) {
		return &ValidationError{Kind: ErrInvalidInitialChild, Node: children[0],
			Detail: fmt.Sprintf("%s is not allowed as the first child of %s", firstOp.Tag(), op.Name())}
	}
	lastOp := c.h.GetOptype(children[len(children)-1])
	if !flags.AllowedLastChild.Contains(lastOp.Tag()) {
		return &ValidationError{Kind: ErrInvalidInitialChild, Node: children[len(children)-1],
			Detail: fmt.Sprintf("%s is not allowed as the last child of %s", lastOp.Tag(), op.Name())}
	}

	childInfos := make([]ops.ChildInfo, len(children))
	for i, child := range children {
		childOp := c.h.GetOptype(child)
		if !flags.AllowedChildren.Contains(childOp.Tag()) {
			return &ValidationError{Kind: ErrInvalidChildren, Node: child,
				Detail: fmt.Sprintf("%s is not an allowed child of %s", childOp.Tag(), op.Name())}
		}
		childInfos[i] = ops.ChildInfo{Node: child, Op: childOp}
	}

	if err := op.ValidateChildren(childInfos); err != nil {
		return &ValidationError{Kind: ErrInvalidChildren, Node: n, Err: err}
	}

	if flags.EdgeCheck != nil {
		if err := c.validateChildEdges(children, flags.EdgeCheck); err != nil {
			return err
		}
	}

	if flags.RequiresDAG {
		if err := c.validateChildrenDAG(n, children); err != nil {
			return err
		}
	}

	return nil
}

// validateChildEdges runs a container operation's EdgeCheck over every
// sibling-to-sibling edge among n's children.
func (c *validationContext) validateChildEdges(children []Node, check func(ops.ChildEdgeData) error) error {
	childSet := make(map[Node]struct{}, len(children))
	for _, ch := range children {
		childSet[ch] = struct{}{}
	}

	for _, src := range children {
		srcOp := c.h.GetOptype(src)
		count := c.h.PortCount(src, Outgoing)
		for offset := 0; offset < count; offset++ {
			for _, ep := range c.h.LinkedPorts(src, Out(offset)) {
				if _, ok := childSet[ep.Node]; !ok {
					continue
				}
				data := ops.ChildEdgeData{
					Source: src, Target: ep.Node,
					SourceOp: srcOp, TargetOp: c.h.GetOptype(ep.Node),
					SourcePort: Out(offset), TargetPort: ep.Port,
				}
				if err := check(data); err != nil {
					return &ValidationError{Kind: ErrInvalidEdges, Node: src, Other: ep.Node, Err: err}
				}
			}
		}
	}

	return nil
}
