package spec

// NodeList is an ordered child sequence.
type NodeList []Content

// Contains returns the index of c in the list or -1. Entries are compared by
// identity.
func (h *NodeList) Contains(c Content) int {
	for i := range *h {
		if c == (*h)[i] {
			return i
		}
	}
	return -1
}

func (h *NodeList) Remove(i int) Content {
	if i < 0 {
		return nil
	}
	if i >= len(*h) {
		return nil
	}
	c := (*h)[i]
	*h = append((*h)[:i], (*h)[i+1:]...)
	return c
}

func (h *NodeList) WedgeIn(i int, c Content) {
	if i < 0 {
		return
	}
	if i >= len(*h) {
		*h = append(*h, c)
		return
	}
	*h = append((*h)[:i+1], (*h)[i:]...)
	(*h)[i] = c
}

// StackOfOpenElements is the path from the document root (index 0) to the
// current insertion point.
type StackOfOpenElements []*Node

func (s *StackOfOpenElements) Push(n *Node) {
	*s = append(*s, n)
}

// Pop removes the top element. It returns nil when the stack is empty.
func (s *StackOfOpenElements) Pop() *Node {
	if len(*s) == 0 {
		return nil
	}
	popped := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return popped
}

// Top returns the most recently pushed element, or nil.
func (s *StackOfOpenElements) Top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}

// LastIndexFunc returns the index of the top-most element satisfying f, or -1.
// Index 0 is never reported when skipRoot is set.
func (s *StackOfOpenElements) LastIndexFunc(f func(*Node) bool, skipRoot bool) int {
	low := 0
	if skipRoot {
		low = 1
	}
	for i := len(*s) - 1; i >= low; i-- {
		if f((*s)[i]) {
			return i
		}
	}
	return -1
}
