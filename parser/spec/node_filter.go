package spec

import "strings"

// Condition decides whether a node matches a search.
type Condition interface {
	Satisfy(n *Node) bool
}

type ConditionFunc func(n *Node) bool

func (f ConditionFunc) Satisfy(n *Node) bool {
	return f(n)
}

// AllCondition matches every node.
type AllCondition struct{}

func (AllCondition) Satisfy(*Node) bool { return true }

// NameCondition matches nodes by tag name, ignoring case.
type NameCondition struct {
	Name string
}

func (c NameCondition) Satisfy(n *Node) bool {
	return n != nil && strings.EqualFold(n.Name(), c.Name)
}

// AttExistsCondition matches nodes carrying the attribute.
type AttExistsCondition struct {
	Attr string
}

func (c AttExistsCondition) Satisfy(n *Node) bool {
	return n != nil && n.HasAttribute(c.Attr)
}

// AttValueCondition matches nodes whose attribute equals Value.
type AttValueCondition struct {
	Attr          string
	Value         string
	CaseSensitive bool
}

func (c AttValueCondition) Satisfy(n *Node) bool {
	if n == nil || !n.HasAttribute(c.Attr) {
		return false
	}
	v := n.GetAttribute(c.Attr)
	if c.CaseSensitive {
		return v == c.Value
	}
	return strings.EqualFold(v, c.Value)
}

// And matches when every condition does.
func And(conds ...Condition) Condition {
	return ConditionFunc(func(n *Node) bool {
		for _, c := range conds {
			if !c.Satisfy(n) {
				return false
			}
		}
		return true
	})
}

// Or matches when any condition does.
func Or(conds ...Condition) Condition {
	return ConditionFunc(func(n *Node) bool {
		for _, c := range conds {
			if c.Satisfy(n) {
				return true
			}
		}
		return false
	})
}

func Not(cond Condition) Condition {
	return ConditionFunc(func(n *Node) bool {
		return !cond.Satisfy(n)
	})
}

// FindElement returns the first element child satisfying cond. When recursive
// is set each child is tested before its own subtree is searched.
func (n *Node) FindElement(cond Condition, recursive bool) *Node {
	if cond == nil {
		return nil
	}
	for _, c := range n.childNodes {
		child, ok := c.(*Node)
		if !ok {
			continue
		}
		if cond.Satisfy(child) {
			return child
		}
		if recursive {
			if inner := child.FindElement(cond, true); inner != nil {
				return inner
			}
		}
	}
	return nil
}

// ElementList returns every element satisfying cond in pre-order.
func (n *Node) ElementList(cond Condition, recursive bool) []*Node {
	var result []*Node
	if cond == nil {
		return result
	}
	n.collectElements(cond, recursive, &result)
	return result
}

func (n *Node) collectElements(cond Condition, recursive bool, result *[]*Node) {
	for _, c := range n.childNodes {
		child, ok := c.(*Node)
		if !ok {
			continue
		}
		if cond.Satisfy(child) {
			*result = append(*result, child)
		}
		if recursive {
			child.collectElements(cond, true, result)
		}
	}
}

func (n *Node) AllElements(recursive bool) []*Node {
	return n.ElementList(AllCondition{}, recursive)
}

func (n *Node) FindElementByName(name string, recursive bool) *Node {
	return n.FindElement(NameCondition{Name: name}, recursive)
}

func (n *Node) ElementListByName(name string, recursive bool) []*Node {
	return n.ElementList(NameCondition{Name: name}, recursive)
}

func (n *Node) FindElementHavingAttribute(attr string, recursive bool) *Node {
	return n.FindElement(AttExistsCondition{Attr: attr}, recursive)
}

func (n *Node) ElementListHavingAttribute(attr string, recursive bool) []*Node {
	return n.ElementList(AttExistsCondition{Attr: attr}, recursive)
}

func (n *Node) FindElementByAttValue(attr, value string, recursive, caseSensitive bool) *Node {
	return n.FindElement(AttValueCondition{Attr: attr, Value: value, CaseSensitive: caseSensitive}, recursive)
}

func (n *Node) ElementListByAttValue(attr, value string, recursive, caseSensitive bool) []*Node {
	return n.ElementList(AttValueCondition{Attr: attr, Value: value, CaseSensitive: caseSensitive}, recursive)
}
