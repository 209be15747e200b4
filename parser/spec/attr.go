package spec

// Attr is a single name/value pair. Name keeps the casing the attribute was
// first set with.
type Attr struct {
	Name  string
	Value string
}
