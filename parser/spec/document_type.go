package spec

// DocumentType is the doctype marker recorded on the document root. It can
// never be added as a child.
type DocumentType struct {
	Name     string
	PublicID string
	SystemID string
}

func NewDocTypeNode(name, pub, sys string) *DocumentType {
	return &DocumentType{
		Name:     name,
		PublicID: pub,
		SystemID: sys,
	}
}

func (d *DocumentType) NodeType() NodeType { return DocumentTypeNode }
func (d *DocumentType) content()           {}
