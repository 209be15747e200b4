package spec

// Comment holds the text between <!-- and -->.
type Comment struct {
	CharacterData
}

// NewComment returns a comment node with its Data section filled.
func NewComment(data string) *Comment {
	return &Comment{CharacterData: CharacterData{Data: data}}
}

func (c *Comment) NodeType() NodeType { return CommentNode }
func (c *Comment) content()           {}
