package spec

// CharacterData is the payload shared by text and comment leaves.
type CharacterData struct {
	Data string
}

func (c *CharacterData) Length() int {
	return len(c.Data)
}

func (c *CharacterData) AppendData(data string) {
	c.Data += data
}
