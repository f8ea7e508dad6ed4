package soap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedNode struct {
	nodeType  NodeType
	localName string
	value     string
	depth     int
}

func readAllNodes(r *Reader) []expectedNode {
	var nodes []expectedNode
	for !r.EOF() {
		nodes = append(nodes, expectedNode{r.NodeType(), r.LocalName(), r.Value(), r.Depth()})
		r.Read()
	}
	return nodes
}

func TestReaderVisitsNodesInDocumentOrder(t *testing.T) {
	r, err := NewReaderFromBytes([]byte(`<w xmlns="urn:w">
  <a>1</a>
  <b/>
</w>`))
	require.NoError(t, err)

	assert.Equal(t, []expectedNode{
		{NodeElement, "w", "", 0},
		{NodeElement, "a", "", 1},
		{NodeText, "", "1", 2},
		{NodeEndElement, "a", "", 1},
		{NodeElement, "b", "", 1},
		{NodeEndElement, "b", "", 1},
		{NodeEndElement, "w", "", 0},
	}, readAllNodes(r))
	assert.False(t, r.Read())
	assert.Equal(t, NodeNone, r.NodeType())
}

func TestReaderResolvesNamespaces(t *testing.T) {
	r, err := NewReaderFromBytes([]byte(`<p:w xmlns:p="urn:p"><c xmlns="urn:c">x</c></p:w>`))
	require.NoError(t, err)

	assert.True(t, r.IsStartElementNamed("w", "urn:p"))
	r.Read()
	assert.True(t, r.IsStartElementNamed("c", "urn:c"))
	assert.False(t, r.IsStartElementNamed("c", "urn:p"))
}

func TestReadElementContentAsString(t *testing.T) {
	r, err := NewReaderFromBytes([]byte(`<w><a>hello</a><b>world</b></w>`))
	require.NoError(t, err)
	require.NoError(t, r.ReadStartElement())

	s, err := r.ReadElementContentAsString()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
	assert.Equal(t, "b", r.LocalName())

	s, err = r.ReadElementContentAsString()
	require.NoError(t, err)
	assert.Equal(t, "world", s)
	require.NoError(t, r.ReadEndElement())
	assert.True(t, r.EOF())
}

func TestReaderErrorsOnUnexpectedNode(t *testing.T) {
	r, err := NewReaderFromBytes([]byte(`<w><a>1</a></w>`))
	require.NoError(t, err)

	err = r.ReadEndElement()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected EndElement node but found Element node \"w\"")

	for r.Read() {
	}
	err = r.ReadStartElement()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end of the content")
}

func TestNewReaderFromBytesRejectsMalformedXML(t *testing.T) {
	_, err := NewReaderFromBytes([]byte(`<w><a></w>`))
	assert.Error(t, err)

	_, err = NewReaderFromBytes([]byte(``))
	assert.Error(t, err)
}
