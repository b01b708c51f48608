package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolvesByExtension(t *testing.T) {
	registry := DefaultRegistry()

	for _, name := range []string{"report.txt", "NOTES.MD", "data.csv", "filing.pdf"} {
		_, ok := registry.For(name)
		assert.True(t, ok, "expected a parser for %s", name)
	}

	_, ok := registry.For("deck.pptx")
	assert.False(t, ok)
	_, ok = registry.For("no_extension")
	assert.False(t, ok)
}

func TestPlaintextParser(t *testing.T) {
	p := NewPlaintextParser()

	text, err := p.Parse("a.txt", []byte("  Q3 revenue was $15,000.\n"))
	require.NoError(t, err)
	assert.Equal(t, "Q3 revenue was $15,000.", text)

	_, err = p.Parse("empty.txt", []byte("   \n\t"))
	assert.Error(t, err)

	_, err = p.Parse("bin.txt", []byte{0xff, 0xfe, 0x00})
	assert.Error(t, err)
}

func TestCSVParser_JoinsRowsAndFields(t *testing.T) {
	p := NewCSVParser()

	text, err := p.Parse("campaigns.csv", []byte("campaign,ctr\nspring,4.2\nfall,3.1\n"))
	require.NoError(t, err)
	assert.Equal(t, "campaign, ctr\nspring, 4.2\nfall, 3.1", text)
}

func TestCSVParser_RaggedRows(t *testing.T) {
	p := NewCSVParser()

	text, err := p.Parse("ragged.csv", []byte("a,b,c\nd,e\n"))
	require.NoError(t, err)
	assert.Equal(t, "a, b, c\nd, e", text)
}

func TestPDFParser_RejectsGarbage(t *testing.T) {
	p := NewPDFParser()

	_, err := p.Parse("broken.pdf", []byte("this is not a pdf"))
	assert.Error(t, err)
}
