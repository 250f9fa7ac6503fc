package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTag(t *testing.T) {
	for _, tag := range []Tag{TagContainer, TagSubContainer} {
		parsed, err := ParseTag(tag.String())
		require.NoError(t, err)
		assert.Equal(t, tag, parsed)
	}

	assert.Equal(t, "Container", TagContainer.String())
	assert.Equal(t, "Sub-container", TagSubContainer.String())
	assert.Equal(t, "Tag(0)", Tag(0).String())

	_, err := ParseTag("container")
	assert.Error(t, err)
}

func TestRecordRow(t *testing.T) {
	r := Record{Tag: TagSubContainer, ShortName: "CanController", DefinitionRef: "/Can/CanConfigSet/CanController"}
	assert.Equal(t, []string{"Sub-container", "CanController", "/Can/CanConfigSet/CanController"}, r.Row())
	assert.Equal(t, []string{"Tag", "Short Name", "Definition Ref"}, Headers())
}
