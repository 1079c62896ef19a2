package hookbind

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_TemplateRegion(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
		err      error
	}{
		{
			name:     "plain",
			src:      "<script></script>\n<template><a/></template>\n<style></style>",
			expected: "<template><a/></template>",
		},
		{
			name:     "attributes",
			src:      `<template lang="html"><a/></template>`,
			expected: `<template lang="html"><a/></template>`,
		},
		{
			name:     "nested",
			src:      "<template><template #a>x</template></template>\n<style/>",
			expected: "<template><template #a>x</template></template>",
		},
		{
			name: "no opening",
			src:  "<templates></template>",
			err:  ErrTemplateNotFound,
		},
		{
			name: "no closing",
			src:  "<template><a/>",
			err:  ErrTemplateNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := Document(tt.src).TemplateRegion()
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err))
				assert.Nil(t, Document(tt.src).Template())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tt.src[start:end])
			assert.Equal(t, tt.expected, string(Document(tt.src).Template()))
		})
	}
}

func TestDocument_Splice(t *testing.T) {
	doc := Document("<template>abc</template>")

	doc.Splice(10, 13, []byte("a longer body"))
	assert.Equal(t, "<template>a longer body</template>", string(doc))

	doc.Splice(10, 23, []byte("x"))
	assert.Equal(t, "<template>x</template>", string(doc))

	doc.Splice(10, 10, nil)
	assert.Equal(t, "<template>x</template>", string(doc))
}
