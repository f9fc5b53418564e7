package objectstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectNameKeepsSimpleExtension(t *testing.T) {
	name := ObjectName(7, "site-visit.PNG")
	assert.True(t, strings.HasPrefix(name, "projects/7/"))
	assert.True(t, strings.HasSuffix(name, ".png"))
}

func TestObjectNameDefaultsWithoutExtension(t *testing.T) {
	assert.True(t, strings.HasSuffix(ObjectName(7, "photo"), ".jpg"))
	assert.True(t, strings.HasSuffix(ObjectName(7, "photo."), ".jpg"))
}

func TestObjectNameRejectsHostileFilenames(t *testing.T) {
	// A crafted filename must not add extra path segments to the key.
	for _, filename := range []string{"a.b/c", "a.../../x", "a.b\\c", "x.j pg"} {
		name := ObjectName(7, filename)
		assert.True(t, strings.HasSuffix(name, ".jpg"), "filename %q gave %q", filename, name)
		assert.Equal(t, 3, strings.Count(name, "/")+1, "filename %q gave %q", filename, name)
	}
}
