package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQueryCacheKey(t *testing.T) {
	a := GenerateQueryCacheKey(PropertyListPrefix, map[string]string{"type": "House", "sort": "price"})
	b := GenerateQueryCacheKey(PropertyListPrefix, map[string]string{"sort": "price", "type": "House"})
	c := GenerateQueryCacheKey(PropertyListPrefix, map[string]string{"type": "Villa", "sort": "price"})

	assert.Equal(t, a, b, "parameter order does not change the key")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, PropertyListPrefix+":"))
	assert.Len(t, strings.TrimPrefix(a, PropertyListPrefix+":"), 32)
}

func TestGenerateQueryCacheKeyWithoutParams(t *testing.T) {
	// md5 of the empty string
	assert.Equal(t, PropertyListPrefix+":d41d8cd98f00b204e9800998ecf8427e", GenerateQueryCacheKey(PropertyListPrefix, nil))
}
