package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"emailtriage/internal/model"
)

func TestKeyNormalizesWhitespace(t *testing.T) {
	a := Key("Obrigado   pela\n ajuda ")
	b := Key("Obrigado pela ajuda")

	assert.Equal(t, a, b)
	assert.Contains(t, a, "classify:")
}

func TestKeyDistinctTexts(t *testing.T) {
	assert.NotEqual(t, Key("texto um"), Key("texto dois"))
}

func TestNewWithoutAddrDisablesCache(t *testing.T) {
	assert.Nil(t, New("", "", 0, time.Hour, zap.NewNop()))
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *ResultCache

	_, ok := c.Get(context.Background(), "qualquer texto")
	assert.False(t, ok)

	// must not panic
	c.Set(context.Background(), "qualquer texto", Entry{
		Classification: model.Classification{Category: model.CategoryProductive},
	})
}
