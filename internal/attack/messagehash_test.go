package attack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kryvavyipotii/ripemd160attack/internal/attack"
	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
)

func TestCollidesWithRequiresDifferentMessages(t *testing.T) {
	h := digest.New()
	a := attack.NewMessageHash(h, "same", 1)
	b := attack.NewMessageHash(h, "same", 2)
	assert.False(t, a.CollidesWith(b, 0), "identical messages must never be reported as a collision")
}

func TestCollidesWithUnderFullWidthRequiresEqualHash(t *testing.T) {
	h := digest.New()
	a := attack.NewMessageHash(h, "alpha", 0)
	b := attack.NewMessageHash(h, "beta", 0)
	assert.False(t, a.CollidesWith(b, digest.Size))
}

func TestCollidesWithZeroWidthAlwaysTrueForDistinctMessages(t *testing.T) {
	h := digest.New()
	a := attack.NewMessageHash(h, "alpha", 0)
	b := attack.NewMessageHash(h, "beta", 0)
	assert.True(t, a.CollidesWith(b, 0))
}
