package attack_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryvavyipotii/ripemd160attack/internal/attack"
	"github.com/kryvavyipotii/ripemd160attack/internal/digest"
)

func TestBirthdayCollisionDetection(t *testing.T) {
	state := newSeqState("Another big message")
	params := attack.BirthdayParams{
		HashSize:     2,
		Probability:  0.95,
		VerboseTries: 10,
		Threads:      2,
	}

	result := attack.RunBirthday(context.Background(), state, params, nil)

	require.Equal(t, attack.CollisionSuccess, result.Kind)
	assert.NotEqual(t, result.FirstHash.Message, result.SecondHash.Message)
	assert.True(t, result.FirstHash.Hash.EqualUnder(result.SecondHash.Hash, params.HashSize))
}

func TestCollidesWithIgnoresIdenticalMessageDuplicates(t *testing.T) {
	h := digest.New()
	a := attack.NewMessageHash(h, "dup", 1)
	b := attack.NewMessageHash(h, "dup", 2)
	assert.False(t, a.CollidesWith(b, 0))
}

func TestBirthdayCancellationLiveness(t *testing.T) {
	state := newSeqState("Another big message")
	params := attack.BirthdayParams{
		HashSize:     8, // budget far too large to complete
		Probability:  0.99,
		VerboseTries: 0,
		Threads:      4,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := attack.RunBirthday(ctx, state, params, nil)
	assert.Equal(t, attack.GeneralFailure, result.Kind)
	assert.Equal(t, "Attack terminated", result.Reason)
}
