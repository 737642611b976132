package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLimitOffset(t *testing.T) {
	cases := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, defaultPageLimit, 0},
		{-5, -1, defaultPageLimit, 0},
		{20, 40, 20, 40},
		{10_000, 3, maxPageLimit, 3},
	}
	for _, tc := range cases {
		l, o := sanitizeLimitOffset(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, l)
		assert.Equal(t, tc.wantOffset, o)
	}
}

func TestNilPool(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewTxManager(nil).WithinTx(ctx, func(context.Context) error { return nil }))
	assert.Error(t, NewPinger(nil).Ping(ctx))
	_, err := NewMatchRepository(nil).GetByID(ctx, "x")
	assert.Error(t, err)
	_, err = NewCommandRepository(nil).ListByMatch(ctx, "x")
	assert.Error(t, err)
}
