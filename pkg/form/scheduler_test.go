package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/form"
)

func TestDeferred(t *testing.T) {
	t.Parallel()

	t.Run("wait runs after the delay", func(t *testing.T) {
		var d form.Deferred
		ran := false
		d.AfterFunc(5*time.Millisecond, func() { ran = true })
		require.True(t, d.Pending())

		start := time.Now()
		require.NoError(t, d.Wait(context.Background()))
		assert.True(t, ran)
		assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
		assert.False(t, d.Pending())
	})

	t.Run("cancelled context drops the callback", func(t *testing.T) {
		var d form.Deferred
		ran := false
		d.AfterFunc(time.Hour, func() { ran = true })

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := d.Wait(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, ran)
		assert.False(t, d.Pending())
	})

	t.Run("nothing pending", func(t *testing.T) {
		var d form.Deferred
		assert.NoError(t, d.Wait(context.Background()))
		d.RunNow()
	})

	t.Run("latest schedule wins", func(t *testing.T) {
		var d form.Deferred
		calls := []string{}
		d.AfterFunc(time.Second, func() { calls = append(calls, "first") })
		d.AfterFunc(time.Second, func() { calls = append(calls, "second") })
		d.RunNow()
		assert.Equal(t, []string{"second"}, calls)
	})
}
