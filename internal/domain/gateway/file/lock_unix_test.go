//go:build unix

package file

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_Serialises(t *testing.T) {
	store := newStore(t)

	release, err := store.Lock()
	require.NoError(t, err)

	var mu sync.Mutex
	var order []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		second, err := store.Lock()
		if !assert.NoError(t, err) {
			return
		}
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
		assert.NoError(t, second())
	}()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	order = append(order, "first")
	mu.Unlock()
	require.NoError(t, release())
	<-done

	assert.Equal(t, []string{"first", "second"}, order)
}
