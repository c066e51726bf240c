package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyMutexSerializesSamePair(t *testing.T) {
	locks := NewKeyMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock(1, 10)
			defer locks.Unlock(1, 10)
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestKeyMutexDistinctPairsDoNotBlock(t *testing.T) {
	locks := NewKeyMutex()

	locks.Lock(1, 10)
	defer locks.Unlock(1, 10)

	done := make(chan struct{})
	go func() {
		locks.Lock(1, 20)
		locks.Unlock(1, 20)
		locks.Lock(2, 10)
		locks.Unlock(2, 10)
		close(done)
	}()

	<-done
}

func TestKeyMutexReusesLockPerPair(t *testing.T) {
	locks := NewKeyMutex()

	first := locks.pair(1, 10)
	second := locks.pair(1, 10)
	assert.Same(t, first, second)

	other := locks.pair(10, 1)
	assert.NotSame(t, first, other)
}
