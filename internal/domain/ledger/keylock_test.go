package ledger_test

import (
	"sync"
	"testing"

	"github.com/ellavondegurechaff/engagebot/internal/domain/ledger"
)

func TestKeyedMutex(t *testing.T) {
	km := ledger.NewKeyedMutex()

	var (
		wg      sync.WaitGroup
		counter = map[string]int{}
		guard   sync.Mutex
	)
	for i := 0; i < 50; i++ {
		for _, key := range []string{"a", "b"} {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				unlock := km.Lock(key)
				defer unlock()

				guard.Lock()
				v := counter[key]
				guard.Unlock()

				guard.Lock()
				counter[key] = v + 1
				guard.Unlock()
			}(key)
		}
	}
	wg.Wait()

	if counter["a"] != 50 || counter["b"] != 50 {
		t.Errorf("lost updates: %v", counter)
	}
	if n := km.Len(); n != 0 {
		t.Errorf("KeyedMutex.Len() = %d after all unlocks, want 0", n)
	}
}
