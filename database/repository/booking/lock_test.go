package bookingRepo

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVehicleLocksReturnsSameMutexPerKey(t *testing.T) {
	locks := newVehicleLocks()

	a := locks.get("veh-1")
	b := locks.get("veh-1")
	require.Same(t, a, b)

	other := locks.get("veh-2")
	require.NotSame(t, a, other)
}

func TestVehicleLocksSerializeSameKey(t *testing.T) {
	locks := newVehicleLocks()

	const workers = 64
	var counter int
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l := locks.get("veh-1")
			l.Lock()
			counter++
			l.Unlock()
		}()
	}
	wg.Wait()

	require.Equal(t, workers, counter)
}

func TestVehicleLocksIndependentAcrossKeys(t *testing.T) {
	locks := newVehicleLocks()

	// Holding one vehicle's lock must not block another vehicle's commits.
	locks.get("veh-1").Lock()
	defer locks.get("veh-1").Unlock()

	done := make(chan struct{})
	go func() {
		l := locks.get("veh-2")
		l.Lock()
		l.Unlock()
		close(done)
	}()
	<-done
}

func TestVehicleLocksConcurrentGetRace(t *testing.T) {
	locks := newVehicleLocks()

	const workers = 32
	results := make([]*sync.Mutex, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = locks.get("veh-1")
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.Same(t, results[0], results[i])
	}
}
