package bookingRepo

import "sync"

// vehicleLocks hands out one mutex per vehicle id so that commits for the same
// vehicle are serialized while commits for different vehicles proceed
// independently.
type vehicleLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newVehicleLocks() *vehicleLocks {
	return &vehicleLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// get returns the mutex for a vehicle id, creating one if it doesn't exist.
func (v *vehicleLocks) get(vehicleID string) *sync.Mutex {
	v.mu.Lock()
	defer v.mu.Unlock()

	l, exists := v.locks[vehicleID]
	if !exists {
		l = &sync.Mutex{}
		v.locks[vehicleID] = l
	}
	return l
}
