package core

import "fmt"

// Owners holds whatever object claimed each id slot. Resource names are
// scoped by these ids, so a released slot may be reused by a later window.
var Owners []interface{}

func AcquireID(owner interface{}) uint32 {
	if len(Owners) == 0 {
		Owners = make([]interface{}, 8)
	}
	length := uint32(len(Owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if Owners[i] == nil {
			Owners[i] = owner
			return i
		}
	}

	// No free slot, push a new one. The id is the new length - 1.
	Owners = append(Owners, owner)
	return uint32(len(Owners)) - 1
}

func ReleaseID(id uint32) error {
	length := uint32(len(Owners))
	if length == 0 {
		return fmt.Errorf("ReleaseID called before any id was acquired. Nothing was done")
	}
	if id >= length {
		return fmt.Errorf("ReleaseID: id '%d' out of range (max=%d). Nothing was done", id, length-1)
	}
	Owners[id] = nil
	return nil
}
