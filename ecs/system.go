package ecs

// System is one step of a frame. Exported fields of a system struct that
// have an Init(*Storage) method (Query, Singleton, EventReader,
// EventWriter) are bound when the system is registered.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what every system sees during one Scheduler.Once.
type UpdateFrame struct {
	// Number counts frames from 1.
	Number    uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}
