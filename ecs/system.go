package ecs

// System is one step of a frame. Exported ecs.Query and ecs.Singleton fields
// are wired by Scheduler.Register; any other fields keep their values between
// frames.
type System interface {
	Execute(frame *UpdateFrame)
}
