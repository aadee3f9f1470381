package tasks

// TaskSchedulerInterface is what the application and the admin API need from
// the background worker pool.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
