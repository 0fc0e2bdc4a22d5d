package cron

import (
	"context"
	"sync"

	"procure.GO/core/registry"
)

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// Job holds schedule and run function. The schedule is resolved when the
// scheduler starts so jobs may read configuration loaded after init.
type Job struct {
	schedule func() string
	Run      JobFunc
}

// Schedule returns the cron expression of the job.
func (j Job) Schedule() string { return j.schedule() }

var mu sync.Mutex

// Register adds a cron job with a fixed schedule. Call from init(). Panics if registry is locked.
func Register(name string, schedule string, run JobFunc) {
	RegisterFunc(name, func() string { return schedule }, run)
}

// RegisterFunc adds a cron job whose schedule is read at scheduler start.
func RegisterFunc(name string, schedule func() string, run JobFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		panic("cron/registry: locked (register only during init before StartCron)")
	}
	jobs := getJobs()
	if _, ok := jobs[name]; ok {
		panic("cron/registry: duplicate job " + name)
	}
	jobs[name] = Job{schedule: schedule, Run: run}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

// Unregister removes a job (for tests).
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCron)
	jobs := getJobs()
	delete(jobs, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCron, jobs)
}

func getJobs() map[string]Job {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCron); ok && v != nil {
		return v.(map[string]Job)
	}
	return make(map[string]Job)
}

// Jobs returns a copy of all registered jobs and locks the registry.
func Jobs() map[string]Job {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]Job)
	for k, v := range getJobs() {
		out[k] = v
	}
	if !registry.GlobalRegistry.IsLocked(registry.KeyRegistryCron) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryCron)
	}
	return out
}
