package cron

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Job is one unit of scheduled marketplace maintenance, such as the MRR
// snapshot or round expiry sweep.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a cycle runs, in registration order. Job names are
// unique because they label metrics and log lines.
type Registry struct {
	jobs []Job
}

// NewRegistry registers the given jobs, skipping nil entries.
func NewRegistry(jobs ...Job) (*Registry, error) {
	registry := &Registry{}
	for _, job := range jobs {
		if job == nil {
			continue
		}
		if err := registry.Register(job); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register appends a job. Blank and duplicate names are rejected.
func (r *Registry) Register(job Job) error {
	if job == nil {
		return nil
	}
	name := strings.TrimSpace(job.Name())
	if name == "" {
		return fmt.Errorf("cron job name is required")
	}
	if r.lookup(name) != nil {
		return fmt.Errorf("cron job %q already registered", name)
	}
	r.jobs = append(r.jobs, job)
	return nil
}

// Jobs returns a copy of the registered jobs.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}

// Names lists registered job names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for _, job := range r.jobs {
		names = append(names, job.Name())
	}
	return names
}

// Select narrows the registry to the named jobs, keeping registration order.
// An empty selection returns every job.
func (r *Registry) Select(names []string) (*Registry, error) {
	wanted := map[string]bool{}
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			wanted[name] = true
		}
	}
	if len(wanted) == 0 {
		return &Registry{jobs: r.Jobs()}, nil
	}

	var unknown []string
	for name := range wanted {
		if r.lookup(name) == nil {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown cron jobs %s (registered: %s)",
			strings.Join(unknown, ", "), strings.Join(r.Names(), ", "))
	}

	selected := &Registry{}
	for _, job := range r.jobs {
		if wanted[job.Name()] {
			selected.jobs = append(selected.jobs, job)
		}
	}
	return selected, nil
}

func (r *Registry) lookup(name string) Job {
	for _, job := range r.jobs {
		if job.Name() == name {
			return job
		}
	}
	return nil
}
