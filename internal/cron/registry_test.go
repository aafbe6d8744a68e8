package cron

import (
	"context"
	"strings"
	"testing"
)

type namedJob struct {
	name string
}

func (n *namedJob) Name() string              { return n.name }
func (n *namedJob) Run(context.Context) error { return nil }

func mustRegistry(t *testing.T, jobs ...Job) *Registry {
	t.Helper()
	registry, err := NewRegistry(jobs...)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	return registry
}

func TestRegistryKeepsRegistrationOrder(t *testing.T) {
	snapshot := &namedJob{name: "mrr-snapshot"}
	expiry := &namedJob{name: "round-expiry"}
	registry := mustRegistry(t, snapshot, nil, expiry)

	jobs := registry.Jobs()
	if len(jobs) != 2 || jobs[0] != snapshot || jobs[1] != expiry {
		t.Fatalf("unexpected jobs %v", registry.Names())
	}
	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

func TestRegistryRejectsDuplicateAndBlankNames(t *testing.T) {
	if _, err := NewRegistry(&namedJob{name: "round-expiry"}, &namedJob{name: "round-expiry"}); err == nil {
		t.Fatal("expected duplicate job name to be rejected")
	}
	registry := mustRegistry(t)
	if err := registry.Register(&namedJob{name: "  "}); err == nil {
		t.Fatal("expected blank job name to be rejected")
	}
	if len(registry.Jobs()) != 0 {
		t.Fatalf("rejected jobs must not be stored")
	}
}

func TestRegistrySelect(t *testing.T) {
	registry := mustRegistry(t, &namedJob{name: "mrr-snapshot"}, &namedJob{name: "round-expiry"})

	all, err := registry.Select(nil)
	if err != nil {
		t.Fatalf("select all: %v", err)
	}
	if got := strings.Join(all.Names(), ","); got != "mrr-snapshot,round-expiry" {
		t.Fatalf("unexpected selection %q", got)
	}

	only, err := registry.Select([]string{" round-expiry ", ""})
	if err != nil {
		t.Fatalf("select one: %v", err)
	}
	if got := strings.Join(only.Names(), ","); got != "round-expiry" {
		t.Fatalf("unexpected selection %q", got)
	}

	_, err = registry.Select([]string{"round-expiry", "stripe-sync"})
	if err == nil || !strings.Contains(err.Error(), "stripe-sync") {
		t.Fatalf("expected unknown job error, got %v", err)
	}
}
