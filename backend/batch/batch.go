// Package batch runs independent sub-circuit synthesis jobs with a
// deterministic constraint order.
//
// Constraint indices are part of the publicly verifiable circuit structure,
// so constraints cannot be merged first-come-first-served from worker
// goroutines. Instead each job is split in two phases: Prepare performs the
// expensive witness computation and may run in parallel with other jobs;
// Synthesize emits variables and constraints and always runs serially, in the
// order the jobs were submitted. Scheduling therefore never influences the
// resulting layout.
package batch

import (
	"fmt"
	"runtime"

	"github.com/peeraphut5053/franklin-crypto/frontend"
	"golang.org/x/sync/errgroup"
)

// Job is one independent unit of circuit synthesis.
type Job interface {
	// Prepare computes witness material without touching the constraint
	// system. It may run concurrently with other jobs' Prepare.
	Prepare() error

	// Synthesize emits the job's variables and constraints. It is called
	// serially, in submission order, after every Prepare has returned.
	Synthesize(cs frontend.ConstraintSystem) error
}

type funcJob struct {
	prepare    func() error
	synthesize func(cs frontend.ConstraintSystem) error
}

func (j funcJob) Prepare() error {
	if j.prepare == nil {
		return nil
	}
	return j.prepare()
}

func (j funcJob) Synthesize(cs frontend.ConstraintSystem) error {
	return j.synthesize(cs)
}

// New builds a Job from a prepare func (may be nil) and a synthesize func.
func New(prepare func() error, synthesize func(cs frontend.ConstraintSystem) error) Job {
	return funcJob{prepare: prepare, synthesize: synthesize}
}

// Run executes all jobs against cs. Prepare phases run in parallel, bounded
// by GOMAXPROCS; Synthesize phases run serially in submission order. The
// first error aborts the run — partial circuits are never reused.
func Run(cs frontend.ConstraintSystem, jobs ...Job) error {
	g := new(errgroup.Group)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range jobs {
		job := jobs[i]
		g.Go(job.Prepare)
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("batch prepare: %w", err)
	}

	for i, job := range jobs {
		if err := job.Synthesize(cs); err != nil {
			return fmt.Errorf("batch synthesize job %d: %w", i, err)
		}
	}
	return nil
}
