// Package utils contains the worker pool and grid mesh helpers shared by the module.
package utils

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

type (
	// MemberWorkFunc runs for each work item (member) of a group.
	MemberWorkFunc func(memberNum, workNum int) error
	// GroupWorkFunc runs to determine what work members should do, if any.
	GroupWorkFunc func(groupNum, groupSize, from, to int) MemberWorkFunc
)

// GroupWorkParallel splits totalSize work items into contiguous groups, one per worker, and runs them
// concurrently. A group stops at its first failing member; errors and panics from all groups are
// combined into the returned error.
func GroupWorkParallel(totalSize int, groupWork GroupWorkFunc) error {
	if totalSize <= 0 {
		return nil
	}
	numGroups := ParallelFactor
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	var (
		wait    sync.WaitGroup
		errMu   sync.Mutex
		allErrs error
	)
	storeError := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		allErrs = multierr.Combine(allErrs, err)
	}

	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		groupNumCopy := groupNum
		goutils.PanicCapturingGo(func() {
			defer wait.Done()
			defer func() {
				if thePanic := recover(); thePanic != nil {
					storeError(fmt.Errorf("got panic running group %d in parallel: %v", groupNumCopy, thePanic))
				}
			}()

			thisGroupSize := groupSize
			if groupNumCopy == numGroups-1 {
				thisGroupSize += extra
			}
			from := groupSize * groupNumCopy
			to := from + thisGroupSize
			memberWork := groupWork(groupNumCopy, thisGroupSize, from, to)
			if memberWork == nil {
				return
			}
			memberNum := 0
			for workNum := from; workNum < to; workNum++ {
				if err := memberWork(memberNum, workNum); err != nil {
					storeError(err)
					return
				}
				memberNum++
			}
		})
	}
	wait.Wait()
	return allErrs
}

// ParallelForEach calls f for every index in [0, totalSize) across ParallelFactor workers. Calls are
// unordered; f must only write state owned by its index.
func ParallelForEach(totalSize int, f func(i int) error) error {
	return GroupWorkParallel(totalSize, func(groupNum, groupSize, from, to int) MemberWorkFunc {
		return func(memberNum, workNum int) error {
			return f(workNum)
		}
	})
}
