package utils

import (
	"testing"

	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.viam.com/test"
)

func TestParallelForEach(t *testing.T) {
	for _, size := range []int{0, 1, 3, ParallelFactor, 4*ParallelFactor + 3} {
		out := make([]int, size)
		calls := atomic.NewInt32(0)
		err := ParallelForEach(size, func(i int) error {
			calls.Inc()
			out[i] = i * i
			return nil
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, int(calls.Load()), test.ShouldEqual, size)
		for i, v := range out {
			test.That(t, v, test.ShouldEqual, i*i)
		}
	}
}

func TestParallelForEachErrors(t *testing.T) {
	errBad := errors.New("bad")
	err := ParallelForEach(20, func(i int) error {
		if i == 7 {
			return errBad
		}
		return nil
	})
	test.That(t, errors.Is(err, errBad), test.ShouldBeTrue)

	err = ParallelForEach(5, func(i int) error {
		if i == 2 {
			panic("boom")
		}
		return nil
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "boom")
}

func TestGroupWorkParallel(t *testing.T) {
	const total = 101
	var covered [total]atomic.Int32
	groups := atomic.NewInt32(0)
	err := GroupWorkParallel(total, func(groupNum, groupSize, from, to int) MemberWorkFunc {
		groups.Inc()
		test.That(t, to-from, test.ShouldEqual, groupSize)
		return func(memberNum, workNum int) error {
			test.That(t, workNum, test.ShouldEqual, from+memberNum)
			covered[workNum].Inc()
			return nil
		}
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, int(groups.Load()), test.ShouldBeLessThanOrEqualTo, ParallelFactor)
	for i := range covered {
		test.That(t, covered[i].Load(), test.ShouldEqual, int32(1))
	}

	// groups may opt out of member work
	err = GroupWorkParallel(total, func(groupNum, groupSize, from, to int) MemberWorkFunc {
		return nil
	})
	test.That(t, err, test.ShouldBeNil)
}
