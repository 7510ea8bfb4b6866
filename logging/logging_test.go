package logging

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"Warning", WARN},
		{"error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
		test.That(t, level.AsZap().String(), test.ShouldNotBeEmpty)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, DEBUG.String(), test.ShouldEqual, "DEBUG")
}

func TestObservedLevels(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("building", "primitives", 4)
	test.That(t, logs.FilterMessage("building").Len(), test.ShouldEqual, 1)

	logger.SetLevel(WARN)
	test.That(t, logger.GetLevel(), test.ShouldEqual, WARN)
	logger.Info("dropped")
	logger.Warn("kept")
	test.That(t, logs.FilterMessage("dropped").Len(), test.ShouldEqual, 0)
	test.That(t, logs.FilterMessage("kept").Len(), test.ShouldEqual, 1)
}

func TestSublogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	sub := logger.Sublogger("bvh").Sublogger("build")
	logger.SetLevel(ERROR)

	// sublogger levels are copied, not shared
	sub.Debug("from sub")
	entries := logs.FilterMessage("from sub").All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "bvh.build")
}

func TestBlankLogger(t *testing.T) {
	logger := NewBlankLogger("quiet")
	logger.Errorf("nothing %d", 1)
	test.That(t, logger.Sync(), test.ShouldBeNil)

	prev := Global()
	ReplaceGlobal(logger)
	test.That(t, Global(), test.ShouldEqual, logger)
	ReplaceGlobal(prev)
}

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bvh.log")
	logger := NewFileLogger("bvh", path, INFO)
	logger.Debug("too quiet")
	logger.Infow("built bvh", "nodes", 7)
	test.That(t, logger.Sync(), test.ShouldBeNil)

	data, err := os.ReadFile(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(data), test.ShouldContainSubstring, `"msg":"built bvh"`)
	test.That(t, string(data), test.ShouldContainSubstring, `"nodes":7`)
	test.That(t, string(data), test.ShouldContainSubstring, `"level":"INFO"`)
	test.That(t, string(data), test.ShouldNotContainSubstring, "too quiet")
}
