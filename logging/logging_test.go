package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
	"go.viam.com/test"
)

func TestObservedTestLogger(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	logger.Debugw("computed", "mass", 2.5)
	logger.Sublogger("script").Infof("evaluated %d forms", 3)

	test.That(t, logs.Len(), test.ShouldEqual, 2)
	entries := logs.All()
	test.That(t, entries[0].Message, test.ShouldEqual, "computed")
	test.That(t, entries[0].ContextMap()["mass"], test.ShouldEqual, 2.5)
	test.That(t, entries[1].LoggerName, test.ShouldEqual, "script")
	test.That(t, entries[1].Message, test.ShouldEqual, "evaluated 3 forms")
}

func TestSetLevel(t *testing.T) {
	logger, logs := NewObservedTestLogger(t)
	test.That(t, logger.Level(), test.ShouldEqual, zapcore.DebugLevel)

	logger.SetLevel(zapcore.WarnLevel)
	sub := logger.Sublogger("child")
	test.That(t, sub.Level(), test.ShouldEqual, zapcore.WarnLevel)

	logger.Info("dropped")
	sub.Debug("dropped")
	sub.Warn("kept")
	test.That(t, logs.Len(), test.ShouldEqual, 1)
	test.That(t, logs.FilterMessage("kept").Len(), test.ShouldEqual, 1)
}

func TestLevelFromString(t *testing.T) {
	level, err := LevelFromString("debug")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, zapcore.DebugLevel)

	level, err = LevelFromString("WARN")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, zapcore.WarnLevel)

	_, err = LevelFromString("chatty")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "chatty")
}

func TestGlobal(t *testing.T) {
	orig := Global()
	defer ReplaceGlobal(orig)

	logger := NewTestLogger(t)
	ReplaceGlobal(logger)
	test.That(t, Global(), test.ShouldEqual, logger)

	test.That(t, NewDebugLogger("dbg").Level(), test.ShouldEqual, zapcore.DebugLevel)
	test.That(t, NewLogger("info").Level(), test.ShouldEqual, zapcore.InfoLevel)
}
