package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"go.viam.com/test"
)

// assertLogMatches will fuzzy match log lines. Notably, this checks the time format, but ignores
// the exact time. And it expects a match on the filename, but the exact line number can be wrong.
func assertLogMatches(t *testing.T, actual *bytes.Buffer, expected string) {
	t.Helper()

	output, err := actual.ReadString('\n')
	test.That(t, err, test.ShouldBeNil)

	actualTrimmed := strings.TrimSuffix(output, "\n")
	actualParts := strings.Split(actualTrimmed, "\t")
	expectedParts := strings.Split(expected, "\t")
	// Use the length of the first string as a weak verification of checking that the result looks like a date.
	test.That(t, len(actualParts[0]), test.ShouldEqual, len(expectedParts[0]))
	// Log level.
	test.That(t, actualParts[1], test.ShouldEqual, expectedParts[1])
	// Logger name.
	test.That(t, actualParts[2], test.ShouldEqual, expectedParts[2])

	// Filename:line_number.
	actualFilename, actualLineNumber, found := strings.Cut(actualParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	expectedFilename, _, found := strings.Cut(expectedParts[3], ":")
	test.That(t, found, test.ShouldBeTrue)
	test.That(t, actualFilename, test.ShouldEqual, expectedFilename)
	_, err = strconv.Atoi(actualLineNumber)
	test.That(t, err, test.ShouldBeNil)

	// Log message.
	test.That(t, actualParts[4], test.ShouldEqual, expectedParts[4])

	test.That(t, len(actualParts), test.ShouldEqual, len(expectedParts))
	if len(actualParts) == 5 {
		return
	}

	expectedMap := make(map[string]any)
	err = json.Unmarshal([]byte(expectedParts[5]), &expectedMap)
	test.That(t, err, test.ShouldBeNil)

	actualMap := make(map[string]any)
	err = json.Unmarshal([]byte(actualParts[5]), &actualMap)
	test.That(t, err, test.ShouldBeNil)

	test.That(t, actualMap, test.ShouldResemble, expectedMap)
}

func TestConsoleOutputFormat(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newImpl("impl", DEBUG, true, NewWriterAppender(notStdout))

	logger.Info("impl Info log")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	INFO	impl	logging/impl_test.go:85	impl Info log`)

	logger.Debugf("impl %s log", "Debugf")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	DEBUG	impl	logging/impl_test.go:89	impl Debugf log`)

	logger.Warnw("impl logw", "key", "value", "boxTests", 3)
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	WARN	impl	logging/impl_test.go:93	impl logw	{"key":"value","boxTests":3}`)

	logger.Errorw("unpaired", "key")
	assertLogMatches(t, notStdout,
		`2023-10-30T09:12:09.459Z	ERROR	impl	logging/impl_test.go:97	unpaired	{"key":"unpaired log key"}`)
}

func TestLevels(t *testing.T) {
	notStdout := &bytes.Buffer{}
	logger := newImpl("levels", WARN, true, NewWriterAppender(notStdout))

	logger.Debug("dropped")
	logger.Info("dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)

	logger.Warn("kept")
	test.That(t, notStdout.Len(), test.ShouldBeGreaterThan, 0)

	notStdout.Reset()
	logger.CDebug(context.Background(), "dropped")
	test.That(t, notStdout.Len(), test.ShouldEqual, 0)
	logger.CDebugw(EnableDebugMode(context.Background()), "kept", "key", 1)
	test.That(t, notStdout.Len(), test.ShouldBeGreaterThan, 0)

	logger.SetLevel(ERROR)
	test.That(t, logger.GetLevel(), test.ShouldEqual, ERROR)
}

func TestLevelFromString(t *testing.T) {
	for _, tc := range []struct {
		in       string
		expected Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warning", WARN},
		{"Error", ERROR},
	} {
		level, err := LevelFromString(tc.in)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, level, test.ShouldEqual, tc.expected)
	}

	_, err := LevelFromString("loud")
	test.That(t, err, test.ShouldNotBeNil)

	var level Level
	test.That(t, json.Unmarshal([]byte(`"warn"`), &level), test.ShouldBeNil)
	test.That(t, level, test.ShouldEqual, WARN)
	out, err := json.Marshal(INFO)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(out), test.ShouldEqual, `"info"`)
}

func TestSublogger(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("obbtree").Sublogger("build")
	sub.Infow("built", "leaves", 4)

	entries := observed.All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "obbtree.build")
	test.That(t, entries[0].Message, test.ShouldEqual, "built")
	test.That(t, entries[0].ContextMap()["leaves"], test.ShouldEqual, int64(4))
}

func TestAsZap(t *testing.T) {
	logger, observed := NewObservedTestLogger(t)
	sub := logger.Sublogger("collision")
	sub.SetLevel(INFO)

	zl := sub.AsZap()
	zl.Debugw("dropped")
	zl.With("role", 1).Infow("kept", "contacts", 3)

	entries := observed.All()
	test.That(t, len(entries), test.ShouldEqual, 1)
	test.That(t, entries[0].LoggerName, test.ShouldEqual, "collision")
	test.That(t, entries[0].ContextMap(), test.ShouldResemble, map[string]interface{}{"role": int64(1), "contacts": int64(3)})
	test.That(t, logger.Sync(), test.ShouldBeNil)
}
