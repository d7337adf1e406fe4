package testutil

import "testing"

// Given, When, and Then name the stages of a flow test. They are plain
// t.Run wrappers; the prefixes keep verbose test output reading as a
// scenario.
func Given(t *testing.T, desc string, fn func(t *testing.T)) { stage(t, "Given "+desc, fn) }

func When(t *testing.T, desc string, fn func(t *testing.T)) { stage(t, "When "+desc, fn) }

func Then(t *testing.T, desc string, fn func(t *testing.T)) { stage(t, "Then "+desc, fn) }

func stage(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, fn)
}
