package testkit

import (
	"sync"
	"testing"
)

var seamTarget = func() string { return "real" }

func TestSwapRestores(t *testing.T) {
	t.Run("swapped", func(t *testing.T) {
		Swap(t, &seamTarget, func() string { return "fake" })
		if seamTarget() != "fake" {
			t.Fatal("expected swapped seam")
		}
	})
	if seamTarget() != "real" {
		t.Fatal("expected seam restored after subtest")
	}
}

func TestCaptureLog_Concurrent(t *testing.T) {
	log, buf := CaptureLog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			log.Warn().Int("i", i).Msg("concurrent")
		}(i)
	}
	wg.Wait()
	MustContain(t, buf.String(), `"level":"warn"`)
	MustNotContain(t, buf.String(), `"level":"error"`)
	MustNotPanic(t, func() { _ = buf.String() })
	MustPanic(t, func() { panic("x") })
}
