package measure

import (
	"testing"
	"time"
)

func TestCounter(t *testing.T) {
	old := Enabled
	Enabled = true
	defer func() { Enabled = old }()

	c := Counter{M: make(map[string]int64)}
	c.Add("bytes", 100)
	c.Add("bytes", 28)
	c.AddDuration("elapsed_ns", 2*time.Millisecond)

	snap := c.SnapshotAndReset()
	if snap["bytes"] != 128 {
		t.Fatalf("bytes = %d want 128", snap["bytes"])
	}
	if snap["elapsed_ns"] != int64(2*time.Millisecond) {
		t.Fatalf("elapsed_ns = %d", snap["elapsed_ns"])
	}
	if got := c.SnapshotAndReset(); len(got) != 0 {
		t.Fatalf("counter not reset: %v", got)
	}
}

func TestCounterDisabled(t *testing.T) {
	old := Enabled
	Enabled = false
	defer func() { Enabled = old }()

	c := Counter{M: make(map[string]int64)}
	c.Add("bytes", 100)
	if got := c.SnapshotAndReset(); len(got) != 0 {
		t.Fatalf("disabled counter recorded: %v", got)
	}
}

func TestTime(t *testing.T) {
	old := Enabled
	Enabled = true
	defer func() { Enabled = old }()
	Global.SnapshotAndReset()

	ran := false
	Time("work_ns", func() { ran = true })
	if !ran {
		t.Fatal("Time did not run its function")
	}
	snap := Global.SnapshotAndReset()
	if _, ok := snap["work_ns"]; !ok {
		t.Fatal("Time recorded nothing")
	}
}

func TestHuman(t *testing.T) {
	cases := map[int64]string{
		512:             "512 B",
		2048:            "2.0 KiB",
		3 * 1024 * 1024: "3.0 MiB",
	}
	for n, want := range cases {
		if got := Human(n); got != want {
			t.Fatalf("Human(%d) = %q want %q", n, got, want)
		}
	}
}
