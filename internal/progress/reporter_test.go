package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KiB"},
		{1536, "1.50 KiB"},
		{1024 * 1024, "1.00 MiB"},
		{3584 * 1024, "3.50 MiB"},
		{1024 * 1024 * 1024, "1.00 GiB"},
	}

	for _, tt := range tests {
		result := FormatBytes(tt.input)
		if result != tt.expected {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestReporter_Milestones(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Output: &buf, Step: 50})

	r.Start(2, "server-4.12.1.zip", 1000)
	for written := int64(100); written <= 1000; written += 100 {
		r.Advance(2, written, 0)
	}
	r.Finish(2, nil)

	want := []string{
		"[2] server-4.12.1.zip: started (1000 B)",
		"[2] server-4.12.1.zip: 50% (500 B / 1000 B)",
		"[2] server-4.12.1.zip: done (1000 B)",
	}
	got := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("output =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestReporter_UnknownSize(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Output: &buf})

	r.Start(0, "server-4.12.zip.md5", 0)
	r.Advance(0, 16, 0)
	r.Finish(0, errors.New("boom"))

	want := "[0] server-4.12.zip.md5: started\n[0] server-4.12.zip.md5: failed: boom\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestReporter_ContentLengthFallback(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Output: &buf, Step: 50})

	r.Start(1, "a", 0)
	r.Advance(1, 60, 100)

	if !strings.Contains(buf.String(), "[1] a: 50% (60 B / 100 B)") {
		t.Errorf("output = %q, want a 50%% line", buf.String())
	}
}

func TestReporter_Concurrent(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(Options{Output: &buf, Step: 10})

	var wg sync.WaitGroup
	for pos := 0; pos < 8; pos++ {
		pos := pos
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Start(pos, "file", 100)
			for w := int64(1); w <= 100; w++ {
				r.Advance(pos, w, 100)
			}
			r.Finish(pos, nil)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// started + 9 milestones (10..90) + done per position.
	if len(lines) != 8*11 {
		t.Errorf("got %d lines, want %d", len(lines), 8*11)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[") || !strings.Contains(line, "] file: ") {
			t.Errorf("malformed line %q", line)
		}
	}
}
