package formatting

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitMessage_Short(t *testing.T) {
	chunks := SplitMessage("hello\nworld", 2000)
	if len(chunks) != 1 || chunks[0] != "hello\nworld" {
		t.Errorf("expected a single unchanged chunk, got %q", chunks)
	}
}

func TestSplitMessage_LineBoundaries(t *testing.T) {
	line := strings.Repeat("a", 9)
	text := strings.Join([]string{line, line, line, line}, "\n")

	chunks := SplitMessage(text, 20)

	want := []string{line + "\n" + line, line + "\n" + line}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d: %q", len(want), len(chunks), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %q, got %q", i, want[i], chunks[i])
		}
	}
}

func TestSplitMessage_LongLine(t *testing.T) {
	text := strings.Repeat("x", 45)

	chunks := SplitMessage(text, 20)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if strings.Join(chunks, "") != text {
		t.Error("hard cut lost characters")
	}
	for _, c := range chunks {
		if utf8.RuneCountInString(c) > 20 {
			t.Errorf("chunk over limit: %d", utf8.RuneCountInString(c))
		}
	}
}

func TestSplitMessage_Multibyte(t *testing.T) {
	text := strings.Repeat("λ", 30)

	for _, c := range SplitMessage(text, 10) {
		if !utf8.ValidString(c) {
			t.Fatalf("chunk split inside a rune: %q", c)
		}
		if utf8.RuneCountInString(c) > 10 {
			t.Errorf("chunk over limit: %d", utf8.RuneCountInString(c))
		}
	}
}

func TestCodeBlocks(t *testing.T) {
	trace := strings.Repeat("goroutine 1 [running]:\n", 200)

	blocks := CodeBlocks(trace, "go", MessageLimit)

	if len(blocks) < 2 {
		t.Fatalf("expected the trace to span several blocks, got %d", len(blocks))
	}
	for i, b := range blocks {
		if utf8.RuneCountInString(b) > MessageLimit {
			t.Errorf("block %d is %d characters", i, utf8.RuneCountInString(b))
		}
		if !strings.HasPrefix(b, "```go\n") || !strings.HasSuffix(b, "\n```") {
			t.Errorf("block %d is not fenced: %q", i, b[:20])
		}
	}
}

func TestMsgPermission(t *testing.T) {
	want := ":no_entry_sign: Sorry, you need Administrator permission to use this command."
	if got := MsgPermission("Administrator"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMsgInvalidRegion(t *testing.T) {
	want := "Region must be in [NA, EU, RU, AS] or blank for default(NA)"
	if got := MsgInvalidRegion([]string{"NA", "EU", "RU", "AS"}); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
