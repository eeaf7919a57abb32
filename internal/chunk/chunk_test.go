package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNoOp(t *testing.T) {
	payload := "short payload that fits"
	chunks := Split(payload, 100)

	require.Len(t, chunks, 1)
	assert.Equal(t, payload, strings.TrimSpace(chunks[0]))
}

func TestSplitSectionPacking(t *testing.T) {
	s1 := strings.Repeat("a", 1000)
	s2 := strings.Repeat("b", 1000)
	s3 := strings.Repeat("c", 1000)
	payload := JoinSections([]string{s1, s2, s3})

	// 550 tokens = 2200 characters: two 1000-char sections plus a separator
	// fit, three do not.
	chunks := Split(payload, 550)

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0], s1)
	assert.Contains(t, chunks[0], s2)
	assert.NotContains(t, chunks[0], "c")
	assert.Contains(t, chunks[1], s3)

	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 2200, "chunk %d exceeds the byte budget", i)
	}
}

func TestSplitReconstructsContent(t *testing.T) {
	sections := []string{
		"function alpha() { return 1; }",
		"function beta() { return 2; }",
		"function gamma() { return 3; }",
	}
	payload := JoinSections(sections)
	chunks := Split(payload, 20) // 80 chars, one section per chunk

	joined := strings.Join(chunks, "\n")
	for _, s := range sections {
		assert.Contains(t, joined, s)
	}
}

func TestSplitOversizedSectionFallsBackToLines(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, strings.Repeat("x", 90))
	}
	big := strings.Join(lines, "\n")
	payload := JoinSections([]string{"small section", big})

	chunks := Split(payload, 100) // 400-char budget

	require.Greater(t, len(chunks), 2)
	for i, c := range chunks {
		assert.LessOrEqual(t, len(c), 400, "chunk %d exceeds the byte budget", i)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
	assert.Contains(t, chunks[0], "small section")
}

func TestSplitOversizedLineIsHardSliced(t *testing.T) {
	payload := JoinSections([]string{"tiny", strings.Repeat("z", 1000)})
	chunks := Split(payload, 100) // 400-char budget

	var total int
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 400)
		total += strings.Count(c, "z")
	}
	assert.Equal(t, 1000, total)
}

func TestSplitNoSeparatorSlices(t *testing.T) {
	payload := strings.Repeat("q", 1000)
	chunks := Split(payload, 100) // 400-char budget

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 400)
	assert.Len(t, chunks[1], 400)
	assert.Len(t, chunks[2], 200)
}

func TestSplitZeroBudgetDoesNotPanic(t *testing.T) {
	chunks := Split("some payload", 0)
	assert.NotEmpty(t, chunks)
}

func TestJoinSections(t *testing.T) {
	payload := JoinSections([]string{"one", "two"})
	assert.Equal(t, "one\n"+SectionSeparator+"\ntwo", payload)
}
