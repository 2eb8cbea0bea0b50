package chunker

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		chunkSize  int
		overlap    int
		wantChunks int
	}{
		{
			name:       "short text stays whole",
			text:       "The sky is blue because of Rayleigh scattering.",
			chunkSize:  1000,
			overlap:    200,
			wantChunks: 1,
		},
		{
			name:       "exact boundary stays whole",
			text:       strings.Repeat("a", 100),
			chunkSize:  100,
			overlap:    20,
			wantChunks: 1,
		},
		{
			name:       "long text splits",
			text:       strings.Repeat("b", 250),
			chunkSize:  100,
			overlap:    20,
			wantChunks: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := SplitText(tt.text, tt.chunkSize, tt.overlap)

			if len(chunks) != tt.wantChunks {
				t.Errorf("chunk count = %d, want %d", len(chunks), tt.wantChunks)
			}

			for i, c := range chunks {
				if len(c) == 0 {
					t.Errorf("chunk %d is empty", i)
				}
				if len(c) > tt.chunkSize {
					t.Errorf("chunk %d length = %d exceeds chunkSize %d", i, len(c), tt.chunkSize)
				}
			}
		})
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("x", 150) + strings.Repeat("y", 150)
	chunks := SplitText(text, 200, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}

	// Tail of chunk N must reappear at the head of chunk N+1
	tail := chunks[0][len(chunks[0])-50:]
	if !strings.HasPrefix(chunks[1], tail) {
		t.Errorf("chunk 1 does not start with the 50-char overlap of chunk 0")
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	// Degenerate configuration must not loop forever
	chunks := SplitText(strings.Repeat("z", 90), 30, 40)
	if len(chunks) != 3 {
		t.Errorf("chunk count = %d, want 3", len(chunks))
	}
}
