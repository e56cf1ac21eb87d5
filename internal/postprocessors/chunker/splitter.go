// Package chunker provides a fixed-size sliding-window text splitter.
package chunker

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 150

// Splitter turns cleaned page text into fixed-size overlapping chunks.
// Consecutive chunks share the trailing overlap of the previous chunk, so
// sentences straddling a boundary stay retrievable.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a splitter with the given options.
// Overlap is validated against chunk size at configuration load; the clamp
// here only guards direct construction.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// ChunkSize returns the configured window length.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split cuts text into windows of chunkSize runes, advancing by
// chunkSize-overlap each step. The windows cover the input exactly: joining
// every chunk's leading chunkSize-overlap runes (and the final chunk whole)
// reconstructs the text. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	length := len(runes)
	step := s.chunkSize - s.overlap

	chunks := make([]string, 0, length/step+1)
	for start := 0; start < length; start += step {
		end := start + s.chunkSize
		if end > length {
			end = length
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == length {
			break
		}
	}

	return chunks
}
