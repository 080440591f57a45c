package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/models"
)

// InputRecord is one line of a JSONL input file. A parse failure is carried in
// Error rather than aborting the whole file.
type InputRecord struct {
	LineNumber int
	Request    models.PredictionRequest
	Error      error
}

type Reader struct {
	input  io.Reader
	logger *zerolog.Logger
}

func NewReader(input io.Reader, logger *zerolog.Logger) *Reader {
	return &Reader{
		input:  input,
		logger: logger,
	}
}

// ReadAll streams records from the input. Blank lines are skipped; the channel
// is closed when the input is exhausted or the context is cancelled.
func (r *Reader) ReadAll(ctx context.Context) <-chan InputRecord {
	out := make(chan InputRecord)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(r.input)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

		lineNumber := 0
		for scanner.Scan() {
			lineNumber++

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			record := InputRecord{LineNumber: lineNumber}

			var req models.PredictionRequest
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				record.Error = fmt.Errorf("line %d: %w", lineNumber, err)
				r.logger.Warn().Int("line", lineNumber).Err(err).Msg("Skipping malformed record")
			} else if req.InputText == "" {
				record.Error = fmt.Errorf("line %d: input_text is required", lineNumber)
			} else {
				record.Request = req
			}

			select {
			case out <- record:
			case <-ctx.Done():
				r.logger.Warn().Int("line", lineNumber).Msg("Reader cancelled")
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to read input")
		}
	}()

	return out
}
