package batch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tpetrov/safellm/internal/predictor"
)

// OutputRecord is one line of the JSONL output file.
type OutputRecord struct {
	RequestID  string `json:"request_id"`
	InputText  string `json:"input_text"`
	Prediction string `json:"prediction,omitempty"`
	Cached     bool   `json:"cached"`
	Error      string `json:"error,omitempty"`
}

// Processor runs predictions over input records with a fixed worker pool.
type Processor struct {
	predictor *predictor.Predictor
	workers   int
	logger    *zerolog.Logger
}

func NewProcessor(pred *predictor.Predictor, workers int, logger *zerolog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		predictor: pred,
		workers:   workers,
		logger:    logger,
	}
}

// Process fans records out to the worker pool and returns a channel of
// results. Records that failed to parse are passed through as error results.
// The channel is closed once all records are handled.
func (p *Processor) Process(ctx context.Context, records []InputRecord) <-chan OutputRecord {
	in := make(chan InputRecord)
	out := make(chan OutputRecord)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for record := range in {
				out <- p.process(ctx, record)
			}
		}()
	}

	go func() {
		defer close(in)
		for _, record := range records {
			select {
			case in <- record:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func (p *Processor) process(ctx context.Context, record InputRecord) OutputRecord {
	result := OutputRecord{
		RequestID: record.Request.RequestID,
		InputText: record.Request.InputText,
	}

	if record.Error != nil {
		result.Error = record.Error.Error()
		return result
	}

	resp, err := p.predictor.Predict(ctx, record.Request)
	if err != nil {
		p.logger.Error().
			Err(err).
			Int("line", record.LineNumber).
			Str("request_id", record.Request.RequestID).
			Msg("Prediction failed")
		result.Error = err.Error()
		return result
	}

	result.Prediction = resp.Prediction
	result.Cached = resp.Cached
	return result
}
