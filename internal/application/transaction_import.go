package application

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/jmanzanog/finrecords/internal/domain"
)

const (
	importConcurrency = 4
	maxImportLineSize = 1 << 20
)

// ImportLine is one create request read from an import file.
type ImportLine struct {
	Line    int
	Request CreateTransactionRequest
}

// ImportLineResult is the outcome of importing one line.
type ImportLineResult struct {
	Line        int              `json:"line"`
	Transaction *TransactionView `json:"transaction,omitempty"`
	Code        string           `json:"code,omitempty"`
	Error       string           `json:"error,omitempty"`
	Err         error            `json:"-"`
}

// ImportResult represents the result of a transaction import.
type ImportResult struct {
	Successful []ImportLineResult `json:"successful"`
	Failed     []ImportLineResult `json:"failed"`
}

// ParseTransactionLines reads the import format: one JSON create request per
// line, blank lines ignored. Any malformed line rejects the whole file so that
// nothing is written from a file that cannot be read completely.
func ParseTransactionLines(name string, r io.Reader) ([]ImportLine, error) {
	var lines []ImportLine

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxImportLineSize)

	n := 0
	for scanner.Scan() {
		n++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var req CreateTransactionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return nil, &domain.InvalidFileError{Name: name, Line: n, Reason: err.Error()}
		}
		lines = append(lines, ImportLine{Line: n, Request: req})
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.InvalidFileError{Name: name, Line: n + 1, Reason: err.Error()}
	}

	if len(lines) == 0 {
		return nil, &domain.InvalidFileError{Name: name, Reason: "file contains no transactions"}
	}
	return lines, nil
}

// Import creates every line concurrently through Create, so each line gets
// the same validation as a single request. Results keep file order.
func (s *TransactionService) Import(ctx context.Context, lines []ImportLine) *ImportResult {
	result := &ImportResult{
		Successful: make([]ImportLineResult, 0),
		Failed:     make([]ImportLineResult, 0),
	}

	if len(lines) == 0 {
		return result
	}

	slog.InfoContext(ctx, "Importing transactions", "count", len(lines))

	outcomes := make([]ImportLineResult, len(lines))
	sem := make(chan struct{}, importConcurrency)
	var wg sync.WaitGroup

	for i, line := range lines {
		wg.Add(1)
		go func(i int, line ImportLine) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			view, err := s.Create(ctx, line.Request)
			if err != nil {
				outcomes[i] = ImportLineResult{Line: line.Line, Error: err.Error(), Err: err}
				return
			}
			outcomes[i] = ImportLineResult{Line: line.Line, Transaction: view}
		}(i, line)
	}
	wg.Wait()

	for _, o := range outcomes {
		if o.Err != nil {
			result.Failed = append(result.Failed, o)
		} else {
			result.Successful = append(result.Successful, o)
		}
	}

	slog.InfoContext(ctx, "Transaction import finished",
		"successful", len(result.Successful), "failed", len(result.Failed))
	if len(result.Failed) > 0 {
		slog.WarnContext(ctx, "Some transactions were not imported", "lines", failedLines(result.Failed))
	}
	return result
}

func failedLines(results []ImportLineResult) []int {
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.Line
	}
	return out
}
