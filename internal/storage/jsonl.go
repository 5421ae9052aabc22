package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"infoScope/internal/model"
)

// JsonlStorage appends records to a JSONL file, one object per line.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// kind tags each line so one file can hold every record type.
type jsonlLine struct {
	Kind   string      `json:"kind"`
	Record interface{} `json:"record"`
}

func (s *JsonlStorage) PutTransactions(_ context.Context, records []model.TransactionRecord) error {
	lines := make([]jsonlLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, jsonlLine{Kind: "transaction", Record: r})
	}
	return s.append(lines)
}

func (s *JsonlStorage) PutTokenPools(_ context.Context, pools []model.TokenPool) error {
	lines := make([]jsonlLine, 0, len(pools))
	for _, p := range pools {
		lines = append(lines, jsonlLine{Kind: "token_pool", Record: p})
	}
	return s.append(lines)
}

func (s *JsonlStorage) PutPriceSnapshot(_ context.Context, snapshot model.PriceSnapshot) error {
	return s.append([]jsonlLine{{Kind: "native_price", Record: snapshot}})
}

func (s *JsonlStorage) PutChart(_ context.Context, records []model.ChartRecord) error {
	lines := make([]jsonlLine, 0, len(records))
	for _, r := range records {
		lines = append(lines, jsonlLine{Kind: "chart", Record: r})
	}
	return s.append(lines)
}

func (s *JsonlStorage) append(lines []jsonlLine) error {
	if len(lines) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, line := range lines {
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("marshal %s record: %w", line.Kind, err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("write %s record: %w", line.Kind, err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
