package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReceiptStore archives scanned receipts on disk so a support flow can
// replay what the scanner saw. One file per scan, newest kept, older scans
// of the same user pruned on demand.
type ReceiptStore struct {
	basePath string
}

// NewReceiptStore creates a new ReceiptStore and ensures the base directory exists.
func NewReceiptStore(basePath string) (*ReceiptStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &ReceiptStore{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

func (s *ReceiptStore) receiptPath(userID, timestamp string) string {
	filename := fmt.Sprintf("%s_%s.txt", userID, sanitizeTimestamp(timestamp))
	return filepath.Join(s.basePath, filename)
}

// Save archives one receipt's raw text and returns the file path.
func (s *ReceiptStore) Save(userID, receiptText string) (string, error) {
	ts := time.Now().UTC().Format(time.RFC3339)
	filePath := s.receiptPath(userID, ts)
	if err := os.WriteFile(filePath, []byte(receiptText), 0644); err != nil {
		return "", fmt.Errorf("failed to write receipt file: %w", err)
	}
	return filePath, nil
}

// Load retrieves an archived receipt by path.
func (s *ReceiptStore) Load(filePath string) (string, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read receipt file: %w", err)
	}
	return string(data), nil
}

// Prune removes all archived receipts of a user.
func (s *ReceiptStore) Prune(userID string) error {
	pattern := filepath.Join(s.basePath, fmt.Sprintf("%s_*.txt", userID))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("failed to glob receipt files: %w", err)
	}

	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove receipt file %s: %w", match, err)
		}
	}
	return nil
}
