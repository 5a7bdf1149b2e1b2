package logger

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"uchelper/pkg/bucket"
)

// Logger that we will use to save job run reports.
type RunLogger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
	bucket   *bucket.Client
}

// Create the log instance with a temporary file.
func CreateLogger(bucketClient *bucket.Client) (*RunLogger, error) {
	f, err := os.CreateTemp("", "uchelper-*.log")
	if err != nil {
		return nil, err
	}

	return &RunLogger{
		logFile:  f,
		filePath: f.Name(),
		bucket:   bucketClient,
	}, nil
}

// Log a simple info.
func (l *RunLogger) Infof(format string, args ...interface{}) {
	l.write("[INFO]", format, args...)
}

// Log a error.
func (l *RunLogger) Errorf(format string, args ...interface{}) {
	l.write("[ERROR]", format, args...)
}

// Write a empty line.
func (l *RunLogger) EmptyLine() {
	l.logFile.WriteString("\n")
}

// Write something to the logger.
func (l *RunLogger) write(infoType string, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
}

// Clean the file contents.
func (l *RunLogger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)

	l.logFile.Seek(0, 0)
}

// Upload the run report to the bucket and reset the file.
func (l *RunLogger) Upload(ctx context.Context, objectKey string) error {
	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	if err := l.bucket.Upload(ctx, objectKey, l.logFile, "text/plain"); err != nil {
		return err
	}

	// Clean the file after sending.
	l.CleanFile()

	return nil
}
