package converter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onStdout, onStderr func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once
	// Callbacks are serialized so they never observe each other mid-line.
	var mu sync.Mutex

	scan := func(r io.Reader, forward func(string)) {
		defer wg.Done()
		err := readLines(r, maxLineBytes, func(line string) {
			if forward == nil {
				return
			}
			mu.Lock()
			forward(line)
			mu.Unlock()
		})
		if err != nil {
			once.Do(func() {
				scanErr = err
			})
			// Keep the pipe drained so the process can still exit.
			_, _ = io.Copy(io.Discard, r)
		}
	}

	wg.Add(2)
	go scan(stdout, onStdout)
	go scan(stderr, onStderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}

const maxLineBytes = 1024 * 1024

// readLines calls emit for every line of r. Lines longer than limit are cut
// at limit bytes and the remainder up to the newline is discarded.
func readLines(r io.Reader, limit int, emit func(string)) error {
	reader := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	truncated := false
	for {
		chunk, err := reader.ReadSlice('\n')
		if len(chunk) > 0 && !truncated {
			if room := limit - len(line); room < len(chunk) {
				chunk = chunk[:max(room, 0)]
				truncated = true
			}
			line = append(line, chunk...)
		}
		switch {
		case err == nil:
			emit(strings.TrimRight(string(line), "\r\n"))
			line, truncated = line[:0], false
		case errors.Is(err, bufio.ErrBufferFull):
		case errors.Is(err, io.EOF):
			if len(line) > 0 {
				emit(strings.TrimRight(string(line), "\r\n"))
			}
			return nil
		default:
			return err
		}
	}
}
