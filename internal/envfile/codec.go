package envfile

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/envseal/internal/crypto/domain"
	cryptoService "github.com/allisson/envseal/internal/crypto/service"
)

// Codec applies the encryption engine to every value-bearing line of a
// configuration text blob while preserving structure.
//
// Per line: blank lines and `key=` pairs with an empty value pass through
// unchanged, `key=value` pairs have their value encrypted in place, and
// lines with no `=` are dropped from the output and reported. Malformed
// lines are the only tolerated failure category: they are collected
// during the run and logged as one consolidated entry afterwards, so one
// bad line never invalidates the rest of the file. Cryptographic failures
// abort the whole run.
type Codec struct {
	engine cryptoService.Engine
	logger *slog.Logger
}

// NewCodec creates a new Codec.
func NewCodec(engine cryptoService.Engine, logger *slog.Logger) *Codec {
	return &Codec{
		engine: engine,
		logger: logger,
	}
}

// Result holds the outcome of one codec run. Malformed carries the
// formatted per-line errors for lines that were dropped; the run itself
// still succeeds when Malformed is non-empty.
type Result struct {
	Lines     []string
	Malformed []string
}

// EncryptLines encrypts the value of every well-formed key=value line.
//
// Ordering is preserved; dropped malformed lines collapse the output
// rather than being replaced by a placeholder, so the output may be
// shorter than the input. Values are trimmed of surrounding whitespace
// before encryption.
func (c *Codec) EncryptLines(lines []string, secret *cryptoDomain.SecretKey) (Result, error) {
	if lines == nil {
		return Result{}, ErrInvalidInput
	}
	if allBlank(lines) {
		return Result{}, ErrEmptyFile
	}

	result := Result{Lines: make([]string, 0, len(lines))}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			result.Lines = append(result.Lines, line)
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			result.Malformed = append(result.Malformed, malformedLineError(i+1, line))
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			// Nothing to protect; `key=` passes through unchanged.
			result.Lines = append(result.Lines, line)
			continue
		}

		envelope, err := c.engine.Encrypt(value, secret)
		if err != nil {
			return Result{}, fmt.Errorf("failed to encrypt line %d: %w", i+1, err)
		}
		encoded, err := envelope.Encode()
		if err != nil {
			return Result{}, fmt.Errorf("failed to encode envelope for line %d: %w", i+1, err)
		}

		result.Lines = append(result.Lines, key+"="+encoded)
	}

	c.reportMalformed("encrypt_lines", result.Malformed)

	return result, nil
}

// DecryptLines is the inverse of EncryptLines: every key=envelope line has
// its envelope decrypted back to the original value. Structure handling
// matches EncryptLines, including malformed-line aggregation.
func (c *Codec) DecryptLines(lines []string, secret *cryptoDomain.SecretKey) (Result, error) {
	if lines == nil {
		return Result{}, ErrInvalidInput
	}
	if allBlank(lines) {
		return Result{}, ErrEmptyFile
	}

	result := Result{Lines: make([]string, 0, len(lines))}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			result.Lines = append(result.Lines, line)
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			result.Malformed = append(result.Malformed, malformedLineError(i+1, line))
			continue
		}

		value = strings.TrimSpace(value)
		if value == "" {
			result.Lines = append(result.Lines, line)
			continue
		}

		plaintext, err := c.engine.Decrypt(value, secret)
		if err != nil {
			return Result{}, fmt.Errorf("failed to decrypt line %d: %w", i+1, err)
		}

		result.Lines = append(result.Lines, key+"="+plaintext)
	}

	c.reportMalformed("decrypt_lines", result.Malformed)

	return result, nil
}

// EncryptFile reads one snapshot of the named file through the store,
// encrypts it in memory, and writes the result back.
func (c *Codec) EncryptFile(store SecretStore, name string, secret *cryptoDomain.SecretKey) (Result, error) {
	text, err := store.Read(name)
	if err != nil {
		return Result{}, err
	}

	result, err := c.EncryptLines(SplitLines(text), secret)
	if err != nil {
		return Result{}, err
	}

	if err := store.Write(name, JoinLines(result.Lines)); err != nil {
		return Result{}, err
	}

	return result, nil
}

// DecryptFile reads one snapshot of the named file through the store,
// decrypts it in memory, and writes the result back.
func (c *Codec) DecryptFile(store SecretStore, name string, secret *cryptoDomain.SecretKey) (Result, error) {
	text, err := store.Read(name)
	if err != nil {
		return Result{}, err
	}

	result, err := c.DecryptLines(SplitLines(text), secret)
	if err != nil {
		return Result{}, err
	}

	if err := store.Write(name, JoinLines(result.Lines)); err != nil {
		return Result{}, err
	}

	return result, nil
}

// reportMalformed emits one consolidated log entry for all malformed
// lines of a run. The run ID correlates the entry with boundary logs.
func (c *Codec) reportMalformed(operation string, malformed []string) {
	if len(malformed) == 0 || c.logger == nil {
		return
	}

	c.logger.Error("malformed configuration lines skipped",
		slog.String("operation", operation),
		slog.String("run_id", uuid.Must(uuid.NewV7()).String()),
		slog.Int("count", len(malformed)),
		slog.String("errors", strings.Join(malformed, "; ")),
	)
}

// malformedLineError formats the per-line error for a line with no `=`.
// n is 1-based.
func malformedLineError(n int, line string) string {
	return fmt.Sprintf("Line %d doesn't contain any variables or has invalid format: %s", n, line)
}

// allBlank reports whether every line is blank or whitespace-only.
func allBlank(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

// SplitLines splits file text into lines, tolerating both LF and CRLF
// endings.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
