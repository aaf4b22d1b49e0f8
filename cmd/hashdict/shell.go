package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/UTD-JLA/hashdict/pkg/orderedmap"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("wrong number of arguments")
)

type Shell struct {
	Dict        *orderedmap.Dict[any, any]
	Logger      *slog.Logger
	Compression string
}

func NewShell(config *Config, logger *slog.Logger) *Shell {
	return &Shell{
		Dict:        orderedmap.New[any, any](config.DictOptions(logger)...),
		Logger:      logger,
		Compression: config.Dump.Compression,
	}
}

// Run executes every line of r. Command errors are written to w and do not
// stop processing.
func (s *Shell) Run(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		out, err := s.Exec(line)
		if err != nil {
			s.Logger.Debug("command failed", slog.String("line", line), slog.String("err", err.Error()))
			fmt.Fprintf(w, "error: %v\n", err)
			continue
		}

		fmt.Fprintln(w, out)
	}

	return scanner.Err()
}

func (s *Shell) Exec(line string) (string, error) {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(name) {
	case "set":
		rawKey, value, ok := cutKey(rest)
		if !ok || value == "" {
			return "", fmt.Errorf("%w: set <key> <value>", ErrUsage)
		}
		key, err := parseKey(rawKey)
		if err != nil {
			return "", err
		}
		if err = s.Dict.Set(key, value); err != nil {
			return "", err
		}
		return "OK", nil
	case "get":
		key, err := s.singleKey(rest, "get <key>")
		if err != nil {
			return "", err
		}
		if value, ok := s.Dict.Get(key); ok {
			return fmt.Sprint(value), nil
		}
		return "(absent)", nil
	case "del", "delete":
		key, err := s.singleKey(rest, "del <key>")
		if err != nil {
			return "", err
		}
		if err = s.Dict.Delete(key); err != nil {
			return "", err
		}
		return "OK", nil
	case "has", "contains":
		key, err := s.singleKey(rest, "has <key>")
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(s.Dict.Contains(key)), nil
	case "keys":
		return fmt.Sprint(s.Dict.Keys()), nil
	case "values":
		return fmt.Sprint(s.Dict.Values()), nil
	case "items":
		return s.Dict.String(), nil
	case "len":
		return strconv.Itoa(s.Dict.Len()), nil
	case "stats":
		st := s.Dict.Stats()
		return fmt.Sprintf("len=%d buckets=%d active=%d largest=%d next_order=%d",
			st.Len, st.BucketCount, st.ActiveBuckets, st.LargestBucket, st.NextOrder), nil
	case "clear":
		s.Dict.Clear()
		return "OK", nil
	case "load":
		if rest == "" {
			return "", fmt.Errorf("%w: load <path>", ErrUsage)
		}
		n, err := s.load(rest)
		if err != nil {
			return "", fmt.Errorf("load %s: %w", rest, err)
		}
		return fmt.Sprintf("loaded %d entries", n), nil
	case "dump":
		if rest == "" {
			return "", fmt.Errorf("%w: dump <path>", ErrUsage)
		}
		if err := s.dump(rest); err != nil {
			return "", fmt.Errorf("dump %s: %w", rest, err)
		}
		return fmt.Sprintf("dumped %d entries", s.Dict.Len()), nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownCommand, name)
}

func (s *Shell) singleKey(rest, usage string) (any, error) {
	rawKey, extra, ok := cutKey(rest)
	if rest == "" || (ok && extra != "") {
		return nil, fmt.Errorf("%w: %s", ErrUsage, usage)
	}

	return parseKey(rawKey)
}

func (s *Shell) compressionFor(path string) string {
	switch filepath.Ext(path) {
	case ".gz":
		return "gzip"
	case ".zst":
		return "zstd"
	case ".jsonl":
		return "none"
	}

	return s.Compression
}

func (s *Shell) load(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer file.Close()

	switch s.compressionFor(path) {
	case "gzip":
		return orderedmap.ReadCompressedJSONL(file, s.Dict)
	case "zstd":
		return orderedmap.ReadZstdJSONL(file, s.Dict)
	}

	return orderedmap.ReadJSONL(file, s.Dict)
}

func (s *Shell) dump(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	switch s.compressionFor(path) {
	case "gzip":
		err = orderedmap.WriteCompressedJSONL(file, s.Dict)
	case "zstd":
		err = orderedmap.WriteZstdJSONL(file, s.Dict)
	default:
		err = orderedmap.WriteJSONL(file, s.Dict)
	}

	if err != nil {
		file.Close()
		return err
	}

	return file.Close()
}

// cutKey splits off the first token, which may be a double-quoted string.
func cutKey(s string) (key, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		quoted, err := strconv.QuotedPrefix(s)
		if err != nil {
			return "", "", false
		}
		return quoted, strings.TrimSpace(s[len(quoted):]), true
	}

	key, rest, ok = strings.Cut(s, " ")
	if !ok {
		return key, "", key != ""
	}

	return key, strings.TrimSpace(rest), true
}

// parseKey turns integers into int keys and unquotes quoted strings. Any
// other token is used as a string key.
func parseKey(raw string) (any, error) {
	if strings.HasPrefix(raw, `"`) {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid key %s: %w", raw, err)
		}
		return s, nil
	}

	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}

	return raw, nil
}
