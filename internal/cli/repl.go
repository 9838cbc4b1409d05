package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/metakv/internal/common"
	"github.com/dmitrijs2005/metakv/internal/models"
	"github.com/dmitrijs2005/metakv/internal/repositories/metadata"
)

const prompt = "metakv> "

// store defines the minimal operation surface the REPL needs.
// metadata.Repository satisfies this interface; tests provide a lightweight
// stub.
type store interface {
	Set(ctx context.Context, key string, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]models.Record, error)
	Find(ctx context.Context, pattern string) ([]models.Record, error)
}

// runREPL reads commands from in line by line and dispatches store
// operations until a quit command or end of input.
//
// Grammar: the line is split into at most three whitespace-separated
// tokens; the third keeps its internal spacing, so a set value may contain
// spaces. The command word is case-insensitive, keys and values are not.
// Blank lines re-prompt silently.
//
// Store failures are rendered as a single diagnostic line and the loop
// continues, with one exception: an error from an in-flight call that was
// interrupted (context canceled) aborts the session and is returned.
func runREPL(ctx context.Context, st store, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Metadata Manager  |  type 'help' for commands\n\n")

	scanner := bufio.NewScanner(in)
	// Lines longer than the default 64KB token cap must still reach the
	// store, where an oversized value is a validation outcome, not an input
	// error.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := splitTokens(line, 3)
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit", "q":
			return nil

		case "help":
			fmt.Fprintf(out, "%s\n", helpText)

		case "set":
			if len(parts) < 3 {
				fmt.Fprintln(out, "[ERROR] Usage: set <key> <value>")
				continue
			}
			key, value := parts[1], parts[2]
			err := st.Set(ctx, key, value)
			switch {
			case err == nil:
				fmt.Fprintf(out, "[OK] Set  '%s' = '%s'\n", key, value)
			case errors.Is(err, common.ErrorKeyTooLong):
				fmt.Fprintf(out, "[ERROR] Key too long (max %d chars): '%s'\n", metadata.MaxKeyLen, key)
			case errors.Is(err, common.ErrorValueTooLong):
				fmt.Fprintf(out, "[ERROR] Value too long (max %d chars): '%s'\n", metadata.MaxValueLen, value)
			case errors.Is(err, context.Canceled):
				return err
			default:
				fmt.Fprintf(out, "[ERROR] %v\n", err)
			}

		case "get":
			if len(parts) < 2 {
				fmt.Fprintln(out, "[ERROR] Usage: get <key>")
				continue
			}
			val, err := st.Get(ctx, parts[1])
			switch {
			case err == nil:
				fmt.Fprintf(out, "  %s = %s\n", parts[1], val)
			case errors.Is(err, common.ErrorNotFound):
				fmt.Fprintf(out, "  (key '%s' not found)\n", parts[1])
			case errors.Is(err, context.Canceled):
				return err
			default:
				fmt.Fprintf(out, "[ERROR] %v\n", err)
			}

		case "del":
			if len(parts) < 2 {
				fmt.Fprintln(out, "[ERROR] Usage: del <key>")
				continue
			}
			if err := st.Delete(ctx, parts[1]); err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				fmt.Fprintf(out, "[ERROR] %v\n", err)
				continue
			}
			fmt.Fprintf(out, "[OK] Deleted key '%s'\n", parts[1])

		case "list":
			records, err := st.List(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				fmt.Fprintf(out, "[ERROR] %v\n", err)
				continue
			}
			renderTable(out, records)

		case "find":
			if len(parts) < 2 {
				fmt.Fprintln(out, "[ERROR] Usage: find <pattern>  e.g.  find app.%")
				continue
			}
			records, err := st.Find(ctx, parts[1])
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				fmt.Fprintf(out, "[ERROR] %v\n", err)
				continue
			}
			renderTable(out, records)

		default:
			fmt.Fprintf(out, "[ERROR] Unknown command '%s'. Type 'help'.\n", cmd)
		}
	}
}

// splitTokens splits line into at most max whitespace-separated tokens.
// The final token keeps the rest of the line verbatim, internal spacing
// included. The line is expected to be trimmed already.
func splitTokens(line string, max int) []string {
	tokens := make([]string, 0, max)
	rest := line
	for len(tokens) < max-1 {
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			break
		}
		tokens = append(tokens, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	if rest != "" {
		tokens = append(tokens, rest)
	}
	return tokens
}
