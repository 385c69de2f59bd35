package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"debt-ledger-go/internal/models"
	"debt-ledger-go/internal/search"

	"go.uber.org/zap"
)

const helpText = `Commands:
  add <debt> <name>         add a user
  edit <#> <debt> <name>    change name and debt of row #
  inc <#> / dec <#>         add or subtract 1 on row #
  del <#>                   delete row # (asks for confirmation)
  sort name|debt            sort; repeat to reverse
  search <text>             filter rows by name
  clear                     show all rows again
  list                      redraw the table
  help                      show this text
  quit                      leave`

// ShellConfig configures an interactive console.
type ShellConfig struct {
	Session        *Session
	In             io.Reader
	Out            io.Writer
	SearchDebounce time.Duration
}

// Shell reads commands line by line and re-renders the table after every change.
// Store calls only happen on the Run goroutine; debounced searches are handed
// back to it over a channel.
//
// The shell learns about changes through Changed, which the store's OnChange hook
// should call. Without that hook mutations are applied but not redrawn until the
// next list.
type Shell struct {
	session  *Session
	in       io.Reader
	out      io.Writer
	debounce time.Duration
	dirty    bool
}

func NewShell(cfg ShellConfig) *Shell {
	return &Shell{
		session:  cfg.Session,
		in:       cfg.In,
		out:      cfg.Out,
		debounce: cfg.SearchDebounce,
	}
}

var errQuit = errors.New("quit")

// Changed marks the table stale so it is redrawn once the current command finishes.
// It must be called from the Run goroutine, which is where the store notifies.
func (sh *Shell) Changed() {
	sh.dirty = true
}

// Run processes commands until quit, end of input, or ctx cancellation.
func (sh *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go sh.readLines(ctx, lines, readErr)

	searches := make(chan string, 1)
	debouncer := search.NewDebouncer(sh.debounce, func(term string) {
		select {
		case searches <- term:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	Render(sh.out, sh.session)
	sh.prompt()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case term := <-searches:
			sh.session.SetFilter(term)
			Render(sh.out, sh.session)
			sh.prompt()

		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			err := sh.handle(ctx, line, debouncer)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(sh.out, "error: %v\n", err)
			}
			sh.redraw()
			sh.prompt()
		}
	}
}

// redraw renders the table if the store changed since the last render.
// A mutation whose persistence failed is still drawn, since it is applied in memory.
func (sh *Shell) redraw() {
	if !sh.dirty {
		return
	}
	sh.dirty = false
	Render(sh.out, sh.session)
}

func (sh *Shell) readLines(ctx context.Context, lines chan<- string, readErr chan<- error) {
	defer close(lines)
	scanner := bufio.NewScanner(sh.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-ctx.Done():
			readErr <- nil
			return
		}
	}
	readErr <- scanner.Err()
}

func (sh *Shell) prompt() {
	if sh.session.DeletePending() {
		fmt.Fprint(sh.out, "[y/N] ")
		return
	}
	fmt.Fprint(sh.out, "> ")
}

func (sh *Shell) handle(ctx context.Context, line string, debouncer *search.Debouncer[string]) error {
	line = strings.TrimSpace(line)

	// A pending delete consumes the next line as its answer.
	if sh.session.DeletePending() {
		answer := strings.ToLower(line)
		if answer != "y" && answer != "yes" {
			sh.session.CancelDelete()
			fmt.Fprintln(sh.out, "Delete cancelled.")
			return nil
		}
		record, err := sh.session.ConfirmDelete(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "Deleted %s.\n", record.Name)
		return nil
	}

	if line == "" {
		return nil
	}
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		fmt.Fprintln(sh.out, helpText)
		return nil

	case "quit", "exit":
		return errQuit

	case "list", "ls":
		Render(sh.out, sh.session)
		return nil

	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: add <debt> <name>")
		}
		_, err := sh.session.Add(ctx, strings.Join(args[1:], " "), args[0])
		return err

	case "edit":
		if len(args) < 3 {
			return fmt.Errorf("usage: edit <#> <debt> <name>")
		}
		row, err := parseRow(args[0])
		if err != nil {
			return err
		}
		_, err = sh.session.Edit(ctx, row, strings.Join(args[2:], " "), args[1])
		return err

	case "inc", "+":
		row, err := singleRow(cmd, args)
		if err != nil {
			return err
		}
		_, _, err = sh.session.Increase(ctx, row)
		return err

	case "dec", "-":
		row, err := singleRow(cmd, args)
		if err != nil {
			return err
		}
		_, changed, err := sh.session.Decrease(ctx, row)
		if err == nil && !changed {
			fmt.Fprintln(sh.out, "Debt is already at zero.")
		}
		return err

	case "del", "rm":
		row, err := singleRow(cmd, args)
		if err != nil {
			return err
		}
		index, err := sh.session.Resolve(row)
		if err != nil {
			return err
		}
		question, err := sh.session.RequestDelete(index)
		if err != nil {
			return err
		}
		fmt.Fprintln(sh.out, question)
		return nil

	case "sort":
		if len(args) != 1 {
			return fmt.Errorf("usage: sort name|debt")
		}
		return sh.session.Sort(models.SortColumn(strings.ToLower(args[0])))

	case "search", "find":
		debouncer.Trigger(strings.Join(args, " "))
		return nil

	case "clear":
		debouncer.Cancel()
		sh.session.SetFilter("")
		Render(sh.out, sh.session)
		return nil
	}

	zap.L().Debug("Unknown console command", zap.String("command", cmd))
	return fmt.Errorf("unknown command %q, type help", cmd)
}

func singleRow(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s <#>", cmd)
	}
	return parseRow(args[0])
}

func parseRow(raw string) (int, error) {
	row, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid row number %q", raw)
	}
	return row, nil
}
