package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"go-chi-calculator/internal/calculator"
)

const prompt = "calc> "

const helpText = `Enter "<a> <op> <b>" separated by spaces, e.g. "3,5 * 2".
Operators: + - * / ^ % (or add subtract multiply divide power modulo)
Commands:  history  clear  help  quit`

var errQuit = errors.New("quit")

// repl reads one command per line and drives a single session.
type repl struct {
	session *calculator.Session
	in      io.Reader
	out     io.Writer
}

func (r *repl) run() error {
	sc := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(r.out)
			return sc.Err()
		}
		if err := r.handle(sc.Text()); err != nil {
			return err
		}
	}
}

// handle executes one input line. It returns errQuit when the user asks to
// leave; every other outcome is printed and the loop continues.
func (r *repl) handle(line string) error {
	fields := strings.Fields(line)

	switch {
	case len(fields) == 0:
		return nil
	case len(fields) == 1:
		return r.command(fields[0])
	case len(fields) == 3:
		r.evaluate(fields[0], fields[2], operatorArg(fields[1]))
		return nil
	}

	fmt.Fprintln(r.out, `expected "<a> <op> <b>"; type help for usage`)
	return nil
}

func (r *repl) command(name string) error {
	switch strings.ToLower(name) {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		fmt.Fprintln(r.out, helpText)
	case "history":
		records := r.session.History()
		if len(records) == 0 {
			fmt.Fprintln(r.out, "history is empty")
			return nil
		}
		for i, rec := range records {
			fmt.Fprintf(r.out, "%3d  %s\n", i+1, rec)
		}
	case "clear":
		n := r.session.ClearHistory()
		fmt.Fprintf(r.out, "cleared %d record(s)\n", n)
	default:
		fmt.Fprintf(r.out, "unknown command %q; type help for usage\n", name)
	}
	return nil
}

func (r *repl) evaluate(a, b string, op calculator.Operator) {
	out, err := r.session.Evaluate(a, b, op)
	for _, d := range out.Diagnostics() {
		fmt.Fprintln(r.out, "note:", d)
	}
	if err != nil {
		fmt.Fprintln(r.out, "error:", err)
		return
	}
	if out.Fallback {
		fmt.Fprintf(r.out, "note: unknown operator %q, result is 0\n", op)
	}
	fmt.Fprintf(r.out, "= %s\n", calculator.Number(out.Result))
}
