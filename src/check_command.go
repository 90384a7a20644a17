package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ryansname/bmscheck/src/advisor"
)

// ErrUsage is returned when command arguments are malformed
var ErrUsage = errors.New("usage: check <health> <charge_rate> <state_of_charge> <temperature>")

// Exit codes for the check command
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// parseReadingArgs parses four positional float arguments into a Reading
func parseReadingArgs(args []string) (advisor.Reading, error) {
	if len(args) != 4 {
		return advisor.Reading{}, ErrUsage
	}

	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return advisor.Reading{}, fmt.Errorf("%w: %q is not a number", ErrUsage, arg)
		}
		values[i] = v
	}

	return advisor.Reading{
		Health:        values[0],
		ChargeRate:    values[1],
		StateOfCharge: values[2],
		Temperature:   values[3],
	}, nil
}

// printVerdict writes the per-factor explanation followed by the overall result
func printVerdict(out io.Writer, adv *advisor.Advisor, v advisor.Verdict) {
	for _, line := range adv.Explain(v) {
		fmt.Fprintln(out, line)
	}
	if v.OK {
		fmt.Fprintln(out, "Battery is OK")
	} else {
		fmt.Fprintf(out, "Battery is NOT OK (failed: %v)\n", v.Failed())
	}
}

// runCheck evaluates a single reading from command line arguments and returns the exit code
func runCheck(args []string, adv *advisor.Advisor, out io.Writer) int {
	reading, err := parseReadingArgs(args)
	if err != nil {
		fmt.Fprintln(out, err)
		return exitUsage
	}

	verdict := adv.Evaluate(reading)
	printVerdict(out, adv, verdict)
	if !verdict.OK {
		return exitFail
	}
	return exitOK
}
