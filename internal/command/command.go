// Package command parses operator input into a tagged variant and executes it.
package command

import (
	"strconv"
	"strings"
)

// Kind selects the Command variant.
type Kind int

const (
	KindQuit Kind = iota
	KindEnterMonitor
	KindEnableExperiment
	KindMotorInc
	KindMotorRot
	KindShaderOpen
	KindShaderClose
	KindCompile
	KindFlash
	KindEmpty
	KindUnknown
)

// Command is one parsed operator instruction. Arg keeps the numeric token
// exactly as typed so device-bound writes preserve the operator's formatting
// ("motor rot -45.0" goes out as -45.0, not -45). Raw holds the full input
// for KindUnknown so errors can echo it back.
type Command struct {
	Kind         Kind
	ExperimentID int
	Steps        int
	Degrees      float64
	Arg          string
	Raw          string
}

// Parse splits raw input on whitespace and maps the leading verb to a
// Command. Verbs are case-sensitive. Missing or malformed arguments yield
// KindUnknown rather than an error: a bad command is an ordinary value the
// dispatcher reports, never a reason to abort.
func Parse(raw string) Command {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Command{Kind: KindEmpty}
	}

	unknown := Command{Kind: KindUnknown, Raw: raw}

	switch fields[0] {
	case "q", "quit":
		if len(fields) != 1 {
			return unknown
		}
		return Command{Kind: KindQuit}

	case "monitor":
		if len(fields) != 1 {
			return unknown
		}
		return Command{Kind: KindEnterMonitor}

	case "enable":
		if len(fields) != 3 || fields[1] != "experiment" {
			return unknown
		}
		id, err := strconv.Atoi(fields[2])
		if err != nil {
			return unknown
		}
		return Command{Kind: KindEnableExperiment, ExperimentID: id, Arg: fields[2]}

	case "motor":
		if len(fields) != 3 {
			return unknown
		}
		switch fields[1] {
		case "inc":
			steps, err := strconv.Atoi(fields[2])
			if err != nil {
				return unknown
			}
			return Command{Kind: KindMotorInc, Steps: steps, Arg: fields[2]}
		case "rot":
			deg, err := strconv.ParseFloat(fields[2], 64)
			if err != nil {
				return unknown
			}
			return Command{Kind: KindMotorRot, Degrees: deg, Arg: fields[2]}
		default:
			return unknown
		}

	case "shader":
		if len(fields) != 2 {
			return unknown
		}
		switch fields[1] {
		case "open":
			return Command{Kind: KindShaderOpen}
		case "close":
			return Command{Kind: KindShaderClose}
		default:
			return unknown
		}

	case "compile":
		if len(fields) != 1 {
			return unknown
		}
		return Command{Kind: KindCompile}

	case "flash":
		if len(fields) != 1 {
			return unknown
		}
		return Command{Kind: KindFlash}

	default:
		return unknown
	}
}
