package reasoncore

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ProverFormat is the wire format a Prover expects its serialized task in.
type ProverFormat int

const (
	// TPTP is the Thousands of Problems for Theorem Provers format.
	TPTP ProverFormat = iota
	// DFG is the SPASS input format.
	DFG
)

func (f ProverFormat) String() string {
	if f == DFG {
		return "DFG"
	}
	return "TPTP"
}

// Prover is one entry of the prover database: everything launchProver (C7)
// needs to invoke an external ATP and classify its outcome.
type Prover struct {
	Name            string
	Label           string
	Path            string
	Args            []string
	Format          ProverFormat
	SuccessPatterns []string
	FailurePatterns []string
	UnknownPatterns []string
}

// LoadProverDB parses the line-tagged prover database text format: one tag
// per line (P/L/C/F/Y/N/U), blank lines and '#' comments ignored. A new P
// line starts a new Prover record. Validation (non-empty C, at least one Y,
// at least one of N/U) runs once per record, at the next P line or EOF, and
// reports failures as a ConfigError naming the offending line number.
func LoadProverDB(r io.Reader) ([]*Prover, error) {
	var provers []*Prover
	var cur *Prover
	var curLine int

	finish := func(lineNo int) error {
		if cur == nil {
			return nil
		}
		if cur.Path == "" {
			return NewReasonError(ConfigError, fmt.Sprintf("line %d: prover %q missing C (command) line", lineNo, cur.Name), nil)
		}
		if len(cur.SuccessPatterns) == 0 {
			return NewReasonError(ConfigError, fmt.Sprintf("line %d: prover %q missing Y (success pattern) line", lineNo, cur.Name), nil)
		}
		if len(cur.FailurePatterns) == 0 && len(cur.UnknownPatterns) == 0 {
			return NewReasonError(ConfigError, fmt.Sprintf("line %d: prover %q needs at least one N or U line", lineNo, cur.Name), nil)
		}
		provers = append(provers, cur)
		return nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) < 2 {
			return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: malformed entry %q", lineNo, line), nil)
		}
		tag, rest := line[0], strings.TrimSpace(line[1:])
		switch tag {
		case 'P':
			if err := finish(curLine); err != nil {
				return nil, err
			}
			cur = &Prover{Name: rest}
			curLine = lineNo
		case 'L':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: L line before P line", lineNo), nil)
			}
			cur.Label = rest
		case 'C':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: C line before P line", lineNo), nil)
			}
			fields := strings.Fields(rest)
			if len(fields) == 0 {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: empty C line", lineNo), nil)
			}
			cur.Path = fields[0]
			cur.Args = fields[1:]
		case 'F':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: F line before P line", lineNo), nil)
			}
			switch strings.ToLower(rest) {
			case "tptp":
				cur.Format = TPTP
			case "dfg":
				cur.Format = DFG
			default:
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: unknown format %q", lineNo, rest), nil)
			}
		case 'Y':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: Y line before P line", lineNo), nil)
			}
			cur.SuccessPatterns = append(cur.SuccessPatterns, rest)
		case 'N':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: N line before P line", lineNo), nil)
			}
			cur.FailurePatterns = append(cur.FailurePatterns, rest)
		case 'U':
			if cur == nil {
				return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: U line before P line", lineNo), nil)
			}
			cur.UnknownPatterns = append(cur.UnknownPatterns, rest)
		default:
			return nil, NewReasonError(ConfigError, fmt.Sprintf("line %d: unknown tag %q", lineNo, string(tag)), nil)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, NewReasonError(ConfigError, "reading prover database", err)
	}
	if err := finish(curLine); err != nil {
		return nil, err
	}
	return provers, nil
}
