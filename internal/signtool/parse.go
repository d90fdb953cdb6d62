package signtool

import (
	"strconv"
	"strings"

	"github.com/togglepad/winsign/core"
)

// Output fragments the tool emits for failures winsign distinguishes.
// Matching is case-insensitive and deliberately loose: the wording drifts
// across tool versions, the status codes do not.
var (
	noSignatureMarks = []string{
		"no signature found",
		"not signed",
		"0x800b0100", // TRUST_E_NOSIGNATURE
	}
	badPasswordMarks = []string{
		"password is not correct",
		"incorrect password",
		"0x80070056", // ERROR_INVALID_PASSWORD
	}
)

// Classify maps a failed invocation to a ToolError wrapping the sentinel
// that best matches the tool's output. The generic sign/verify sentinel
// applies when no specific failure is recognized.
func Classify(op string, inv core.Invocation) error {
	out := strings.ToLower(string(inv.Output))

	sentinel := core.ErrSignFailed
	if op == OpVerify {
		sentinel = core.ErrVerifyFailed
	}
	switch {
	case containsAny(out, noSignatureMarks):
		sentinel = core.ErrNoSignature
	case containsAny(out, badPasswordMarks):
		sentinel = core.ErrBadPassword
	}

	return &core.ToolError{Op: op, Invocation: inv, Sentinel: sentinel}
}

// ParseVerifiedCount extracts how many signatures verbose verify output
// reported as valid. It counts rows of the signature index table and falls
// back to the files-verified summary line. Returns 0 when neither parses.
func ParseVerifiedCount(output []byte) int {
	lines := strings.Split(string(output), "\n")

	n := 0
	inTable := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Index") && strings.Contains(trimmed, "Algorithm"):
			inTable = true
		case inTable && trimmed == "":
			inTable = false
		case inTable:
			if f := strings.Fields(trimmed); len(f) > 0 {
				if _, err := strconv.Atoi(f[0]); err == nil {
					n++
				}
			}
		}
	}
	if n > 0 {
		return n
	}

	// Older verbose form: one "Signature Index: N (...)" block per signature.
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "Signature Index:") {
			n++
		}
	}
	if n > 0 {
		return n
	}

	for _, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "Number of files successfully Verified:")
		if !ok {
			continue
		}
		if v, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
			return v
		}
	}
	return 0
}

func containsAny(s string, marks []string) bool {
	for _, m := range marks {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}
