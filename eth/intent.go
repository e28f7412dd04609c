package eth

import (
	"errors"
	"regexp"
)

// SendIntent is the validated tuple required to submit a transfer. It is
// built either from structured tool arguments or parsed out of free text.
type SendIntent struct {
	Amount     string // decimal ETH
	From       string
	To         string
	PrivateKey string // optional hex override; wallet registry is consulted otherwise
}

var (
	sendCommandRe = regexp.MustCompile(`(?i)\bsend\b.*\beth\b`)
	amountRe      = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*eth\b`)
	fromRe        = regexp.MustCompile(`(?i)\bfrom\s+(0x[0-9a-fA-F]{40})\b`)
	toRe          = regexp.MustCompile(`(?i)\bto\s+(0x[0-9a-fA-F]{40})\b`)
	privateKeyRe  = regexp.MustCompile(`(?i)private\s+key\s+(?:0x)?([0-9a-fA-F]{64})\b`)
)

// Parse errors name the field that failed so the model (or the user) can
// retry with corrected phrasing.
var (
	ErrNoAmount = errors.New(`could not find an amount in the command, expected something like "0.1 ETH"`)
	ErrNoFrom   = errors.New(`could not find a source address in the command, expected "from 0x<40 hex digits>"`)
	ErrNoTo     = errors.New(`could not find a destination address in the command, expected "to 0x<40 hex digits>"`)
)

// IsSendCommand reports whether free text looks like a direct transfer
// command ("send" plus the ETH unit token). Used by the agent fast path.
func IsSendCommand(text string) bool {
	return sendCommandRe.MatchString(text)
}

// ParseSendCommand extracts a send intent from free text using positional
// pattern matching. This is a best-effort pre-filter, not a grammar: each
// field is matched independently and the first occurrence wins.
func ParseSendCommand(text string) (*SendIntent, error) {
	intent := &SendIntent{}

	if m := amountRe.FindStringSubmatch(text); m != nil {
		intent.Amount = m[1]
	} else {
		return nil, ErrNoAmount
	}

	if m := fromRe.FindStringSubmatch(text); m != nil {
		intent.From = m[1]
	} else {
		return nil, ErrNoFrom
	}

	if m := toRe.FindStringSubmatch(text); m != nil {
		intent.To = m[1]
	} else {
		return nil, ErrNoTo
	}

	if m := privateKeyRe.FindStringSubmatch(text); m != nil {
		intent.PrivateKey = m[1]
	}

	return intent, nil
}
