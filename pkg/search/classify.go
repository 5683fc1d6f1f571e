// Package search classifies free text from the console search box into the
// filter field it most likely targets. It is a pure function layered on top
// of the transaction store's filter, never part of the store itself.
package search

import (
	"regexp"
	"strings"
)

type Field int

const (
	// FieldTrxID is the default: the term is matched as a trxID substring.
	FieldTrxID Field = iota
	// FieldReferenceID matches UTR-style settlement references exactly.
	FieldReferenceID
	// FieldChannelTrxID matches provider-side identifiers exactly.
	FieldChannelTrxID
)

// Bank/UPI settlement references are long all-digit UTR numbers; provider
// identifiers carry a ch prefix. Anything else is treated as (part of) a
// transaction ID.
var (
	utrPattern     = regexp.MustCompile(`^[0-9]{10,22}$`)
	channelPattern = regexp.MustCompile(`^(?i:ch)[-_][A-Za-z0-9]+$`)
)

func Classify(text string) Field {
	term := strings.TrimSpace(text)

	if channelPattern.MatchString(term) {
		return FieldChannelTrxID
	}
	if utrPattern.MatchString(term) {
		return FieldReferenceID
	}
	return FieldTrxID
}
