package model

import (
	"fmt"
	"strings"
)

type TrxStatus string

const (
	StatusPending    TrxStatus = "pending"
	StatusProcessing TrxStatus = "processing"
	StatusSubmitted  TrxStatus = "submitted"
	StatusConfirming TrxStatus = "confirming"
	StatusSuccess    TrxStatus = "success"
	StatusCompleted  TrxStatus = "completed"
	StatusFailed     TrxStatus = "failed"
	StatusCancelled  TrxStatus = "cancelled"
	StatusExpired    TrxStatus = "expired"
)

type StatusGroup string

const (
	GroupProcessing StatusGroup = "PROCESSING"
	GroupSuccess    StatusGroup = "SUCCESS"
	GroupFailed     StatusGroup = "FAILED"
	GroupInactive   StatusGroup = "INACTIVE"
)

type ColorClass string

const (
	ColorSuccess    ColorClass = "success"
	ColorError      ColorClass = "error"
	ColorWarning    ColorClass = "warning"
	ColorProcessing ColorClass = "processing"
	ColorInfo       ColorClass = "info"
	ColorNeutral    ColorClass = "neutral"
)

var statusDisplayNames = map[TrxStatus]string{
	StatusPending:    "Pending",
	StatusProcessing: "Processing",
	StatusSubmitted:  "Submitted",
	StatusConfirming: "Confirming",
	StatusSuccess:    "Success",
	StatusCompleted:  "Completed",
	StatusFailed:     "Failed",
	StatusCancelled:  "Cancelled",
	StatusExpired:    "Expired",
}

var statusColors = map[TrxStatus]ColorClass{
	StatusPending:    ColorWarning,
	StatusProcessing: ColorProcessing,
	StatusSubmitted:  ColorProcessing,
	StatusConfirming: ColorInfo,
	StatusSuccess:    ColorSuccess,
	StatusCompleted:  ColorSuccess,
	StatusFailed:     ColorError,
	StatusCancelled:  ColorNeutral,
	StatusExpired:    ColorNeutral,
}

var statusGroups = map[TrxStatus]StatusGroup{
	StatusPending:    GroupProcessing,
	StatusProcessing: GroupProcessing,
	StatusSubmitted:  GroupProcessing,
	StatusConfirming: GroupProcessing,
	StatusSuccess:    GroupSuccess,
	StatusCompleted:  GroupSuccess,
	StatusFailed:     GroupFailed,
	StatusCancelled:  GroupInactive,
	StatusExpired:    GroupInactive,
}

// DisplayName is total: unknown codes fall back to the raw code string.
func (s TrxStatus) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func (s TrxStatus) Color() ColorClass {
	if color, ok := statusColors[s]; ok {
		return color
	}
	return ColorNeutral
}

// Group defaults unknown codes to INACTIVE so aggregation never produces
// a fifth bucket.
func (s TrxStatus) Group() StatusGroup {
	if group, ok := statusGroups[s]; ok {
		return group
	}
	return GroupInactive
}

func (s TrxStatus) IsTerminal() bool {
	switch s {
	case StatusSuccess, StatusCompleted, StatusFailed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

func (s TrxStatus) IsKnown() bool {
	_, ok := statusGroups[s]
	return ok
}

var allowedTransitions = map[TrxStatus][]TrxStatus{
	StatusPending:    {StatusSuccess, StatusFailed, StatusCancelled, StatusExpired},
	StatusProcessing: {StatusSuccess, StatusFailed},
	StatusSubmitted:  {StatusSuccess, StatusFailed},
	StatusConfirming: {StatusSuccess, StatusFailed},
}

// CanTransition reports whether the state machine permits moving from one
// status to another. Terminal states permit nothing.
func CanTransition(from, to TrxStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var legacyStatusCodes = map[string]TrxStatus{
	"1":        StatusPending,
	"active":   StatusPending,
	"enabled":  StatusPending,
	"0":        StatusCancelled,
	"inactive": StatusCancelled,
	"disabled": StatusCancelled,
}

// NormalizeStatus canonicalizes status codes at the ingestion boundary.
// Upstream feeds mix numeric and textual synonyms; everything past this
// function speaks only the canonical enumeration.
func NormalizeStatus(raw string) (TrxStatus, error) {
	code := strings.ToLower(strings.TrimSpace(raw))
	if code == "" {
		return "", fmt.Errorf("empty status code")
	}

	if legacy, ok := legacyStatusCodes[code]; ok {
		return legacy, nil
	}

	status := TrxStatus(code)
	if !status.IsKnown() {
		return "", fmt.Errorf("unknown status code %q", raw)
	}

	return status, nil
}
