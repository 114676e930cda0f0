// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Vote is a single roll-call vote. The zero value is VoteAbsent, which means
// no vote was recorded (not an abstention).
type Vote uint8

const (
	VoteAbsent Vote = iota
	VoteYes
	VoteNo
	VoteAbstain
)

// CastVotes lists the non-absent values in tie-break priority order.
var CastVotes = []Vote{VoteYes, VoteNo, VoteAbstain}

// ParseVote converts a raw vote code. Blank input returns VoteAbsent with
// ok=true; anything unrecognized returns VoteAbsent with ok=false.
func ParseVote(code string) (v Vote, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "":
		return VoteAbsent, true
	case "Y", "YES":
		return VoteYes, true
	case "N", "NO":
		return VoteNo, true
	case "A", "ABSTAIN":
		return VoteAbstain, true
	}
	return VoteAbsent, false
}

// Cast reports whether the vote is one of YES, NO or ABSTAIN
func (v Vote) Cast() bool {
	return v >= VoteYes && v <= VoteAbstain
}

// Code returns the single-letter input code, or "" for an absent vote
func (v Vote) Code() string {
	switch v {
	case VoteYes:
		return "Y"
	case VoteNo:
		return "N"
	case VoteAbstain:
		return "A"
	}
	return ""
}

func (v Vote) String() string {
	switch v {
	case VoteYes:
		return "YES"
	case VoteNo:
		return "NO"
	case VoteAbstain:
		return "ABSTAIN"
	}
	return "ABSENT"
}

func (v Vote) MarshalJSON() ([]byte, error) {
	if !v.Cast() {
		return []byte("null"), nil
	}
	return json.Marshal(v.Code())
}

func (v *Vote) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = VoteAbsent
		return nil
	}
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, ok := ParseVote(code)
	if !ok {
		return fmt.Errorf("invalid vote code %q", code)
	}
	*v = parsed
	return nil
}
