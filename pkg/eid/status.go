package eid

import (
	"sort"
	"strings"
)

// TransactionStatus is the server-side state of a transaction
type TransactionStatus string

const (
	StatusStarted           TransactionStatus = "STARTED"
	StatusDeliveredToMobile TransactionStatus = "DELIVERED_TO_MOBILE"
	StatusOpened            TransactionStatus = "OPENED"
	StatusApproved          TransactionStatus = "APPROVED"
	StatusRejected          TransactionStatus = "REJECTED"
	StatusCanceled          TransactionStatus = "CANCELED"
	StatusRPCanceled        TransactionStatus = "RP_CANCELED"
	StatusExpired           TransactionStatus = "EXPIRED"
)

// StatusSet is an immutable set of statuses
type StatusSet struct {
	members map[TransactionStatus]struct{}
}

// NewStatusSet builds a set from the given statuses
func NewStatusSet(statuses ...TransactionStatus) StatusSet {
	members := make(map[TransactionStatus]struct{}, len(statuses))
	for _, s := range statuses {
		members[s] = struct{}{}
	}
	return StatusSet{members: members}
}

// Contains reports whether s is in the set
func (set StatusSet) Contains(s TransactionStatus) bool {
	_, ok := set.members[s]
	return ok
}

// Len returns the number of statuses in the set
func (set StatusSet) Len() int {
	return len(set.members)
}

// Statuses returns the members sorted by name
func (set StatusSet) Statuses() []TransactionStatus {
	out := make([]TransactionStatus, 0, len(set.members))
	for s := range set.members {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as "{A, B}"
func (set StatusSet) String() string {
	names := make([]string, 0, len(set.members))
	for _, s := range set.Statuses() {
		names = append(names, string(s))
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// DefaultTerminalStatuses are the final states shared by authentication,
// signing and organisation ID transactions.
var DefaultTerminalStatuses = NewStatusSet(
	StatusApproved,
	StatusRejected,
	StatusCanceled,
	StatusRPCanceled,
	StatusExpired,
)
