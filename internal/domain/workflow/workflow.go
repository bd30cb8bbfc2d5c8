// Package workflow implements the role-gated stage machine shared by the
// site and loan approval chains. A Machine is a pure function of
// (current state, request); persistence lives with the callers.
package workflow

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"landbank-backend/pkg/apperror"
)

type Stage int

type Role string

const (
	RoleRegistrant  Role = "registrant"
	RoleCoordinator Role = "coordinator"
	RoleSiteOfficer Role = "site_officer"
	RoleManager     Role = "manager"
	RoleCommittee   Role = "committee"
	RoleAdmin       Role = "admin"
)

var knownRoles = map[Role]struct{}{
	RoleRegistrant: {}, RoleCoordinator: {}, RoleSiteOfficer: {},
	RoleManager: {}, RoleCommittee: {}, RoleAdmin: {},
}

// ParseRole accepts the lowercase role names used in tokens and config.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	_, ok := knownRoles[r]
	return r, ok
}

// RecordStatus is the status written on a ledger row.
type RecordStatus string

const (
	RecordPending  RecordStatus = "pending"
	RecordApproved RecordStatus = "approved"
	RecordRejected RecordStatus = "rejected"
)

// Channel distinguishes the plain advance operation from award.
type Channel int

const (
	ChannelAdvance Channel = iota
	ChannelAward
)

type StageDef struct {
	Stage Stage
	Label string
	// Status is the aggregate status once the stage is entered.
	Status string
	// Outcome marks stages whose entry is recorded as approved rather than pending.
	Outcome bool
}

// Rule describes the single forward edge out of a stage.
type Rule struct {
	Next       Stage
	Actors     []Role
	Rejectable bool
	// Channel restricts which operation may take the forward edge.
	// Award edges take their actors from Policy.AwardRoles.
	Channel Channel
}

type Definition struct {
	Name string
	// Stages lists the linear order; the rejected stage is kept out of it.
	Stages         []StageDef
	Initial        Stage
	Rejected       Stage
	RejectedLabel  string
	RejectedStatus string
	ResubmitActors []Role
	Rules          map[Stage]Rule
}

type Policy struct {
	AllowResubmission bool
	AwardRoles        []Role
}

type State struct {
	Stage    Stage
	Rejected bool
}

type Request struct {
	Target  Stage
	Role    Role
	Remarks string
	Channel Channel
}

type Decision struct {
	From         State
	To           State
	Status       string
	RecordStage  Stage
	RecordStatus RecordStatus
	Reject       bool
	Resubmit     bool
}

type Machine struct {
	def    Definition
	policy Policy
	order  map[Stage]int
	stages map[Stage]StageDef
}

func NewMachine(def Definition, policy Policy) *Machine {
	m := &Machine{
		def:    def,
		policy: policy,
		order:  make(map[Stage]int, len(def.Stages)),
		stages: make(map[Stage]StageDef, len(def.Stages)),
	}
	for i, s := range def.Stages {
		m.order[s.Stage] = i
		m.stages[s.Stage] = s
	}
	return m
}

func (m *Machine) Name() string { return m.def.Name }

func (m *Machine) Initial() Stage { return m.def.Initial }

func (m *Machine) RejectedStage() Stage { return m.def.Rejected }

// Known reports whether s belongs to this workflow's closed stage set.
func (m *Machine) Known(s Stage) bool {
	if s == m.def.Rejected {
		return true
	}
	_, ok := m.stages[s]
	return ok
}

func (m *Machine) Label(s Stage) string {
	if s == m.def.Rejected {
		return m.def.RejectedLabel
	}
	if d, ok := m.stages[s]; ok {
		return d.Label
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// InitialStatus is the aggregate status of a freshly created record.
func (m *Machine) InitialStatus() string { return m.stages[m.def.Initial].Status }

// Reached reports whether cur sits at or after milestone in the linear order.
func (m *Machine) Reached(cur, milestone Stage) bool {
	ci, ok1 := m.order[cur]
	mi, ok2 := m.order[milestone]
	return ok1 && ok2 && ci >= mi
}

// Vocabulary returns every stage with its label, rejected last.
func (m *Machine) Vocabulary() []StageDef {
	out := make([]StageDef, 0, len(m.def.Stages)+1)
	out = append(out, m.def.Stages...)
	out = append(out, StageDef{Stage: m.def.Rejected, Label: m.def.RejectedLabel, Status: m.def.RejectedStatus})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stage < out[j].Stage })
	return out
}

// Decide validates req against cur. All failed conditions are reported
// together; the returned error matches each of them with errors.Is.
func (m *Machine) Decide(cur State, req Request) (Decision, error) {
	var (
		dec     Decision
		actors  []Role
		edge    bool
		invalid error
	)

	switch {
	case !m.Known(req.Target):
		invalid = m.invalid("stage %d is not part of the %s workflow", int(req.Target), m.def.Name)
	case cur.Rejected:
		if m.policy.AllowResubmission && req.Target == m.def.Initial && req.Channel == ChannelAdvance {
			edge, actors = true, m.def.ResubmitActors
			dec = m.enter(cur, req.Target)
			dec.Resubmit = true
			dec.RecordStatus = RecordPending
		} else {
			invalid = m.invalid("%s was rejected at %s and cannot move to %s",
				m.def.Name, m.Label(cur.Stage), m.Label(req.Target))
		}
	default:
		rule, ok := m.def.Rules[cur.Stage]
		switch {
		case !ok:
			invalid = m.invalid("%s is final; no transition to %s", m.Label(cur.Stage), m.Label(req.Target))
		case req.Target == rule.Next && rule.Channel == req.Channel:
			edge, actors = true, m.actors(rule)
			dec = m.enter(cur, req.Target)
		case req.Target == rule.Next && rule.Channel == ChannelAward:
			invalid = m.invalid("%s is reached only through the award operation", m.Label(req.Target))
		case req.Target == m.def.Rejected && rule.Rejectable && req.Channel == ChannelAdvance:
			edge, actors = true, rule.Actors
			dec = Decision{
				From:         cur,
				To:           State{Stage: cur.Stage, Rejected: true},
				Status:       m.def.RejectedStatus,
				RecordStage:  m.def.Rejected,
				RecordStatus: RecordRejected,
				Reject:       true,
			}
		default:
			invalid = m.invalid("cannot move from %s to %s", m.Label(cur.Stage), m.Label(req.Target))
		}
	}

	var errs []error
	if edge && !hasRole(actors, req.Role) {
		errs = append(errs, apperror.Clone(apperror.ErrUnauthorized,
			fmt.Sprintf("role %q may not act on %s at %s", req.Role, m.def.Name, m.Label(cur.Stage))))
	}
	if invalid != nil {
		errs = append(errs, invalid)
	}
	if strings.TrimSpace(req.Remarks) == "" {
		errs = append(errs, apperror.Clone(apperror.ErrValidation, "remarks are required"))
	}

	switch len(errs) {
	case 0:
		return dec, nil
	case 1:
		return Decision{}, errs[0]
	default:
		return Decision{}, errors.Join(errs...)
	}
}

// Allowed lists the targets role could request from cur through ch.
func (m *Machine) Allowed(cur State, role Role, ch Channel) []Stage {
	candidates := []Stage{m.def.Initial, m.def.Rejected}
	if rule, ok := m.def.Rules[cur.Stage]; ok {
		candidates = append(candidates, rule.Next)
	}
	var out []Stage
	seen := map[Stage]bool{}
	for _, target := range candidates {
		if seen[target] {
			continue
		}
		seen[target] = true
		if _, err := m.Decide(cur, Request{Target: target, Role: role, Remarks: "-", Channel: ch}); err == nil {
			out = append(out, target)
		}
	}
	return out
}

func (m *Machine) enter(cur State, target Stage) Decision {
	def := m.stages[target]
	rs := RecordPending
	if def.Outcome {
		rs = RecordApproved
	}
	return Decision{
		From:         cur,
		To:           State{Stage: target},
		Status:       def.Status,
		RecordStage:  target,
		RecordStatus: rs,
	}
}

func (m *Machine) actors(r Rule) []Role {
	if r.Channel == ChannelAward {
		return m.policy.AwardRoles
	}
	return r.Actors
}

func (m *Machine) invalid(format string, args ...any) error {
	return apperror.Clone(apperror.ErrInvalidTransition, fmt.Sprintf(format, args...))
}

func hasRole(allowed []Role, r Role) bool {
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}
