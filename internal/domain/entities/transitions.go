package entities

import "github.com/shopspring/decimal"

// Transition legality, role authorization and gate checks, consolidated into
// single tables consulted once per request.
//
// The table is forward-only along the canonical ordering. Cancellation and
// the admin reopen escape hatch are handled separately and are the only ways
// a job leaves the forward path.

// RejectionCode classifies why a transition request was refused.
type RejectionCode string

const (
	RejectionInvalidTransition      RejectionCode = "INVALID_TRANSITION"
	RejectionRoleNotAuthorized      RejectionCode = "ROLE_NOT_AUTHORIZED"
	RejectionApprovalGateUnmet      RejectionCode = "APPROVAL_GATE_UNMET"
	RejectionPaymentGateUnmet       RejectionCode = "PAYMENT_GATE_UNMET"
	RejectionJobTerminal            RejectionCode = "JOB_TERMINAL"
	RejectionConcurrentModification RejectionCode = "CONCURRENT_MODIFICATION"
)

// validTransitions maps each status to the forward targets a caller may
// request. Cancellation is not listed; CanCancel covers it.
var validTransitions = map[JobStatus][]JobStatus{
	JobStatusRequested:     {JobStatusScheduled},
	JobStatusScheduled:     {JobStatusVehiclePicked, JobStatusInIntake},
	JobStatusVehiclePicked: {JobStatusInIntake},
	JobStatusInIntake:      {JobStatusDiagnosed},
	JobStatusDiagnosed:     {JobStatusAwaitingEstimateApproval},
	// Rejection loops back to diagnosed for a revised estimate.
	JobStatusAwaitingEstimateApproval: {JobStatusEstimateApproved, JobStatusDiagnosed},
	JobStatusEstimateApproved:         {JobStatusRFQSent, JobStatusAwaitingPayment},
	JobStatusRFQSent:                  {JobStatusQuotesReceived},
	JobStatusQuotesReceived:           {JobStatusAwaitingPartsApproval},
	// Parts rejection loops back so staff can select a different quote.
	JobStatusAwaitingPartsApproval: {JobStatusPartsApproved, JobStatusQuotesReceived},
	JobStatusPartsApproved:         {JobStatusAwaitingPayment},
	JobStatusAwaitingPayment:       {JobStatusPartiallyPaid, JobStatusPaid},
	JobStatusPartiallyPaid:         {JobStatusPaid},
	JobStatusPaid:                  {JobStatusPartsOrdered, JobStatusInService},
	JobStatusPartsOrdered:          {JobStatusPartsReceived},
	JobStatusPartsReceived:         {JobStatusInService},
	JobStatusInService:             {JobStatusTesting},
	JobStatusTesting:               {JobStatusReady},
	JobStatusReady:                 {JobStatusOutForDelivery, JobStatusDelivered},
	JobStatusOutForDelivery:        {JobStatusDelivered},
	JobStatusDelivered:             {JobStatusClosed},
	JobStatusClosed:                {},
	JobStatusCancelled:             {},
}

var staffRoles = []Role{RoleServiceAdvisor, RoleTechnician, RoleAdmin}

// transitionRoles is the target-status x allowed-roles matrix. Customer-gated
// targets additionally require ownership (see RequiresJobCustomer).
var transitionRoles = map[JobStatus][]Role{
	JobStatusScheduled:                {RoleServiceAdvisor, RoleAdmin},
	JobStatusVehiclePicked:            {RoleDriver, RoleAdmin},
	JobStatusInIntake:                 staffRoles,
	JobStatusDiagnosed:                staffRoles,
	JobStatusAwaitingEstimateApproval: {RoleServiceAdvisor, RoleAdmin},
	JobStatusEstimateApproved:         {RoleCustomer, RoleAdmin},
	JobStatusRFQSent:                  {RoleServiceAdvisor, RoleAdmin},
	JobStatusQuotesReceived:           {RoleServiceAdvisor, RoleAdmin},
	JobStatusAwaitingPartsApproval:    {RoleServiceAdvisor, RoleAdmin},
	JobStatusPartsApproved:            {RoleCustomer, RoleAdmin},
	JobStatusAwaitingPayment:          {RoleServiceAdvisor, RoleAdmin},
	JobStatusPartiallyPaid:            {RoleServiceAdvisor, RoleAdmin},
	JobStatusPaid:                     {RoleServiceAdvisor, RoleAdmin},
	JobStatusPartsOrdered:             {RoleServiceAdvisor, RoleAdmin},
	JobStatusPartsReceived:            {RoleServiceAdvisor, RoleAdmin},
	JobStatusInService:                staffRoles,
	JobStatusTesting:                  staffRoles,
	JobStatusReady:                    staffRoles,
	JobStatusOutForDelivery:           {RoleDriver, RoleServiceAdvisor, RoleAdmin},
	JobStatusDelivered:                {RoleDriver, RoleAdmin},
	JobStatusClosed:                   {RoleServiceAdvisor, RoleAdmin},
}

// RequiresJobCustomer reports whether the target is a customer approval gate
// that must be triggered by the job's own customer (admin may override).
func RequiresJobCustomer(target JobStatus) bool {
	return target == JobStatusEstimateApproved || target == JobStatusPartsApproved
}

func roleAllowed(target JobStatus, role Role) bool {
	for _, r := range transitionRoles[target] {
		if r == role {
			return true
		}
	}
	return false
}

func transitionListed(current, target JobStatus) bool {
	for _, t := range validTransitions[current] {
		if t == target {
			return true
		}
	}
	return false
}

// CheckTransition validates a requested status change against the current
// job state and the acting identity. It returns the rejection code that a
// caller must surface, or "" when the transition is legal.
func (j *JobCard) CheckTransition(target JobStatus, actor Actor) RejectionCode {
	if j.Status.Terminal() {
		return RejectionJobTerminal
	}
	if !target.Valid() || target == JobStatusCancelled || !transitionListed(j.Status, target) {
		return RejectionInvalidTransition
	}
	if !roleAllowed(target, actor.Role) {
		return RejectionRoleNotAuthorized
	}
	if RequiresJobCustomer(target) && actor.Role == RoleCustomer && actor.ID != j.CustomerID {
		return RejectionRoleNotAuthorized
	}

	switch target {
	case JobStatusVehiclePicked:
		// Drop-off jobs never pass through the pickup leg.
		if j.IntakeType != IntakeTypePickup {
			return RejectionInvalidTransition
		}
	case JobStatusInIntake:
		// Pickup jobs must go through vehicle_picked first.
		if j.Status == JobStatusScheduled && j.IntakeType == IntakeTypePickup {
			return RejectionInvalidTransition
		}
	case JobStatusEstimateApproved:
		if j.EstimateApproved != ApprovalApproved {
			return RejectionApprovalGateUnmet
		}
	case JobStatusRFQSent:
		if !j.NeedsParts {
			return RejectionInvalidTransition
		}
	case JobStatusQuotesReceived:
		if j.Status == JobStatusRFQSent && j.RFQID == "" {
			return RejectionInvalidTransition
		}
	case JobStatusAwaitingPayment:
		// The no-parts skip goes straight from estimate approval to payment.
		if j.Status == JobStatusEstimateApproved && j.NeedsParts {
			return RejectionInvalidTransition
		}
	case JobStatusPartsApproved:
		if j.PartsApproved != ApprovalApproved {
			return RejectionApprovalGateUnmet
		}
	case JobStatusPaid:
		if !j.BalanceDue.IsZero() {
			return RejectionPaymentGateUnmet
		}
	case JobStatusPartiallyPaid:
		if !j.AmountPaid.GreaterThan(decimal.Zero) || j.BalanceDue.IsZero() {
			return RejectionPaymentGateUnmet
		}
	case JobStatusPartsOrdered:
		if !j.NeedsParts {
			return RejectionInvalidTransition
		}
	case JobStatusInService:
		if j.Status == JobStatusPaid && j.NeedsParts {
			return RejectionInvalidTransition
		}
	}
	return ""
}

// CanCancel applies the cancellation policy: admin from any non-terminal
// state, the job's own customer only before service work begins.
func (j *JobCard) CanCancel(actor Actor) RejectionCode {
	if j.Status.Terminal() {
		return RejectionJobTerminal
	}
	switch actor.Role {
	case RoleAdmin:
		return ""
	case RoleCustomer:
		if actor.ID != j.CustomerID {
			return RejectionRoleNotAuthorized
		}
		if j.Status.Rank() >= JobStatusInService.Rank() {
			return RejectionRoleNotAuthorized
		}
		return ""
	default:
		return RejectionRoleNotAuthorized
	}
}

// ValidTransitionsFrom exposes the forward targets for a status. Collaborators
// use it to render next-action menus; it makes no role or gate judgment.
func ValidTransitionsFrom(s JobStatus) []JobStatus {
	out := make([]JobStatus, len(validTransitions[s]))
	copy(out, validTransitions[s])
	return out
}
