package services

import "context"

// WorkflowAction names a permissioned transfer operation.
type WorkflowAction string

const (
	ActionCreate  WorkflowAction = "transfer:create"
	ActionSubmit  WorkflowAction = "transfer:submit"
	ActionApprove WorkflowAction = "transfer:approve"
	ActionReject  WorkflowAction = "transfer:reject"
	ActionIssue   WorkflowAction = "transfer:issue"
	ActionReceive WorkflowAction = "transfer:receive"
	ActionCancel  WorkflowAction = "transfer:cancel"
	ActionRead    WorkflowAction = "transfer:read"
)

// AuthorizationSvcFacade is the external policy hook. Who may approve
// versus who may issue is decided outside this core; implementations fail
// with ErrForbidden to deny.
type AuthorizationSvcFacade interface {
	AuthorizeAction(ctx context.Context, userID string, action WorkflowAction) error
}
