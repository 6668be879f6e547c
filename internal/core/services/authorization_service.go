package services

import (
	"context"
	"fmt"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	portssvc "github.com/mocustoms/store_transfer_app/internal/core/ports/services"
)

// authorizationService is the default policy: any authenticated user may
// perform any workflow action. Role separation (who approves, who issues)
// lives with the identity provider; deployments plug in a stricter
// implementation of AuthorizationSvcFacade to enforce it here.
type authorizationService struct{}

// NewAuthorizationService creates the default allow-authenticated policy.
func NewAuthorizationService() portssvc.AuthorizationSvcFacade {
	return &authorizationService{}
}

var _ portssvc.AuthorizationSvcFacade = (*authorizationService)(nil)

func (s *authorizationService) AuthorizeAction(ctx context.Context, userID string, action portssvc.WorkflowAction) error {
	if userID == "" {
		return fmt.Errorf("%w: action %s requires an authenticated user", apperrors.ErrForbidden, action)
	}
	return nil
}
