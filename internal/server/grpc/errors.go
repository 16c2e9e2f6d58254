package grpc

import (
	"errors"

	"github.com/dmitrijs2005/transkeeper/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err  error
	code codes.Code
}{
	// timeout first: a timed out call also wraps the collaborator error
	{common.ErrTimeout, codes.DeadlineExceeded},
	{common.ErrInvalidInput, codes.InvalidArgument},
	{common.ErrDuplicateUser, codes.AlreadyExists},
	{common.ErrorNotFound, codes.NotFound},
	{common.ErrInvalidCredentials, codes.Unauthenticated},
	{common.ErrInvalidToken, codes.Unauthenticated},
	{common.ErrTokenExpired, codes.Unauthenticated},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated},
	{common.ErrUnknownOwner, codes.FailedPrecondition},
	{common.ErrProtected, codes.FailedPrecondition},
	{common.ErrForbidden, codes.PermissionDenied},
	{common.ErrTranslation, codes.Unavailable},
	{common.ErrTTS, codes.Unavailable},
	{common.ErrSTT, codes.Unavailable},
	{common.ErrStorage, codes.Unavailable},
}

// toStatus maps a service error to a gRPC status. Unknown errors become
// codes.Internal without leaking their text.
func toStatus(err error) error {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return status.Error(ec.code, err.Error())
		}
	}
	return status.Error(codes.Internal, "internal error")
}
