// Файл: pkg/utils/context_utils.go

package utils

import (
	"context"

	"equipment-panel/pkg/constants"
	"equipment-panel/pkg/contextkeys"
	apperrors "equipment-panel/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || id == 0 {
		return 0, apperrors.ErrUserNotFoundInContext
	}
	return id, nil
}

func GetUsernameFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(contextkeys.UsernameKey).(string)
	return name
}

func GetRoleFromCtx(ctx context.Context) constants.Role {
	role, _ := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	return role
}

func GetSessionIDFromCtx(ctx context.Context) string {
	sid, _ := ctx.Value(contextkeys.SessionIDKey).(string)
	return sid
}
