package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/smallbiznis/whateat/internal/catalog/domain"
)

type Service interface {
	// Draw runs quota check, selection and commit for one user. Quota
	// exhaustion and an empty eligible set are reported through Result.
	Draw(ctx context.Context, userID snowflake.ID, filter catalogdomain.Filter) (*Result, error)
}

var (
	ErrDrawInProgress = errors.New("draw_in_progress")
	ErrUnknownUser    = errors.New("unknown_user")
)
