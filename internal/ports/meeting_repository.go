package ports

import (
	"context"

	"github.com/bnema/meetroom-cli/internal/domain"
)

type MeetingRepository interface {
	GetByID(ctx context.Context, id domain.MeetingID) (domain.Meeting, error)
	List(ctx context.Context) ([]domain.Meeting, error)
	Save(ctx context.Context, meeting domain.Meeting) error
	Delete(ctx context.Context, id domain.MeetingID) error
}
