package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
	"github.com/google/uuid"
)

var ErrMeetingExists = errors.New("meeting already exists")

type MeetingService struct {
	repo  ports.MeetingRepository
	clock ports.Clock
	newID func() string
}

func NewMeetingService(repo ports.MeetingRepository, clock ports.Clock) *MeetingService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &MeetingService{
		repo:  repo,
		clock: clock,
		newID: uuid.NewString,
	}
}

func (s *MeetingService) Create(ctx context.Context, cmd CreateMeetingCommand) (domain.Meeting, error) {
	if cmd.DurationMinutes != nil && !(*cmd.DurationMinutes > 0) {
		return domain.Meeting{}, fmt.Errorf("%w: %v", domain.ErrInvalidDuration, *cmd.DurationMinutes)
	}

	id := domain.MeetingID(strings.TrimSpace(string(cmd.ID)))
	if id == "" {
		id = domain.MeetingID(s.newID())
	} else {
		_, err := s.repo.GetByID(ctx, id)
		switch {
		case err == nil:
			return domain.Meeting{}, fmt.Errorf("%w: %s", ErrMeetingExists, id)
		case !errors.Is(err, domain.ErrMeetingNotFound):
			return domain.Meeting{}, fmt.Errorf("get meeting by id: %w", err)
		}
	}

	meeting := domain.Meeting{
		ID:           id,
		Title:        strings.TrimSpace(cmd.Title),
		Window:       domain.NewSessionWindow(cmd.StartsAt, cmd.DurationMinutes),
		Personal:     cmd.Personal,
		Participants: cmd.Participants,
		CreatedAt:    s.clock.Now().UTC().Truncate(time.Second),
	}

	if err := s.repo.Save(ctx, meeting); err != nil {
		return domain.Meeting{}, fmt.Errorf("save meeting: %w", err)
	}

	return meeting, nil
}

func (s *MeetingService) Get(ctx context.Context, id domain.MeetingID) (domain.Meeting, error) {
	meeting, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Meeting{}, fmt.Errorf("get meeting by id: %w", err)
	}

	return meeting, nil
}

func (s *MeetingService) List(ctx context.Context) ([]domain.Meeting, error) {
	meetings, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}

	return meetings, nil
}

func (s *MeetingService) Remove(ctx context.Context, id domain.MeetingID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete meeting: %w", err)
	}

	return nil
}

func (s *MeetingService) SetParticipants(ctx context.Context, cmd SetParticipantsCommand) error {
	meeting, err := s.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return fmt.Errorf("get meeting by id: %w", err)
	}

	meeting.Participants = cmd.Participants

	if err := s.repo.Save(ctx, meeting); err != nil {
		return fmt.Errorf("save meeting participants: %w", err)
	}

	return nil
}
