package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/meetroom-cli/internal/domain"
	"github.com/bnema/meetroom-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName         = "config"
	configType         = "toml"
	MeetingsPathKey    = "meetings.path"
	meetingsFileMode   = 0o600
	meetingsDirMode    = 0o700
	meetingsConfigDir  = ".meetroom"
	meetingsConfigFile = "meetings.toml"
	tempFilePattern    = ".meetings-*.toml.tmp"
)

type Repository struct {
	meetingsPath string
	mu           *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.MeetingRepository = (*Repository)(nil)

// NewRepository resolves the meetings file from cfg, reading
// ~/.meetroom/config.toml when present.
func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, meetingsConfigDir, meetingsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, meetingsConfigDir))
	cfg.SetDefault(MeetingsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	meetingsPath := cfg.GetString(MeetingsPathKey)
	if meetingsPath == "" {
		return nil, errors.New("meetings path is empty")
	}
	meetingsPath, err = normalizeMeetingsPath(meetingsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{meetingsPath: meetingsPath, mu: lockForPath(meetingsPath)}, nil
}

func (r *Repository) Path() string {
	return r.meetingsPath
}

func (r *Repository) Save(ctx context.Context, meeting domain.Meeting) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(meeting)
	updated := false
	for i := range file.Meetings {
		if file.Meetings[i].ID == encoded.ID {
			file.Meetings[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Meetings = append(file.Meetings, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByID(ctx context.Context, id domain.MeetingID) (domain.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return domain.Meeting{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Meeting{}, err
	}

	for _, entry := range file.Meetings {
		if entry.ID == string(id) {
			return fromSchema(entry), nil
		}
	}

	return domain.Meeting{}, domain.ErrMeetingNotFound
}

func (r *Repository) List(ctx context.Context) ([]domain.Meeting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	meetings := make([]domain.Meeting, 0, len(file.Meetings))
	for _, entry := range file.Meetings {
		meetings = append(meetings, fromSchema(entry))
	}

	return meetings, nil
}

func (r *Repository) Delete(ctx context.Context, id domain.MeetingID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	kept := file.Meetings[:0]
	found := false
	for _, entry := range file.Meetings {
		if entry.ID == string(id) {
			found = true
			continue
		}
		kept = append(kept, entry)
	}
	if !found {
		return domain.ErrMeetingNotFound
	}
	file.Meetings = kept

	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.meetingsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read meetings file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode meetings file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	if err := file.validateMeetings(); err != nil {
		return fileSchema{}, fmt.Errorf("validate meetings file: %w", err)
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.meetingsPath), meetingsDirMode); err != nil {
		return fmt.Errorf("create meetings directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode meetings file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.meetingsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp meetings file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp meetings file: %w", err)
	}

	if err := tempFile.Chmod(meetingsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp meetings file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp meetings file: %w", err)
	}

	if err := os.Rename(tempName, r.meetingsPath); err != nil {
		return fmt.Errorf("replace meetings file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeMeetingsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve meetings path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(meeting domain.Meeting) meetingSchema {
	participants := make([]participantSchema, 0, len(meeting.Participants))
	for _, participant := range meeting.Participants {
		participants = append(participants, participantSchema{ID: string(participant.ID), Name: participant.Name})
	}

	encoded := meetingSchema{
		ID:              string(meeting.ID),
		Title:           meeting.Title,
		DurationMinutes: meeting.Window.DurationMinutes,
		Personal:        meeting.Personal,
		CreatedAt:       formatTime(meeting.CreatedAt),
		Participants:    participants,
	}
	if meeting.Window.StartsAt != nil {
		encoded.StartsAt = formatTime(*meeting.Window.StartsAt)
	}

	return encoded
}

func fromSchema(meeting meetingSchema) domain.Meeting {
	var startsAt *time.Time
	if parsed := parseTime(meeting.StartsAt); !parsed.IsZero() {
		startsAt = &parsed
	}

	var participants domain.Roster
	for _, participant := range meeting.Participants {
		participants = append(participants, domain.Participant{
			ID:   domain.ParticipantID(participant.ID),
			Name: participant.Name,
		})
	}

	return domain.Meeting{
		ID:           domain.MeetingID(meeting.ID),
		Title:        meeting.Title,
		Window:       domain.NewSessionWindow(startsAt, meeting.DurationMinutes),
		Personal:     meeting.Personal,
		Participants: participants,
		CreatedAt:    parseTime(meeting.CreatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
