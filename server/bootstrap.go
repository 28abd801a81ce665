package server

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/gym"
	"github.com/jrsteele09/go-gym-server/memberships"
	"github.com/jrsteele09/go-gym-server/users"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type SeedMembership struct {
	Sign     string  `yaml:"sign"`
	Fee      float64 `yaml:"fee"`
	TypeName string  `yaml:"typeName"`
	Plan     string  `yaml:"plan"`
}

type SeedAdmin struct {
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
}

// Seed is the reference data written on every start. Existing rows are kept.
type Seed struct {
	Memberships []SeedMembership `yaml:"memberships"`
	Rooms       []string         `yaml:"rooms"`
	Admin       SeedAdmin        `yaml:"admin"`
}

// LoadSeed reads the seed at path, or the embedded default when path is empty.
func LoadSeed(path string) (*Seed, error) {
	data := defaultSeed
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("[LoadSeed] read %s: %w", path, err)
		}
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("[LoadSeed] parse: %w", err)
	}
	return &seed, nil
}

// InitialiseSystem seeds membership types, rooms and the admin identity.
// Running it against an already seeded store changes nothing.
func (s *Server) InitialiseSystem(ctx context.Context) error {
	log.Info().Msg("🔧 Bootstrap: Checking system configuration...")

	seed, err := LoadSeed(s.config.GetSeedFile())
	if err != nil {
		return err
	}

	created, err := s.seedMemberships(ctx, seed.Memberships)
	if err != nil {
		return fmt.Errorf("failed to seed membership types: %w", err)
	}
	rooms, err := s.seedRooms(ctx, seed.Rooms)
	if err != nil {
		return fmt.Errorf("failed to seed rooms: %w", err)
	}
	adminCreated, err := s.seedAdmin(ctx, seed.Admin)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	log.Info().
		Int("memberships", created).
		Int("rooms", rooms).
		Bool("admin", adminCreated).
		Msg("✅ Bootstrap complete")
	return nil
}

func (s *Server) seedMemberships(ctx context.Context, seeds []SeedMembership) (int, error) {
	created := 0
	for _, m := range seeds {
		t := &memberships.Type{Sign: m.Sign, Fee: m.Fee, TypeName: m.TypeName, Plan: m.Plan}
		if err := t.Validate(); err != nil {
			return created, fmt.Errorf("membership %q: %w", m.Sign, err)
		}
		err := s.deps.Memberships.Insert(ctx, t)
		switch {
		case err == nil:
			created++
		case apperrors.Is(err, apperrors.ErrAlreadyExists):
		default:
			return created, err
		}
	}
	return created, nil
}

// seedRooms matches rooms by name since room IDs are assigned by the store.
func (s *Server) seedRooms(ctx context.Context, names []string) (int, error) {
	existing, err := s.deps.Gym.ListRooms(ctx)
	if err != nil {
		return 0, err
	}
	have := make(map[string]bool, len(existing))
	for _, room := range existing {
		have[room.RoomName] = true
	}

	created := 0
	for _, name := range names {
		if have[name] {
			continue
		}
		if err := s.deps.Gym.CreateRoom(ctx, &gym.Room{RoomName: name}); err != nil {
			return created, fmt.Errorf("room %q: %w", name, err)
		}
		have[name] = true
		created++
	}
	return created, nil
}

func (s *Server) seedAdmin(ctx context.Context, admin SeedAdmin) (bool, error) {
	ssn := s.config.GetAdminSSN()
	_, err := s.deps.Users.Get(ctx, ssn)
	if err == nil {
		return false, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}

	hash, err := s.deps.Credentials.Hash(s.config.GetAdminPassword())
	if err != nil {
		return false, err
	}
	user := &users.User{
		SSN:            ssn,
		FirstName:      admin.FirstName,
		LastName:       admin.LastName,
		PasswordHash:   hash,
		MembershipType: users.AdminMembership,
	}
	if err := s.deps.Users.Insert(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	log.Warn().Str("ssn", ssn).Msg("👤 Created the admin identity, change its password before going live")
	return true, nil
}
