package data

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/corkboard/corkboard/src/auth"
	"github.com/corkboard/corkboard/src/db"
	"github.com/corkboard/corkboard/src/models"
	"github.com/google/uuid"
)

// In-memory counterparts to the Postgres stores. They satisfy the same
// contracts, including the ones that matter for correctness: expired
// sessions stay in the map but never validate, and every note/pin
// operation is scoped by owner.

var _ auth.CredentialStore = &MemoryCredentialStore{}

type MemoryCredentialStore struct {
	mu     sync.Mutex
	nextID int
	users  map[int]models.User
	byName map[string]int
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		users:  make(map[int]models.User),
		byName: make(map[string]int),
	}
}

func (s *MemoryCredentialStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byName[strings.ToLower(username)]
	if !ok {
		return nil, db.NotFound
	}
	user := s.users[id]
	return &user, nil
}

func (s *MemoryCredentialStore) FindByID(ctx context.Context, id int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, db.NotFound
	}
	return &user, nil
}

func (s *MemoryCredentialStore) Create(ctx context.Context, username string, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(username)
	if _, taken := s.byName[key]; taken {
		return nil, auth.ErrUsernameTaken
	}

	s.nextID++
	user := models.User{
		ID:        s.nextID,
		Username:  username,
		Password:  passwordHash,
		CreatedAt: time.Now(),
	}
	s.users[user.ID] = user
	s.byName[key] = user.ID

	return &user, nil
}

var _ auth.SessionStore = &MemorySessionStore{}

type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]models.Session

	Users auth.CredentialStore

	// Overridable for tests that need to move time forward.
	Now func() time.Time
}

func NewMemorySessionStore(users auth.CredentialStore) *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]models.Session),
		Users:    users,
		Now:      time.Now,
	}
}

func (s *MemorySessionStore) Create(ctx context.Context, userID int) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	session := models.Session{
		ID:        auth.MakeSessionID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(auth.SessionDuration),
	}
	s.sessions[session.ID] = session

	return &session, nil
}

func (s *MemorySessionStore) Validate(ctx context.Context, sessionID string) (*models.Identity, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	now := s.Now()
	s.mu.Unlock()

	// An expired row stays in the map, but it must be indistinguishable
	// from an absent one.
	if !ok || !session.ExpiresAt.After(now) {
		return nil, auth.ErrNoSession
	}

	user, err := s.Users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, auth.ErrNoSession
	}

	return user.Identity(), nil
}

func (s *MemorySessionStore) Revoke(ctx context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	return existed, nil
}

var _ Notes = &MemoryNoteStore{}

type MemoryNoteStore struct {
	mu      sync.Mutex
	nextSeq int
	notes   map[string]models.Note
	seq     map[string]int
}

func NewMemoryNoteStore() *MemoryNoteStore {
	return &MemoryNoteStore{
		notes: make(map[string]models.Note),
		seq:   make(map[string]int),
	}
}

func (s *MemoryNoteStore) ListForUser(ctx context.Context, userID int) ([]*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Note{}
	for _, note := range s.notes {
		if note.UserID != userID {
			continue
		}
		note := note
		result = append(result, &note)
	}
	// newest first, matching the Postgres ORDER BY
	sort.Slice(result, func(i, j int) bool {
		return s.seq[result[i].ID] > s.seq[result[j].ID]
	})

	return result, nil
}

func (s *MemoryNoteStore) Fetch(ctx context.Context, userID int, noteID string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, db.NotFound
	}
	return &note, nil
}

func (s *MemoryNoteStore) Create(ctx context.Context, userID int, title string, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	note := models.Note{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	s.nextSeq++
	s.notes[note.ID] = note
	s.seq[note.ID] = s.nextSeq

	return &note, nil
}

func (s *MemoryNoteStore) Update(ctx context.Context, userID int, noteID string, title string, content string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return nil, db.NotFound
	}
	note.Title = title
	note.Content = content
	s.notes[noteID] = note

	return &note, nil
}

func (s *MemoryNoteStore) Delete(ctx context.Context, userID int, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.notes[noteID]
	if !ok || note.UserID != userID {
		return db.NotFound
	}
	delete(s.notes, noteID)
	delete(s.seq, noteID)

	return nil
}

var _ Pins = &MemoryPinStore{}

type MemoryPinStore struct {
	mu     sync.Mutex
	boards map[int]models.PinBoard
}

func NewMemoryPinStore() *MemoryPinStore {
	return &MemoryPinStore{
		boards: make(map[int]models.PinBoard),
	}
}

func (s *MemoryPinStore) Fetch(ctx context.Context, userID int) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board, ok := s.boards[userID]
	if !ok {
		return nil, db.NotFound
	}
	pins := make(json.RawMessage, len(board.Pins))
	copy(pins, board.Pins)

	return pins, nil
}

func (s *MemoryPinStore) Save(ctx context.Context, userID int, pins json.RawMessage) (*models.PinBoard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := models.PinBoard{
		UserID:    userID,
		Pins:      append(json.RawMessage{}, pins...),
		UpdatedAt: time.Now(),
	}
	s.boards[userID] = board

	return &board, nil
}
