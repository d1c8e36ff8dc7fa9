package repository

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

type UserRepository interface {
	GetUserByID(id int) (*domain.User, error)
	GetUserByEmail(email string) (*domain.User, error)
	ListUser() ([]*domain.User, error)
	CreateUser(user *domain.User) (*domain.User, error)
	UpdateUser(user *domain.User) error
	CountUsers() (int, error)
}

type userRepository struct {
	path  string
	mu    sync.RWMutex
	users map[int]*domain.User
}

type usersDocument struct {
	Users []*domain.User `json:"users"`
}

func NewUserRepository(path string) (UserRepository, error) {
	repo := &userRepository{
		path:  path,
		users: make(map[int]*domain.User),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, errors.Wrap(err, "erro ao ler o arquivo de usuários")
	}

	if len(data) > 0 {
		var doc usersDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.Wrap(err, "erro ao decodificar o arquivo de usuários")
		}
		for _, user := range doc.Users {
			repo.users[user.ID] = user
		}
	}

	return repo, nil
}

func (r *userRepository) persist() error {
	doc := usersDocument{Users: make([]*domain.User, 0, len(r.users))}
	for _, user := range r.users {
		doc.Users = append(doc.Users, user)
	}

	sort.Slice(doc.Users, func(i, j int) bool {
		return doc.Users[i].ID < doc.Users[j].ID
	})

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "erro ao serializar usuários")
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "erro ao criar diretório de dados")
		}
	}

	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return errors.Wrap(err, "erro ao gravar o arquivo de usuários")
	}

	return nil
}

func (r *userRepository) GetUserByID(id int) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, nil
}

func (r *userRepository) ListUser() ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	return users, nil
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	nextID := 1
	for id := range r.users {
		if id >= nextID {
			nextID = id + 1
		}
	}

	now := time.Now()
	user.ID = nextID
	user.CreatedAt = now
	user.UpdatedAt = now

	copied := *user
	r.users[user.ID] = &copied

	if err := r.persist(); err != nil {
		delete(r.users, user.ID)
		return nil, err
	}

	return user, nil
}

func (r *userRepository) UpdateUser(user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return errors.Errorf("usuário não encontrado: %d", user.ID)
	}

	user.UpdatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied

	return r.persist()
}

func (r *userRepository) CountUsers() (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users), nil
}
