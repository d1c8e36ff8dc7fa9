package authenticating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &domain.User{
		ID:           1,
		Name:         "Ana",
		Lastname:     "Silva",
		Email:        "ana@example.com",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       1,
	}
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(repo *mocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "Login com sucesso emite token válido",
			email:    "ana@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@example.com").Return(testUser(t, "Senha@123"), nil)
			},
		},
		{
			name:     "Senha incorreta",
			email:    "ana@example.com",
			password: "errada",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ana@example.com").Return(testUser(t, "Senha@123"), nil)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			name:     "Usuário desativado",
			email:    "ana@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				user := testUser(t, "Senha@123")
				user.Active = false
				repo.EXPECT().GetUserByEmail("ana@example.com").Return(user, nil)
			},
			wantErr: ErrUserDisabled,
		},
		{
			name:     "Usuário inexistente",
			email:    "ninguem@example.com",
			password: "Senha@123",
			setup: func(repo *mocks.MockUserRepository) {
				repo.EXPECT().GetUserByEmail("ninguem@example.com").Return(nil, nil)
			},
			wantErr: ErrUserNotFound,
		},
		{
			name:     "Campos obrigatórios ausentes",
			email:    "",
			password: "",
			setup:    func(repo *mocks.MockUserRepository) {},
			wantErr:  ErrMissingRequiredData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			service := NewService(repo, cfg)
			token, err := service.LoginUser(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				assert.Empty(t, token)
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, token)

			// O token emitido deve validar com a mesma chave
			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, 1, claims.UserID)
			assert.Equal(t, "ana@example.com", claims.UserEmail)
		})
	}
}

func TestService_ValidateToken_ChaveErrada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().GetUserByEmail(gomock.Any()).Return(testUser(t, "Senha@123"), nil)

	issuer := NewService(repo, &config.Config{SecretKey: "chave-a"})
	token, err := issuer.LoginUser("ana@example.com", "Senha@123")
	require.NoError(t, err)

	validator := NewService(mocks.NewMockUserRepository(ctrl), &config.Config{SecretKey: "chave-b"})
	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestService_BootstrapAdmin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	t.Run("Arquivo vazio cria administrador ativo", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().CountUsers().Return(0, nil)
		repo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.Equal(t, 1, user.RoleID)
				assert.True(t, user.Active)
				assert.NotEmpty(t, user.PasswordHash)
				user.ID = 1
				return user, nil
			})

		service := NewService(repo, cfg)
		require.NoError(t, service.BootstrapAdmin())
	})

	t.Run("Usuários existentes não criam nada", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().CountUsers().Return(3, nil)

		service := NewService(repo, cfg)
		require.NoError(t, service.BootstrapAdmin())
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := &config.Config{SecretKey: "segredo-de-teste"}

	t.Run("Email já cadastrado", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByEmail("ana@example.com").Return(testUser(t, "Senha@123"), nil)

		service := NewService(repo, cfg)
		_, err := service.CreateUser(&domain.User{
			Name: "Ana", Lastname: "Silva", Email: "Ana@Example.com", PasswordHash: "Senha@123",
		})
		assert.True(t, errors.Is(err, ErrUserAlreadyExists))
	})

	t.Run("Usuário novo nasce inativo com role padrão e senha com hash", func(t *testing.T) {
		repo := mocks.NewMockUserRepository(ctrl)
		repo.EXPECT().GetUserByEmail("bruno@example.com").Return(nil, nil)
		repo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.Equal(t, 3, user.RoleID)
				assert.False(t, user.Active)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@123")))
				user.ID = 2
				return user, nil
			})

		service := NewService(repo, cfg)
		created, err := service.CreateUser(&domain.User{
			Name: "Bruno", Lastname: "Souza", Email: " Bruno@Example.com ", PasswordHash: "Senha@123",
		})
		require.NoError(t, err)
		assert.Equal(t, "bruno@example.com", created.Email)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	assert.Error(t, service.ValidatePasswordStrength("curta"))
	assert.Error(t, service.ValidatePasswordStrength("semnumero!A"))
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula1!"))
	assert.Error(t, service.ValidatePasswordStrength("SEMMINUSCULA1!"))
	assert.Error(t, service.ValidatePasswordStrength("SemEspecial123"))
	assert.NoError(t, service.ValidatePasswordStrength("Senha@123"))
}

func TestGenerateStrongPassword(t *testing.T) {
	service := &Service{cfg: &config.Config{}}

	for i := 0; i < 10; i++ {
		password, err := generateStrongPassword(12)
		require.NoError(t, err)
		assert.Len(t, password, 12)

		// Toda senha gerada passa na própria validação de força
		assert.NoError(t, service.ValidatePasswordStrength(password))
	}
}
