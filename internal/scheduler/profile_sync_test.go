package scheduler

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	openaimocks "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/mocks"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository/mocks"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestProfileSyncService_syncAllProfiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	generator := openaimocks.NewMockContentGenerator(ctrl)

	service := &ProfileSyncService{
		config:       ProfileSyncConfig{RequestDelayMS: 0, SyncEnabled: true},
		customerRepo: customerRepo,
		generator:    generator,
	}

	customers := []domain.Customer{
		{ID: "c1", FirstName: "Ana", Profile: ""},
		{ID: "c2", FirstName: "Bruno", Profile: "perfil já existente"},
		{ID: "c3", FirstName: "Carla", Profile: ""},
		{ID: "c4", FirstName: "Davi", Profile: ""},
	}

	customerRepo.EXPECT().ListCustomers().Return(customers, nil)

	// Apenas clientes sem perfil passam pela geração; a falha de um não
	// interrompe os demais
	generator.EXPECT().
		GenerateCustomerProfile(gomock.Any(), customers[0]).
		Return("perfil gerado para Ana", nil)
	generator.EXPECT().
		GenerateCustomerProfile(gomock.Any(), customers[2]).
		Return("", fmt.Errorf("provedor de IA indisponível"))
	generator.EXPECT().
		GenerateCustomerProfile(gomock.Any(), customers[3]).
		Return("perfil gerado para Davi", nil)

	customerRepo.EXPECT().
		UpdateProfiles(gomock.Any()).
		DoAndReturn(func(profiles map[string]string) error {
			assert.Len(t, profiles, 2)
			assert.Equal(t, "perfil gerado para Ana", profiles["c1"])
			assert.Equal(t, "perfil gerado para Davi", profiles["c4"])
			_, hasFailed := profiles["c3"]
			assert.False(t, hasFailed)
			return nil
		})

	service.syncAllProfiles(context.Background())

	assert.False(t, service.lastSyncCompletedAt.IsZero())
}

func TestProfileSyncService_syncAllProfiles_TodosComPerfil(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	customerRepo := mocks.NewMockCustomerRepository(ctrl)
	generator := openaimocks.NewMockContentGenerator(ctrl)

	service := &ProfileSyncService{
		config:       ProfileSyncConfig{SyncEnabled: true},
		customerRepo: customerRepo,
		generator:    generator,
	}

	customerRepo.EXPECT().ListCustomers().Return([]domain.Customer{
		{ID: "c1", Profile: "perfil"},
	}, nil)

	// Nenhuma geração e nenhuma escrita na planilha
	service.syncAllProfiles(context.Background())
}

func TestProfileSyncService_GetStatus(t *testing.T) {
	service := &ProfileSyncService{
		config: ProfileSyncConfig{
			CronSchedule:   "0 2 * * *",
			RequestDelayMS: 500,
			SyncEnabled:    true,
		},
	}

	status := service.GetStatus()
	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 2 * * *", status["sync_cron"])
	assert.Equal(t, 500, status["sync_request_delay_ms"])
}
