package matching

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	openaidomain "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/domain"
	openaimocks "github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/mocks"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestService_MatchAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	service := &Service{generator: generator, requestDelay: 0}

	customers := []domain.Customer{
		{ID: "c1", FirstName: "Ana", Email: "ana@example.com"},
		{ID: "c2", FirstName: "Bruno", Email: "bruno@example.com"},
		{ID: "c3", FirstName: "Carla", Email: "carla@example.com"},
	}

	products := []*domain.Product{
		{ID: "cdb-01", Name: "CDB Prefixado", Status: domain.ProductStatusActive},
		{ID: "cred-01", Name: "Crédito Pessoal", Status: domain.ProductStatusActive},
	}

	// c1 recebe recomendação, c2 falha no provedor, c3 recebe recomendação
	gomock.InOrder(
		generator.EXPECT().
			GenerateRecommendation(gomock.Any(), customers[0], products).
			Return(&openaidomain.Recommendation{ProductID: "cdb-01", Confidence: 0.9, Rationale: "perfil conservador"}, nil),
		generator.EXPECT().
			GenerateRecommendation(gomock.Any(), customers[1], products).
			Return(nil, fmt.Errorf("provedor de IA indisponível")),
		generator.EXPECT().
			GenerateRecommendation(gomock.Any(), customers[2], products).
			Return(&openaidomain.Recommendation{ProductID: "cred-01", Confidence: 0.7, Rationale: "busca crédito"}, nil),
	)

	matches := service.MatchAll(context.Background(), customers, products)

	// Um match por cliente, na ordem de entrada
	assert.Len(t, matches, 3)
	assert.Equal(t, "c1", matches[0].Customer.ID)
	assert.Equal(t, "c2", matches[1].Customer.ID)
	assert.Equal(t, "c3", matches[2].Customer.ID)

	assert.True(t, matches[0].Success)
	assert.Equal(t, "cdb-01", matches[0].Product.ID)
	assert.Equal(t, 0.9, matches[0].Confidence)

	// A falha de um cliente não interrompe os demais
	assert.False(t, matches[1].Success)
	assert.Nil(t, matches[1].Product)
	assert.Contains(t, matches[1].Error, "provedor de IA indisponível")

	assert.True(t, matches[2].Success)
	assert.Equal(t, "cred-01", matches[2].Product.ID)
}

func TestService_MatchAll_SemClientes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	generator := openaimocks.NewMockContentGenerator(ctrl)
	service := &Service{generator: generator}

	matches := service.MatchAll(context.Background(), nil, nil)
	assert.Empty(t, matches)
}
