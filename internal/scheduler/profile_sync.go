package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
)

// ProfileSyncConfig representa a configuração do agendador de perfis de clientes
type ProfileSyncConfig struct {
	CronSchedule   string
	RequestDelayMS int
	SyncEnabled    bool
}

// ProfileSyncService gera perfis para os clientes da planilha que ainda não
// têm a coluna de perfil preenchida e grava o resultado de volta
type ProfileSyncService struct {
	scheduler           *gocron.Scheduler
	config              ProfileSyncConfig
	appConfig           *config.Config
	customerRepo        repository.CustomerRepository
	generator           openai.ContentGenerator
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewProfileSyncService cria uma nova instância do serviço de sincronização de perfis
func NewProfileSyncService(
	customerRepo repository.CustomerRepository,
	generator openai.ContentGenerator,
	appConfig *config.Config,
) *ProfileSyncService {
	syncConfig := ProfileSyncConfig{
		CronSchedule:   appConfig.ProfileSync.CronSchedule,
		RequestDelayMS: appConfig.ProfileSync.RequestDelayMS,
		SyncEnabled:    appConfig.ProfileSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":    syncConfig.CronSchedule,
		"request_delay_ms": syncConfig.RequestDelayMS,
		"sync_enabled":     syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de perfis de clientes carregada")

	return &ProfileSyncService{
		scheduler:    scheduler,
		config:       syncConfig,
		appConfig:    appConfig,
		customerRepo: customerRepo,
		generator:    generator,
		syncRunning:  false,
	}
}

// Start inicia o agendador
func (s *ProfileSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de perfis de clientes desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de perfis de clientes")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncAllProfiles(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de perfis de clientes: %w", err)
	}

	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de perfis de clientes")
		s.scheduler.Stop()
	}()

	return nil
}

// syncAllProfiles percorre a planilha e gera perfil para cada cliente sem um.
// A falha de um cliente não interrompe os demais.
func (s *ProfileSyncService) syncAllProfiles(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de perfis já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização de perfis de clientes")

	customers, err := s.customerRepo.ListCustomers()
	if err != nil {
		logrus.WithError(err).Error("Erro ao ler a planilha de clientes para sincronização de perfis")
		return
	}

	profiles := make(map[string]string)
	generated := 0
	failed := 0

	for _, customer := range customers {
		if customer.Profile != "" {
			continue
		}

		profile, err := s.generator.GenerateCustomerProfile(ctx, customer)
		if err != nil {
			failed++
			logrus.WithFields(logrus.Fields{
				"customer_id": customer.ID,
				"error":       err.Error(),
			}).Error("Erro ao gerar perfil para cliente")
		} else {
			generated++
			profiles[customer.ID] = profile
		}

		// Aguardar antes da próxima requisição para evitar sobrecarga na API
		time.Sleep(time.Duration(s.config.RequestDelayMS) * time.Millisecond)
	}

	if len(profiles) > 0 {
		if err := s.customerRepo.UpdateProfiles(profiles); err != nil {
			logrus.WithError(err).Error("Erro ao gravar perfis gerados na planilha de clientes")
			return
		}
	}

	duration := time.Since(startTime)
	logrus.WithFields(logrus.Fields{
		"duration":  duration.String(),
		"customers": len(customers),
		"generated": generated,
		"failed":    failed,
	}).Info("Sincronização de perfis de clientes concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma sincronização de perfis
func (s *ProfileSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de perfis já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de perfis de clientes")
	go s.syncAllProfiles(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *ProfileSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_request_delay_ms":  s.config.RequestDelayMS,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
