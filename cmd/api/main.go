package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/integrator/resend/resendclient"
	"github.com/vfg2006/nudge-marketing-api/infrastructure/repository"
	"github.com/vfg2006/nudge-marketing-api/internal/api"
	"github.com/vfg2006/nudge-marketing-api/internal/config"
	"github.com/vfg2006/nudge-marketing-api/internal/scheduler"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/authenticating"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/campaigning"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/cataloging"
	"github.com/vfg2006/nudge-marketing-api/internal/usecases/matching"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	productRepo, err := repository.NewProductRepository(cfg.Catalog.ProductsFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o arquivo de produtos")
	}

	userRepo, err := repository.NewUserRepository(cfg.Catalog.UsersFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao abrir o arquivo de usuários")
	}

	customerRepo := repository.NewCustomerRepository(cfg.Customers.SpreadsheetFile, cfg.Customers.SheetName)

	authenticator := authenticating.NewService(userRepo, cfg)

	// Garante um administrador inicial quando o arquivo de usuários está vazio
	if err := authenticator.BootstrapAdmin(); err != nil {
		logrus.WithError(err).Fatal("Erro ao garantir usuário administrador inicial")
	}

	openaiClient := openaiclient.NewClient(cfg)
	generator := openai.New(cfg, openaiClient)

	resendClient := resendclient.NewClient(cfg)
	sender := resend.New(cfg, resendClient)

	catalogService := cataloging.NewService(productRepo, cfg)
	matcherService := matching.NewService(cfg, generator)

	previewCache := campaigning.NewPreviewCache(cfg.Preview.CacheTTL())
	dispatcher := campaigning.NewService(cfg, generator, sender, previewCache)

	// Inicializa o agendador de perfis de clientes
	profileSyncService := scheduler.NewProfileSyncService(customerRepo, generator, cfg)

	if err := profileSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de perfis de clientes")
	} else {
		logrus.Info("Agendador de sincronização de perfis de clientes iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		catalogService,
		matcherService,
		dispatcher,
		generator,
		customerRepo,
		authenticator,
		profileSyncService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
