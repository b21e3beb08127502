package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dbconnmanager/bootstrap"
	"dbconnmanager/config"
	"dbconnmanager/controllers"
	_ "dbconnmanager/docs"
	"dbconnmanager/pkg/logger"
	"dbconnmanager/repository"
	"dbconnmanager/services"
	"dbconnmanager/services/dbclient"
	"dbconnmanager/services/notice"
	"dbconnmanager/services/sandbox"
	"dbconnmanager/utils"

	"github.com/spf13/cobra"
)

// @title           dbconnmanager
// @version         1.0
// @description     External database connection manager: stores connection credentials, tests them and renders read-only query results.

// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	checkID   uint
	tokenUser string
	tokenRole string
	tokenTTL  time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dbconnmanager",
		Short: "External database connection manager",
		Long: `dbconnmanager stores external MySQL and MongoDB connection records,
tests them on demand and renders read-only query results as HTML.

  dbconnmanager serve         Run the HTTP API (default)
  dbconnmanager migrate       Create or update the record store schema
  dbconnmanager check --id N  Test the stored credentials of one record
  dbconnmanager token         Issue an admin bearer token`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newCheckCmd(),
		newTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the record store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			return bootstrap.LoadData(repository.NewBaseRepository())
		},
	}
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Test the stored credentials of one connection record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			mysqlClient, mongoClient := newClients()
			svc := services.NewConnectionTestService(mysqlClient, mongoClient)

			result, err := svc.TestConnection(cmd.Context(), checkID)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			if !result.Success {
				os.Exit(2)
			}
			return nil
		},
	}
	cmd.Flags().UintVar(&checkID, "id", 0, "connection record id")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin bearer token signed with AUTH_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadConfig(); err != nil {
				return fmt.Errorf("LoadConfig error: %w", err)
			}
			role := tokenRole
			if role == "" {
				role = config.Cfg.AuthAdminRole
			}
			token, err := utils.IssueToken([]byte(config.Cfg.AuthJWTSecret), tokenUser, role, tokenTTL)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&tokenUser, "user", "admin", "token subject")
	cmd.Flags().StringVar(&tokenRole, "role", "", "token role (default AUTH_ADMIN_ROLE)")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

// setup loads config, initializes the logger and connects the record store.
func setup() error {
	// 1) Load config
	if err := config.LoadConfig(); err != nil {
		return fmt.Errorf("LoadConfig error: %w", err)
	}

	// 2) Init structured logger with config
	logLevel := logger.ParseLogLevel(config.Cfg.LogLevel)
	logger.InitWithConfig(
		config.Cfg.LogFile,
		logLevel,
		config.Cfg.LogMaxSize,
		config.Cfg.LogMaxBackups,
		config.Cfg.LogMaxAge,
		config.Cfg.LogCompress,
	)

	// 3) Connect DB (GORM)
	if err := config.ConnectDB(); err != nil {
		return fmt.Errorf("ConnectDB error: %w", err)
	}
	if config.DB == nil {
		return errors.New("database is nil after ConnectDB")
	}
	return nil
}

func newClients() (dbclient.MySQLClient, dbclient.MongoClient) {
	mysqlClient := dbclient.NewMySQLClient(config.Cfg.ConnectTimeout)
	if !config.Cfg.MongoEnabled {
		logger.Warnf("MongoDB support disabled, MongoDB records will report the driver as not configured")
		return mysqlClient, dbclient.NewUnavailableMongoClient()
	}
	return mysqlClient, dbclient.NewMongoClient(config.Cfg.ConnectTimeout)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := setup(); err != nil {
		log.Printf("[ERROR] %v", err)
		return err
	}
	logger.Infof("Starting dbconnmanager with log level: %s", config.Cfg.LogLevel)

	if err := bootstrap.LoadData(repository.NewBaseRepository()); err != nil {
		return fmt.Errorf("load data error: %w", err)
	}

	var sb *sandbox.MySQL
	if config.Cfg.SandboxMySQLEnabled {
		var err error
		sb, _, err = bootstrap.StartSandbox(ctx, repository.NewDBConnectionRepository(), config.Cfg.SandboxMySQLDatabase)
		if err != nil {
			return err
		}
		defer sb.Close()
	}

	if config.Cfg.AuthJWTSecret == "" {
		logger.Warnf("AUTH_JWT_SECRET is empty, every admin request will be rejected")
	}

	mysqlClient, mongoClient := newClients()
	notices := notice.NewNoticeService(config.Cfg.NoticeTTL)

	controllers.SetDBConnectionService(services.NewDBConnectionService(notices))
	controllers.SetQueryService(services.NewQueryService(mysqlClient, mongoClient, config.Cfg.QueryDefaultLimit), config.Cfg.QueryDefaultLimit)
	controllers.SetNoticeService(notices)

	router := controllers.SetupRouter(controllers.RouterConfig{
		JWTSecret:      []byte(config.Cfg.AuthJWTSecret),
		AdminRole:      config.Cfg.AuthAdminRole,
		ConnectionTest: services.NewConnectionTestService(mysqlClient, mongoClient),
	})

	srv := &http.Server{
		Addr:    "0.0.0.0:" + config.Cfg.Port,
		Handler: router,
	}

	// Setup signal handling for graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server at port %s", config.Cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Errorf("HTTP server failed: %v", err)
			return err
		}
	case <-sigCtx.Done():
		logger.Infof("Received shutdown signal, stopping HTTP server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
		return err
	}

	logger.Infof("Application shutdown complete")
	return nil
}
