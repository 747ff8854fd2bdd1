package main

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mint-agent-backend/internal/common/config"
	"mint-agent-backend/internal/common/logger"
	"mint-agent-backend/internal/common/middleware"
	"mint-agent-backend/internal/common/validation"
	"mint-agent-backend/internal/domain/collection"
	collectionsvc "mint-agent-backend/internal/features/collection/service"
	minthttp "mint-agent-backend/internal/features/mint/delivery/http"
	journalredis "mint-agent-backend/internal/features/mint/repository/redis"
	mintservice "mint-agent-backend/internal/features/mint/service"
	proofsvc "mint-agent-backend/internal/features/proof/service"
	"mint-agent-backend/internal/platform/ledger"
	redisplatform "mint-agent-backend/internal/platform/redis"
	"mint-agent-backend/internal/service/signer"
)

const serviceName = "mint-agent"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(serviceName, cfg.Debug)

	network := cfg.Network()
	logger.Info().
		Str("network", network.Name).
		Int64("chain_id", network.ChainID).
		Str("collection_type", cfg.Collection.Variant).
		Bool("api_dev", cfg.API.Dev).
		Msg("Starting mint agent")

	target, err := buildTarget(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid collection config")
	}

	client, err := ledger.Dial(ctx, cfg.Chain.RPCURL, cfg.ChainID())
	if err != nil {
		logger.Fatal().Err(err).Str("rpc_url", cfg.Chain.RPCURL).Msg("Failed to connect to chain")
	}
	defer client.Close()

	var (
		wallet    ledger.Wallet
		kitWallet mintservice.Wallet
	)
	if cfg.Chain.PrivateKey != "" {
		keyed, err := ledger.NewKeyedWallet(cfg.Chain.PrivateKey, cfg.ChainID())
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to load wallet")
		}
		wallet, kitWallet = keyed, keyed
		logger.Info().Str("wallet", keyed.Address().Hex()).Msg("Wallet connected")
	} else {
		logger.Warn().Msg("PRIVATE_KEY is not set, mint attempts will fail with a missing wallet")
	}

	contract, err := ledger.NewContract(client, target.ContractAddress, target.Variant, wallet)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to bind collection contract")
	}

	resolver, err := proofsvc.NewResolver(target.Variant, proofsvc.Options{
		APIBaseURL:   cfg.APIBaseURL(),
		CollectionID: target.CollectionID,
		WhitelistURL: cfg.Collection.WhitelistURL,
		Timeout:      cfg.APITimeout(),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to configure proof resolver")
	}

	deps := mintservice.Deps{
		Ledger:   contract,
		Wallet:   kitWallet,
		Resolver: resolver,
		Balances: client,
	}
	if target.Variant == collection.VideoAsset {
		deps.Authorizer = signer.NewService(cfg.APIBaseURL(), cfg.APITimeout())
	}

	var rdb *redisplatform.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisplatform.Open(ctx, redisplatform.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		deps.Journal = journalredis.NewJournal(rdb.Client, cfg.Redis.Stream)
		logger.Info().Str("stream", cfg.Redis.Stream).Msg("Mint journal enabled")
	}

	kit, err := mintservice.NewKit(ctx, target, deps)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load collection")
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	minthttp.NewMintHandler(kit).RegisterRoutes(router.Group("/api/v1"))
	setupProbes(router, cfg, client, rdb)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	logger.Info().Msg("Server exited")
}

func buildTarget(cfg *config.Config) (collectionsvc.Target, error) {
	variant, err := collection.ParseVariant(cfg.Collection.Variant)
	if err != nil {
		return collectionsvc.Target{}, err
	}
	if cfg.Collection.Address != "" {
		if err := validation.ValidateAddress(cfg.Collection.Address); err != nil {
			return collectionsvc.Target{}, err
		}
	}
	if cfg.Collection.ID != "" {
		if err := validation.ValidateCollectionID(cfg.Collection.ID); err != nil {
			return collectionsvc.Target{}, err
		}
	}
	if err := validation.ValidateURL(cfg.Collection.WhitelistURL, "WHITELIST_URL"); err != nil {
		return collectionsvc.Target{}, err
	}
	return collectionsvc.Target{
		ContractAddress: common.HexToAddress(cfg.Collection.Address),
		CollectionID:    cfg.Collection.ID,
		Variant:         variant,
		AssetID:         cfg.Collection.AssetID,
	}, nil
}

func setupProbes(router *gin.Engine, cfg *config.Config, chain interface {
	ChainID(ctx context.Context) (*big.Int, error)
}, rdb *redisplatform.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
			"network":   cfg.Network().Name,
		})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ledger.CheckNetwork(ctx, chain, cfg.ChainID()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "chain unavailable",
				"details": err.Error(),
			})
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})
}
