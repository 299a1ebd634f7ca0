package common

import (
	"github.com/malithjkd/ai-project-manager/internal/config"
	pkgHTTP "github.com/malithjkd/ai-project-manager/pkg/http"
	"go.uber.org/zap"
)

func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger, extraOpts ...pkgHTTP.HttpOpts) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
	}
	if cfg.Token != "" {
		opts = append(opts, pkgHTTP.WithAuthToken(cfg.Token))
	}
	opts = append(opts, extraOpts...)

	return pkgHTTP.NewConnector(connCfg, opts...)
}
