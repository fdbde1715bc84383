package app

import (
	"context"
	"fmt"

	"github.com/samvad-hq/kernel-memory-client/internal/config"
	"github.com/samvad-hq/kernel-memory-client/internal/logger"
	"github.com/samvad-hq/kernel-memory-client/pkg/api/indexes"
	"github.com/samvad-hq/kernel-memory-client/pkg/httpclient"
	"github.com/samvad-hq/kernel-memory-client/pkg/kmclient"
	"github.com/samvad-hq/kernel-memory-client/pkg/types"
)

// IndexDeleter wires a configured service client to the delete-index endpoint.
type IndexDeleter struct {
	client *kmclient.Client
	log    logger.Logger
}

// NewIndexDeleter builds a client from cfg. transportLog may be nil.
func NewIndexDeleter(cfg *config.Config, log logger.Logger, transportLog httpclient.Logger) (*IndexDeleter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	opts := []kmclient.Option{
		kmclient.WithTimeout(cfg.Timeout),
		kmclient.WithHeaders(cfg.Headers),
		kmclient.WithVerifySSL(cfg.VerifySSL),
		kmclient.WithFollowRedirects(cfg.FollowRedirects),
		kmclient.WithRaiseOnUnexpectedStatus(cfg.RaiseOnUnexpectedStatus),
		kmclient.WithAuthHeaderName(cfg.AuthHeaderName),
		kmclient.WithAuthPrefix(cfg.AuthPrefix),
		kmclient.WithLogger(log),
	}
	if transportLog != nil {
		opts = append(opts, kmclient.WithTransportLogger(transportLog))
	}
	if cfg.APIKey != "" {
		opts = append(opts, kmclient.WithToken(cfg.APIKey))
	}

	client, err := kmclient.New(cfg.BaseURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("build client: %w", err)
	}

	log.InfoObj("client initialized", "client_config", map[string]any{
		"base_url":                   client.BaseURL(),
		"authenticated":              cfg.APIKey != "",
		"timeout_seconds":            int(cfg.Timeout.Seconds()),
		"verify_ssl":                 cfg.VerifySSL,
		"raise_on_unexpected_status": cfg.RaiseOnUnexpectedStatus,
	})

	return &IndexDeleter{client: client, log: log}, nil
}

// Client returns the underlying service client.
func (d *IndexDeleter) Client() *kmclient.Client { return d.client }

// Delete removes the named index, or the service default when index is unset.
func (d *IndexDeleter) Delete(ctx context.Context, index types.Optional[string]) (*types.Response[indexes.DeleteIndexByNameResult], error) {
	if d == nil || d.client == nil {
		return nil, fmt.Errorf("index deleter is not initialized")
	}
	name, _ := index.Get()
	d.log.InfoObj("deleting index", "index", name)
	return indexes.DeleteIndexByNameDetailed(ctx, d.client, indexes.DeleteIndexByNameParams{Index: index})
}
