package app

import (
	"errors"

	"github.com/vitrine-shop/vitrine/internal/config"
	"github.com/vitrine-shop/vitrine/internal/logger"
	"github.com/vitrine-shop/vitrine/internal/provider"
	"github.com/vitrine-shop/vitrine/internal/router"
	"github.com/vitrine-shop/vitrine/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container := provider.NewContainer(cfg)

	var services []Service

	if mode == ModeAll || mode == ModeAPI {
		engine := router.New(container)
		httpService := NewHTTPService(cfg.Server.Addr(), engine)
		services = append(services, httpService)
	}

	if mode == ModeAll || mode == ModeWorker {
		if cfg.Queue.Enabled && cfg.Redis.Enabled {
			consumer := worker.NewConsumer(container)
			workerService, err := worker.NewService(cfg.Queue, cfg.Redis, consumer)
			if err != nil {
				return nil, err
			}
			services = append(services, workerService)
		} else if mode == ModeWorker {
			return nil, errors.New("worker mode requires queue and redis to be enabled")
		} else {
			logger.Infow("worker_skipped_queue_disabled")
		}
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
