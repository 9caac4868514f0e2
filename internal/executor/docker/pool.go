package docker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Pool keeps a set of pre-warmed containers so an execution request never
// pays the container start cost. Containers idle on Config.IdleCmd; the
// runtime for every configured language ships in Config.Image, so one
// warm container can serve any language.
type Pool struct {
	cli        *client.Client
	config     Config
	logger     *slog.Logger
	containers chan string
	done       chan struct{}
	wg         sync.WaitGroup
	startDone  sync.Once
}

func NewPool(cli *client.Client, cfg Config, logger *slog.Logger) *Pool {
	return &Pool{
		cli:        cli,
		config:     cfg,
		logger:     logger,
		containers: make(chan string, cfg.PoolSize),
		done:       make(chan struct{}),
	}
}

// Start launches the background refiller. Safe to call more than once.
func (p *Pool) Start() {
	p.startDone.Do(func() {
		p.logger.Info("starting docker container pool",
			slog.Int("poolSize", p.config.PoolSize),
			slog.String("image", p.config.Image),
		)
		p.wg.Add(1)
		go p.refill()
	})
}

// Stop halts the refiller and removes every warm container still queued.
func (p *Pool) Stop() {
	p.logger.Info("shutting down docker container pool")
	close(p.done)
	p.wg.Wait()

	for {
		select {
		case id := <-p.containers:
			p.removeContainer(id)
		default:
			return
		}
	}
}

// GetContainer hands out a warm container ID, blocking until one is ready
// or the context ends. Ownership transfers to the caller, who must remove
// the container when done.
func (p *Pool) GetContainer(ctx context.Context) (string, error) {
	select {
	case id := <-p.containers:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// refill keeps the pool topped up to capacity until Stop.
func (p *Pool) refill() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			return
		default:
			if len(p.containers) >= cap(p.containers) {
				time.Sleep(100 * time.Millisecond)
				continue
			}

			id, err := p.createContainer()
			if err != nil {
				p.logger.Error("failed to create pre-warmed container", slog.String("error", err.Error()))
				time.Sleep(1 * time.Second)
				continue
			}

			select {
			case p.containers <- id:
			case <-p.done:
				// Stop raced the push; the container was never handed out.
				p.removeContainer(id)
				return
			}
		}
	}
}

// createContainer starts one warm container: no network, capped memory
// and CPU, read-only rootfs with a writable /tmp, running as nobody.
func (p *Pool) createContainer() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hostConfig := &container.HostConfig{
		NetworkMode: "none",
		Resources: container.Resources{
			Memory:   p.config.MemoryLimit,
			NanoCPUs: int64(p.config.CPULimit * 1e9),
		},
		AutoRemove:     false,
		ReadonlyRootfs: true,
		Tmpfs:          map[string]string{"/tmp": "rw,noexec,nosuid"},
	}

	idle := p.config.IdleCmd
	if len(idle) == 0 {
		idle = []string{"sleep", "infinity"}
	}

	resp, err := p.cli.ContainerCreate(ctx, &container.Config{
		Image:        p.config.Image,
		Cmd:          idle,
		Tty:          false,
		AttachStdout: false,
		AttachStderr: false,
		User:         "nobody",
	}, hostConfig, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("ContainerCreate failed: %w", err)
	}

	if err := p.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		p.removeContainer(resp.ID)
		return "", fmt.Errorf("ContainerStart failed: %w", err)
	}

	return resp.ID, nil
}

func (p *Pool) removeContainer(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = p.cli.ContainerRemove(ctx, id, container.RemoveOptions{
		Force: true,
	})
}
