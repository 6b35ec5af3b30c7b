package engine

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/platform/hcloud"
	"github.com/imamik/acrwebhooks/internal/platform/ssh"
	"github.com/imamik/acrwebhooks/internal/util/keygen"
	"github.com/imamik/acrwebhooks/internal/util/labels"
	"github.com/imamik/acrwebhooks/internal/util/naming"
	"github.com/imamik/acrwebhooks/internal/util/netutil"
	"github.com/imamik/acrwebhooks/internal/util/retry"
)

// engineReadyCommand succeeds once the engine on the host answers.
const engineReadyCommand = "docker version --format '{{.Server.Version}}'"

// tunnel is the part of an SSH connection the remote strategy uses.
type tunnel interface {
	DialContext(ctx context.Context, network, addr string) (net.Conn, error)
	Run(command string) (string, error)
	Close() error
}

// RemoteStrategy boots a throwaway Hetzner Cloud host running Docker and
// tunnels to its engine socket over SSH.
type RemoteStrategy struct {
	hosts    hcloud.HostManager
	cfg      config.EngineConfig
	prefix   string
	runID    string
	timeouts *config.Timeouts
	log      logrus.FieldLogger

	generateKey func(comment string) (*keygen.KeyPair, error)
	waitForSSH  func(ctx context.Context, host string, timeout time.Duration) error
	openTunnel  func(ctx context.Context, host, user string, privateKey []byte) (tunnel, error)
	newEngine   func(dial docker.DialFunc) (docker.Engine, error)
}

// NewRemoteStrategy creates a RemoteStrategy.
func NewRemoteStrategy(hosts hcloud.HostManager, cfg config.EngineConfig, prefix, runID string, timeouts *config.Timeouts, log logrus.FieldLogger) *RemoteStrategy {
	return &RemoteStrategy{
		hosts:       hosts,
		cfg:         cfg,
		prefix:      prefix,
		runID:       runID,
		timeouts:    timeouts,
		log:         log,
		generateKey: keygen.GenerateEd25519KeyPair,
		waitForSSH: func(ctx context.Context, host string, timeout time.Duration) error {
			return netutil.WaitForPort(ctx, host, netutil.SSHPort, timeout, time.Second)
		},
		openTunnel: openSSHTunnel,
		newEngine: func(dial docker.DialFunc) (docker.Engine, error) {
			return docker.NewDialerClient(dial)
		},
	}
}

func openSSHTunnel(ctx context.Context, host, user string, privateKey []byte) (tunnel, error) {
	client, err := ssh.NewClient(&ssh.Config{Host: host, User: user, PrivateKey: privateKey})
	if err != nil {
		return nil, err
	}
	tun, err := client.Open(ctx)
	if err != nil {
		return nil, err
	}
	return tun, nil
}

// Name implements Strategy.
func (s *RemoteStrategy) Name() string { return "hcloud" }

// Acquire provisions the host and connects to its engine. Anything created
// before a failure is removed before returning.
func (s *RemoteStrategy) Acquire(ctx context.Context) (session *Session, err error) {
	suffix := naming.Suffix()
	serverName := naming.EngineHost(s.prefix, suffix)
	keyName := naming.EngineSSHKey(s.prefix, suffix)
	hostLabels := labels.NewLabelBuilder(s.runID).WithRole(labels.RoleEngine).Build()

	var teardown []func(context.Context) error
	release := func(ctx context.Context) error {
		cleanup := &CleanupError{}
		for i := len(teardown) - 1; i >= 0; i-- {
			cleanup.Add(teardown[i](ctx))
		}
		return cleanup.ErrOrNil()
	}
	defer func() {
		if err != nil {
			if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
				s.log.WithError(rerr).Warn("Failed to clean up engine host after error")
			}
		}
	}()

	keyPair, err := s.generateKey(keyName)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ssh key: %w", err)
	}

	keyID, err := s.hosts.CreateSSHKey(ctx, keyName, string(keyPair.PublicKey), hostLabels)
	if err != nil {
		return nil, err
	}
	teardown = append(teardown, func(ctx context.Context) error {
		return s.hosts.DeleteSSHKey(ctx, keyName)
	})

	s.log.WithField("server", serverName).Info("Creating engine host")
	teardown = append(teardown, func(ctx context.Context) error {
		return s.hosts.DeleteServer(ctx, serverName)
	})
	if _, err = s.hosts.CreateServer(ctx, hcloud.HostSpec{
		Name:       serverName,
		Image:      s.cfg.Image,
		ServerType: s.cfg.ServerType,
		Location:   s.cfg.Location,
		SSHKeyIDs:  []int64{keyID},
		Labels:     hostLabels,
	}); err != nil {
		return nil, err
	}

	ip, err := s.hosts.GetServerIP(ctx, serverName)
	if err != nil {
		return nil, err
	}

	if err = s.waitForSSH(ctx, ip, s.timeouts.SSHConnect); err != nil {
		return nil, fmt.Errorf("engine host %s unreachable: %w", ip, err)
	}

	sshCtx, cancel := context.WithTimeout(ctx, s.timeouts.SSHConnect)
	defer cancel()

	tun, err := s.openTunnel(sshCtx, ip, s.cfg.SSHUser, keyPair.PrivateKey)
	if err != nil {
		return nil, err
	}
	teardown = append(teardown, func(context.Context) error { return tun.Close() })

	err = retry.WithExponentialBackoff(sshCtx, func() error {
		_, runErr := tun.Run(engineReadyCommand)
		return runErr
	}, retry.WithMaxRetries(s.timeouts.RetryMaxAttempts), retry.WithInitialDelay(s.timeouts.RetryInitialDelay))
	if err != nil {
		return nil, fmt.Errorf("engine on %s did not become ready: %w", ip, err)
	}

	eng, err := s.newEngine(tun.DialContext)
	if err != nil {
		return nil, err
	}
	teardown = append(teardown, func(context.Context) error { return eng.Close() })

	if err = eng.Ping(ctx); err != nil {
		return nil, err
	}

	return NewSession(eng, "hcloud:"+ip, release), nil
}
