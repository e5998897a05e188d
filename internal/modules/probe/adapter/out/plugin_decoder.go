package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	pluginrpc "zetatrack/internal/modules/probe/adapter/out/rpc"
	"zetatrack/internal/modules/probe/domain"
	probeout "zetatrack/internal/modules/probe/port/out"
	apperrors "zetatrack/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 2 * time.Second
)

// PluginDecoder delegates signal decoding to an external plugin process. The
// process is started on first use and kept until Close.
type PluginDecoder struct {
	binary   string
	checksum string

	mu      sync.Mutex
	client  pluginrpc.SignalPluginClient
	closeFn func()
}

func NewPluginDecoder(binary, checksum string) *PluginDecoder {
	return &PluginDecoder{binary: binary, checksum: checksum}
}

func (d *PluginDecoder) Decode(ctx context.Context, doc domain.Document) (domain.Signals, error) {
	client, err := d.ensureClient(ctx)
	if err != nil {
		return domain.Signals{}, err
	}
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	resp, err := client.Decode(callCtx, &pluginrpc.DecodeRequest{Root: pluginrpc.FromDocument(doc)})
	if err != nil {
		d.reset()
		return domain.Signals{}, fmt.Errorf("plugin decode: %w", err)
	}
	return domain.Signals{
		SecondsLeft: int(resp.SecondsLeft),
		HasTimer:    resp.HasTimer && resp.SecondsLeft >= 0,
		Ended:       resp.Ended,
		EndPhrase:   resp.EndPhrase,
		Score:       int(resp.Score),
		HasScore:    resp.HasScore && resp.Score >= 0,
	}, nil
}

func (d *PluginDecoder) Close() error {
	d.reset()
	return nil
}

func (d *PluginDecoder) ensureClient(ctx context.Context) (pluginrpc.SignalPluginClient, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.client != nil {
		return d.client, nil
	}
	client, closeFn, err := connect(ctx, d.binary, d.checksum)
	if err != nil {
		return nil, err
	}
	d.client = client
	d.closeFn = closeFn
	return client, nil
}

func (d *PluginDecoder) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closeFn != nil {
		d.closeFn()
	}
	d.client = nil
	d.closeFn = nil
}

// PluginHost inspects plugin binaries without keeping them running.
type PluginHost struct{}

func NewPluginHost() probeout.PluginInspector {
	return &PluginHost{}
}

func (h *PluginHost) Inspect(ctx context.Context, binary, checksum string) (domain.PluginMetadata, error) {
	client, closeFn, err := connect(ctx, binary, checksum)
	if err != nil {
		return domain.PluginMetadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.PluginMetadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return domain.PluginMetadata{Name: meta.Name, Version: meta.Version, Layout: meta.Layout}, nil
}

func connect(_ context.Context, binary, expectedSHA string) (pluginrpc.SignalPluginClient, func(), error) {
	if err := verifyChecksum(binary, expectedSHA); err != nil {
		return nil, nil, err
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.SignalPluginClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func verifyChecksum(binary, expected string) error {
	payload, err := os.ReadFile(binary)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: plugin binary %s", apperrors.ErrNotFound, binary)
		}
		return fmt.Errorf("read plugin binary: %w", err)
	}
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return nil
	}
	sum := sha256.Sum256(payload)
	if hex.EncodeToString(sum[:]) != expected {
		return fmt.Errorf("%w: %s", apperrors.ErrPluginChecksum, binary)
	}
	return nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
