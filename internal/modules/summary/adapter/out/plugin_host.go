package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"time"

	sessiondomain "abaterm/internal/modules/session/domain"
	summaryrpc "abaterm/internal/modules/summary/adapter/out/rpc"
	apperrors "abaterm/internal/platform/errors"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	pluginStartTimeout = 3 * time.Second
	pluginCallTimeout  = 90 * time.Second
)

// PluginSummarizer launches an external summarizer binary over go-plugin for
// each generation. The process is short-lived; keeping it resident buys
// nothing for a once-per-session call.
type PluginSummarizer struct {
	binary string
}

func NewPluginSummarizer(binary string) *PluginSummarizer {
	return &PluginSummarizer{binary: binary}
}

func (p *PluginSummarizer) Name() string {
	if p.binary == "" {
		return "plugin"
	}
	return filepath.Base(p.binary)
}

func (p *PluginSummarizer) Available() bool { return p.binary != "" }

func (p *PluginSummarizer) Summarize(ctx context.Context, session sessiondomain.Session) (string, error) {
	if !p.Available() {
		return "", fmt.Errorf("%w: no hay plugin configurado", apperrors.ErrSummaryUnavailable)
	}
	client, closeFn, err := p.connect()
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSummaryUnavailable, err)
	}
	defer closeFn()

	payload, err := json.Marshal(session)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	callCtx, cancel := callContext(ctx, pluginCallTimeout)
	defer cancel()
	resp, err := client.Summarize(callCtx, &summaryrpc.SummarizeRequest{
		SessionJSON: string(payload),
		Language:    "es",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrSummaryUnavailable, err)
	}
	if resp.Summary == "" {
		return "", fmt.Errorf("%w: el plugin no devolvió texto", apperrors.ErrSummaryUnavailable)
	}
	return resp.Summary, nil
}

func (p *PluginSummarizer) connect() (summaryrpc.SummarizerClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  summaryrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          summaryrpc.PluginMap(nil),
		Cmd:              exec.Command(p.binary),
		Managed:          true,
		StartTimeout:     pluginStartTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(summaryrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(summaryrpc.SummarizerClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
