// Reference summarizer plugin. It produces a deterministic offline summary
// from the session data, useful when no Gemini API key is available and as a
// template for writing real summarizer plugins.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sessiondomain "abaterm/internal/modules/session/domain"
	summaryrpc "abaterm/internal/modules/summary/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *summaryrpc.Empty) (*summaryrpc.Metadata, error) {
	return &summaryrpc.Metadata{Name: "resumen-local", Version: "1.0.0"}, nil
}

func (s *server) Summarize(_ context.Context, in *summaryrpc.SummarizeRequest) (*summaryrpc.SummarizeResponse, error) {
	var session sessiondomain.Session
	if err := json.Unmarshal([]byte(in.SessionJSON), &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Resumen de sesión del %s para %s, conducida por %s.\n\n",
		session.Date, session.StudentName, session.TherapistName)

	var strong, weak []string
	for _, p := range session.Programs {
		label := p.PercentLabel()
		fmt.Fprintf(&sb, "%s: %d aciertos y %d errores (%s).\n", p.Name, p.CorrectCount, p.IncorrectCount, label)
		if pct, ok := p.Percentage(); ok {
			if pct >= 80 {
				strong = append(strong, p.Name)
			} else if pct < 50 {
				weak = append(weak, p.Name)
			}
		}
	}
	if len(strong) > 0 {
		fmt.Fprintf(&sb, "\nProgramas con mejor desempeño: %s.\n", strings.Join(strong, ", "))
	}
	if len(weak) > 0 {
		fmt.Fprintf(&sb, "Programas que requieren atención: %s.\n", strings.Join(weak, ", "))
	}
	if obs := strings.TrimSpace(session.GeneralObservations); obs != "" {
		fmt.Fprintf(&sb, "\nObservaciones del terapeuta: %s\n", obs)
	}
	return &summaryrpc.SummarizeResponse{Summary: sb.String()}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: summaryrpc.HandshakeConfig,
		Plugins:         summaryrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
