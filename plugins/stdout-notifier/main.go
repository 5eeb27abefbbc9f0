// stdout-notifier is a reference notifier: it prints every message to its
// own stdout instead of delivering it anywhere. Useful for trying out the
// notifier contract without a chat endpoint.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	notifyrpc "mcad/internal/modules/notify/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *notifyrpc.Empty) (*notifyrpc.Metadata, error) {
	return &notifyrpc.Metadata{
		Name:    "stdout-notifier",
		Version: "1.0.0",
	}, nil
}

func (s *server) Send(_ context.Context, in *notifyrpc.SendRequest) (*notifyrpc.SendResponse, error) {
	if strings.TrimSpace(in.Text) == "" {
		return &notifyrpc.SendResponse{Delivered: false, Error: "empty message"}, nil
	}
	fmt.Fprintf(os.Stdout, "[%s] %s\n", in.Endpoint, in.Text)
	return &notifyrpc.SendResponse{Delivered: true}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: notifyrpc.HandshakeConfig,
		Plugins:         notifyrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
