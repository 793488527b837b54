package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dora-network/dora-safemath/host"
	"github.com/dora-network/dora-safemath/safemath"
)

// KindInfo describes one error kind and its host representations.
type KindInfo struct {
	Kind    safemath.ErrorKind `json:"kind"`
	Message string             `json:"message"`
	Code    uint32             `json:"code"`
	Grpc    string             `json:"grpc"`
	Connect string             `json:"connect"`
}

// NewKindsCommand creates the kinds command.
func NewKindsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "kinds",
		Short:         "List the arithmetic error kinds and their host codes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := kindInfos()
			return rootOpts.formatter(cmd).Success(kindsTable(infos), infos)
		},
	}
}

func kindInfos() []KindInfo {
	kinds := safemath.Kinds()
	infos := make([]KindInfo, 0, len(kinds))
	for _, k := range kinds {
		infos = append(infos, KindInfo{
			Kind:    k,
			Message: k.String(),
			Code:    host.Code(k),
			Grpc:    host.GRPCCode(k).String(),
			Connect: host.ConnectCode(k).String(),
		})
	}
	return infos
}

func kindsTable(infos []KindInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %-18s %-6s %-16s %s\n", "KIND", "MESSAGE", "CODE", "GRPC", "CONNECT")
	for _, info := range infos {
		fmt.Fprintf(&b, "%-16s %-18s %-6d %-16s %s\n", info.Kind.Name(), info.Message, info.Code, info.Grpc, info.Connect)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
