package rpc

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/qfold/qsynth/gen/synthpb"
	"github.com/qfold/qsynth/internal/circuit"
)

// #region types

// DecomposeResult holds the response from a Decompose RPC call.
type DecomposeResult struct {
	Circuit    []circuit.BoundPlacement
	Converged  bool
	Cost       float64
	Iterations int
	RunID      string
}

// Options tunes one remote synthesis call. Zero values mean server defaults.
type Options struct {
	CostFunction   string
	MaxIterations  int
	ReinitAttempts int
	Threshold      float64
	Seed           int64
}

// #endregion types

// #region client

// Client wraps the gRPC connection to a synthesis server.
type Client struct {
	conn   *grpc.ClientConn
	client synthpb.QSynthClient
}

// NewClient connects to a synthesis server.
func NewClient(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: synthpb.NewQSynthClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service
// implementation. Used for testing without a real gRPC connection.
func NewClientWithService(svc synthpb.QSynthClient) *Client {
	return &Client{client: svc}
}

// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// #endregion client

// #region decompose

// Decompose sends a target unitary and basis library for synthesis.
func (c *Client) Decompose(ctx context.Context, numQubits int, target *mat.CDense, families []string, opts Options) (DecomposeResult, error) {
	basis := make([]*synthpb.BasisGate, len(families))
	for i, f := range families {
		basis[i] = &synthpb.BasisGate{Family: f}
	}

	resp, err := c.client.Decompose(ctx, &synthpb.DecomposeRequest{
		NumQubits:      int32(numQubits),
		Target:         matrixToProto(target),
		BasisGates:     basis,
		CostFunction:   opts.CostFunction,
		MaxIterations:  int32(opts.MaxIterations),
		ReinitAttempts: int32(opts.ReinitAttempts),
		Threshold:      opts.Threshold,
		Seed:           opts.Seed,
	})
	if err != nil {
		return DecomposeResult{}, fmt.Errorf("decompose rpc: %w", err)
	}

	return DecomposeResult{
		Circuit:    placementsFromProto(resp.Placements),
		Converged:  resp.Converged,
		Cost:       resp.Cost,
		Iterations: int(resp.Iterations),
		RunID:      resp.RunId,
	}, nil
}

// #endregion decompose
