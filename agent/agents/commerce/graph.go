package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	nodex "github.com/tanpawarit/research-commerce-assistant/agent/nodes"
)

const (
	nodeValidate      = "validate_request"
	nodePublicFetch   = "fetch_public"
	nodePrivateFetch  = "fetch_private"
	nodePublicReport  = "build_public_report"
	nodePrivateReport = "build_private_report"
)

func (a *Agent) compileAnalyzeGraph(
	ctx context.Context,
) (compose.Runnable[contractx.StoreRequest, contractx.Report], error) {
	graph := compose.NewGraph[contractx.StoreRequest, contractx.Report]()

	if err := graph.AddLambdaNode(nodeValidate,
		compose.InvokableLambda(func(ctx context.Context, in contractx.StoreRequest) (*nodex.GraphState, error) {
			return stepResult(nodex.ValidateRequest(in))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodeValidate, err)
	}

	if err := graph.AddLambdaNode(nodePublicFetch,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return stepResult(nodex.FetchPublic(ctx, in, a.storefront))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodePublicFetch, err)
	}

	if err := graph.AddLambdaNode(nodePrivateFetch,
		compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (*nodex.GraphState, error) {
			return stepResult(nodex.FetchPrivate(ctx, in, a.storefront))
		}),
	); err != nil {
		return nil, fmt.Errorf("add node %s: %w", nodePrivateFetch, err)
	}

	for _, name := range []string{nodePublicReport, nodePrivateReport} {
		if err := graph.AddLambdaNode(name,
			compose.InvokableLambda(func(ctx context.Context, in *nodex.GraphState) (contractx.Report, error) {
				return stepResult(nodex.BuildReport(in))
			}),
		); err != nil {
			return nil, fmt.Errorf("add node %s: %w", name, err)
		}
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *nodex.GraphState) (string, error) {
			if in == nil {
				return "", &stepError{err: fmt.Errorf("%w: graph state is nil", contractx.ErrValidation)}
			}
			if in.Mode == contractx.ModePublic {
				return nodePublicFetch, nil
			}
			return nodePrivateFetch, nil
		},
		map[string]bool{
			nodePublicFetch:  true,
			nodePrivateFetch: true,
		},
	)
	if err := graph.AddBranch(nodeValidate, branch); err != nil {
		return nil, fmt.Errorf("add mode branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, nodeValidate},
		{nodePublicFetch, nodePublicReport},
		{nodePrivateFetch, nodePrivateReport},
		{nodePublicReport, compose.END},
		{nodePrivateReport, compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName("commerce.analyze_store"))
	if err != nil {
		return nil, fmt.Errorf("compile commerce graph: %w", err)
	}
	return runner, nil
}

// stepError marks the error a node returned so Analyze can report it
// without the graph's node path decoration.
type stepError struct {
	err error
}

func (e *stepError) Error() string { return e.err.Error() }

func (e *stepError) Unwrap() error { return e.err }

func stepResult[T any](out T, err error) (T, error) {
	if err != nil {
		return out, &stepError{err: err}
	}
	return out, nil
}

// stepCause returns the error the failing node produced, or err when the
// failure came from the graph itself.
func stepCause(err error) error {
	var se *stepError
	if errors.As(err, &se) {
		return se.err
	}
	return err
}
