package common

import (
	"context"

	"nextchapter/internal/errors"
)

// GatewayOperationFunc is a generic signature for a command's remote call.
type GatewayOperationFunc[Output any] func(context.Context) (Output, error)

// RunGatewayCommand encapsulates the common logic for commands that make one
// gateway call and print the result through the formatter registry.
func RunGatewayCommand[Output any](
	ctx context.Context,
	logger *errors.Logger,
	cmdConfig CommandConfig,
	operation GatewayOperationFunc[Output],
) error {
	outputHandler := NewOutputHandler(logger)

	result, err := operation(ctx)
	if err != nil {
		return err
	}

	return outputHandler.HandleOutput(result, cmdConfig)
}
