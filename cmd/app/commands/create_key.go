package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	bootstrapkeyDomain "github.com/allisson/iot-onboarding/internal/bootstrapkey/domain"
	bootstrapkeyUseCase "github.com/allisson/iot-onboarding/internal/bootstrapkey/usecase"
)

// RunCreateKey creates a new bootstrap key for device onboarding.
// The plaintext secret is printed exactly once; only its Argon2id hash is
// persisted. Outputs key ID, secret, hint, and expiry in either text or JSON
// format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateKey(
	ctx context.Context,
	keyUseCase bootstrapkeyUseCase.BootstrapKeyUseCase,
	logger *slog.Logger,
	group string,
	expiresInDays int,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new bootstrap key", slog.String("group", group))

	// Create input
	input := &bootstrapkeyDomain.CreateBootstrapKeyInput{
		ExpiresInDays: expiresInDays,
	}
	if group != "" {
		input.Group = &group
	}

	// Create the key
	output, err := keyUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create bootstrap key: %w", err)
	}

	// Output result based on format
	if format == "json" {
		outputKeyJSON(output, io.Writer)
	} else {
		outputKeyText(output, io.Writer)
	}

	logger.Info("bootstrap key created successfully",
		slog.Int64("key_id", output.Key.ID),
		slog.String("secret_hint", output.Key.SecretHint),
	)

	return nil
}

// outputKeyText outputs the result in human-readable text format.
func outputKeyText(output *bootstrapkeyDomain.CreateBootstrapKeyOutput, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nBootstrap key created successfully!")
	_, _ = fmt.Fprintf(writer, "Key ID: %d\n", output.Key.ID)
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintf(writer, "Hint: %s\n", output.Key.SecretHint)
	if output.Key.Group != nil {
		_, _ = fmt.Fprintf(writer, "Group: %s\n", *output.Key.Group)
	}
	if output.Key.ExpiresAt != nil {
		_, _ = fmt.Fprintf(writer, "Expires at: %s\n", output.Key.ExpiresAt.Format(time.RFC3339))
	}
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
}

// outputKeyJSON outputs the result in JSON format for machine consumption.
func outputKeyJSON(output *bootstrapkeyDomain.CreateBootstrapKeyOutput, writer io.Writer) {
	result := map[string]string{
		"key_id":      strconv.FormatInt(output.Key.ID, 10),
		"secret":      output.PlainSecret,
		"secret_hint": output.Key.SecretHint,
	}
	if output.Key.Group != nil {
		result["group"] = *output.Key.Group
	}
	if output.Key.ExpiresAt != nil {
		result["expires_at"] = output.Key.ExpiresAt.Format(time.RFC3339)
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
