package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authDomain "github.com/newtonic3d/estimatevault/internal/auth/domain"
	authUseCase "github.com/newtonic3d/estimatevault/internal/auth/usecase"
)

// RunCreateClient creates an API client and prints its id and one-time secret.
// Only admin clients can use the estimate vault.
func RunCreateClient(
	ctx context.Context,
	clientUseCase authUseCase.ClientUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	isActive, isAdmin bool,
	format string,
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if err := validateFormat(format); err != nil {
		return err
	}

	output, err := clientUseCase.Create(ctx, &authDomain.CreateClientInput{
		Name:     name,
		IsActive: isActive,
		IsAdmin:  isAdmin,
	})
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	role := authDomain.RoleClient
	if isAdmin {
		role = authDomain.RoleAdmin
	}
	logger.Info("client created",
		slog.String("client_id", output.ID.String()),
		slog.String("role", role),
	)

	if format == "json" {
		return writeJSON(writer, map[string]any{
			"client_id": output.ID.String(),
			"secret":    output.PlainSecret,
			"role":      role,
			"is_active": isActive,
		})
	}

	_, _ = fmt.Fprintln(writer, "Client created successfully!")
	_, _ = fmt.Fprintf(writer, "Client ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.PlainSecret)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", role)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
	return nil
}
