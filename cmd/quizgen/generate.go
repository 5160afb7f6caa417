package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"pdf-quiz/internal/app"
	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/dto"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/service"
	"pdf-quiz/internal/util"

	"github.com/spf13/cobra"
)

// serviceFactory builds the quiz service from the command's flags. It
// returns a cleanup function.
type serviceFactory func(cmd *cobra.Command) (service.QuizService, func(), error)

func newGenerateCmd(factory serviceFactory) *cobra.Command {
	if factory == nil {
		factory = buildService
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a quiz from a PDF and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			count, _ := cmd.Flags().GetInt("num-questions")

			document, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			svc, cleanup, err := factory(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := svc.GenerateQuiz(cmd.Context(), &domain.QuizRequest{
				Document:       document,
				RequestedCount: count,
				RequestID:      util.NewULID(),
			})
			if err != nil {
				return fmt.Errorf("%s (%s)", userMessage(err), domain.CodeOf(err))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(dto.NewGenerateQuizResponse(resp.Items))
		},
	}

	cmd.Flags().StringP("file", "f", "", "PDF document to read")
	cmd.Flags().IntP("num-questions", "n", 5, "number of questions to generate")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func buildService(cmd *cobra.Command) (service.QuizService, func(), error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadConfigFile(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	components, err := app.Build(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = components.Close()
		logger.Sync()
	}
	return components.QuizService, cleanup, nil
}

// userMessage returns the message shown to API clients for err.
func userMessage(err error) string {
	var domainErr *domain.DomainError
	var validationErrs domain.ValidationErrors
	switch {
	case errors.As(err, &domainErr):
		return domainErr.Message
	case errors.As(err, &validationErrs):
		return validationErrs.Detail()
	default:
		return err.Error()
	}
}
