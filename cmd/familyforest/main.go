// Command familyforest is the Lambda entrypoint for the Family Forest bot.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/jacentio/familyforest/auth"
	"github.com/jacentio/familyforest/bot"
	"github.com/jacentio/familyforest/config"
	"github.com/jacentio/familyforest/forest"
	"github.com/jacentio/familyforest/store"
)

func main() {
	// Local runs pick up a .env file; in Lambda there is none.
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	items := store.New(dynamodb.NewFromConfig(awsCfg), store.Config{TableName: cfg.TableName})
	gate := auth.NewGate(cfg.AdminUserIDs, items, logger)
	service := forest.NewService(items, gate, logger)
	sender := bot.NewTelegram(cfg.TelegramToken)
	router := bot.NewRouter(gate, service, sender, logger)
	handler := bot.NewHandler(router, logger)

	lambda.Start(handler.Handle)
}
