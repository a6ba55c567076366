package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	log "github.com/sirupsen/logrus"
	"github.com/unicodeguard/unicodeguard/processors"
	"github.com/unicodeguard/unicodeguard/reporters"
	"github.com/unicodeguard/unicodeguard/repositories"
	"github.com/unicodeguard/unicodeguard/scanners"
	"github.com/unicodeguard/unicodeguard/utils"
)

// LambdaRequest represents the expected JSON structure in the request body
type LambdaRequest struct {
	Repo      string `json:"repo"`
	TokenUser string `json:"token_user"`
}

// Handler is the Lambda function handler
func Handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {

	var lambdaReq LambdaRequest
	err := json.Unmarshal([]byte(request.Body), &lambdaReq)

	if err != nil {
		log.Printf("Error parsing request body: %v", err)
		return toAPIGatewayResponse(400, `{"error": "Invalid JSON format."}`), nil
	}

	if lambdaReq.Repo == "" {
		errMsg := "The 'repo' field is required in the JSON request."
		log.Println(errMsg)
		return toAPIGatewayResponse(400, fmt.Sprintf(`{"error": "%s"}`, errMsg)), nil
	}

	var token string
	if lambdaReq.TokenUser != "" {
		token, err = getStoredToken(ctx, lambdaReq.TokenUser)
		if err != nil {
			log.Printf("Error retrieving token: %v", err)
			errorBody, _ := json.Marshal(map[string]string{"error": err.Error()})
			return toAPIGatewayResponse(500, string(errorBody)), nil
		}
	}

	jsonReport, err := ScanRepo(lambdaReq.Repo, token)
	if err != nil {
		log.Printf("Error scanning repository: %v", err)
		errorBody, _ := json.Marshal(map[string]string{"error": err.Error()})
		return toAPIGatewayResponse(500, string(errorBody)), nil
	}

	return toAPIGatewayResponse(200, jsonReport), nil
}

// toAPIGatewayResponse wraps a JSON body in an events.APIGatewayProxyResponse
func toAPIGatewayResponse(statusCode int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      statusCode,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            body,
		IsBase64Encoded: false,
	}
}

// getStoredToken retrieves the stored clone token for a given userID from SSM Parameter Store
func getStoredToken(ctx context.Context, userID string) (string, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("unable to load AWS SDK config: %w", err)
	}

	svc := ssm.NewFromConfig(cfg)

	paramPrefix := os.Getenv("SSM_PARAMETER_PREFIX")
	if paramPrefix == "" {
		return "", fmt.Errorf("SSM_PARAMETER_PREFIX environment variable is not set")
	}

	paramName := fmt.Sprintf("%s%s", paramPrefix, userID)

	input := &ssm.GetParameterInput{
		Name:           aws.String(paramName),
		WithDecryption: aws.Bool(true),
	}

	result, err := svc.GetParameter(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve parameter '%s': %w", paramName, err)
	}

	if result.Parameter == nil || result.Parameter.Value == nil {
		return "", fmt.Errorf("parameter '%s' has no value", paramName)
	}

	return *result.Parameter.Value, nil
}

// ScanRepo clones the repository into /tmp, audits it for non-ASCII content and
// returns the detailed JSON report.
func ScanRepo(repoURL string, token string) (string, error) {
	repoName, err := utils.ExtractRepoName(repoURL)
	if err != nil {
		return "", fmt.Errorf("invalid repository URL: %w", err)
	}

	if err := os.MkdirAll(scanners.CloneBaseDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create clone base directory: %w", err)
	}

	repoPath := filepath.Join(scanners.CloneBaseDir, utils.SanitizeRepoName(repoName))
	defer os.RemoveAll(repoPath)

	if token != "" {
		err = utils.CloneRepositoryWithToken(repoURL, repoPath, token)
	} else {
		err = utils.CloneRepository(repoURL, repoPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to clone repository '%s': %w", repoURL, err)
	}

	excludes, err := scanners.NewExcludeSet(scanners.DefaultExcludePrefixes)
	if err != nil {
		return "", fmt.Errorf("failed to build exclude set: %w", err)
	}

	fileScanner := scanners.FsFileScanner{
		Processors: processors.InitializeProcessors(),
		Excludes:   excludes,
	}

	findings, err := fileScanner.TraverseAndSearch(repoPath, repoName)
	if err != nil {
		return "", fmt.Errorf("failed to scan repository '%s': %w", repoName, err)
	}

	repository := repositories.NewFileBasedFindingRepository()
	defer func() {
		if err := repository.Clear(); err != nil {
			log.Printf("Error clearing finding repository: %v", err)
		}
	}()

	if err := repository.Store(findings); err != nil {
		return "", fmt.Errorf("failed to store findings: %w", err)
	}

	reporter := reporters.JsonReporter{
		Queries:   loadSummaryQueries(),
		OutputDir: "/tmp",
	}
	if err := reporter.Report(repository); err != nil {
		return "", fmt.Errorf("failed to generate JSON report: %w", err)
	}

	reportFilePath := filepath.Join("/tmp", reporters.DefaultJsonReport)
	reportData, err := os.ReadFile(reportFilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read JSON report: %w", err)
	}

	log.Printf("Read JSON report of size: %d bytes", len(reportData))

	return string(reportData), nil
}
