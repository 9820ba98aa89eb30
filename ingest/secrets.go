package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ssm"
)

// ParameterGetter is the slice of the SSM API the credential provider needs.
// *ssm.SSM satisfies it.
type ParameterGetter interface {
	GetParameterWithContext(aws.Context, *ssm.GetParameterInput, ...request.Option) (*ssm.GetParameterOutput, error)
}

// Credentials is the account identity for the vehicle backend. Values are
// fetched fresh each invocation and never persisted.
type Credentials struct {
	Identifier string
	Secret     string
}

// FetchSecret reads one SecureString parameter from the vault. Any failure,
// including an empty value, reports ErrSecretUnavailable; there is no retry
// here so a dead vault fails the invocation immediately.
func FetchSecret(ctx context.Context, client ParameterGetter, name string) (string, error) {
	output, err := client.GetParameterWithContext(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("%w: parameter %q: %v", ErrSecretUnavailable, name, err)
	}
	if output.Parameter == nil {
		return "", fmt.Errorf("%w: parameter %q: no parameter in response", ErrSecretUnavailable, name)
	}

	value := strings.TrimSpace(aws.StringValue(output.Parameter.Value))
	if value == "" {
		return "", fmt.Errorf("%w: parameter %q is empty", ErrSecretUnavailable, name)
	}

	return value, nil
}

// ResolveCredentials performs the two fixed vault reads for one invocation.
func ResolveCredentials(ctx context.Context, client ParameterGetter, cfg *Config) (*Credentials, error) {
	identifier, err := FetchSecret(ctx, client, cfg.IdentifierParameterName)
	if err != nil {
		return nil, err
	}

	secret, err := FetchSecret(ctx, client, cfg.SecretParameterName)
	if err != nil {
		return nil, err
	}

	return &Credentials{Identifier: identifier, Secret: secret}, nil
}
