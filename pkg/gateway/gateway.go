package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/younsl/spotbid/internal/models"
)

// Gateway is the provider API surface the workflow needs: four
// read-only queries and the single billable submission. The EC2
// implementation talks to AWS; the replay implementation decodes
// embedded fixture documents. The workflow never knows which one it
// holds, which keeps the test mode a pure alternate implementation.
type Gateway interface {
	ListImages(ctx context.Context) ([]models.Image, error)
	ListKeyPairs(ctx context.Context) ([]models.KeyPair, error)
	ListSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error)
	SpotPriceHistory(ctx context.Context, instanceTypes []string, window time.Duration) ([]models.PriceSample, error)

	// RequestSpotInstance has billing consequences and must be called
	// at most once per confirmed selection. No implementation retries.
	RequestSpotInstance(ctx context.Context, spec models.LaunchSpec) (models.SpotReceipt, error)
}

// OpError is a transport or parse failure from a provider operation.
// Responses are never partially interpreted: any malformed document
// surfaces as an OpError carrying the failed operation name.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("provider operation %s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
