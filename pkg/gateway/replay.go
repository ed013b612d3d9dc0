package gateway

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/younsl/spotbid/internal/models"
	"github.com/younsl/spotbid/pkg/diag"
)

//go:embed fixtures/*.json
var fixtureFS embed.FS

// Replay implements Gateway from canned provider documents instead of
// calling AWS. The documents have the same shape the provider CLI
// prints (one top-level object with a named array field per
// operation), and decoding is just as strict: a malformed document is
// an OpError, never a partial result.
type Replay struct {
	fsys fs.FS
	rec  *diag.Recorder
}

// NewReplay returns a gateway backed by the embedded fixtures
func NewReplay(rec *diag.Recorder) *Replay {
	return &Replay{fsys: fixtureFS, rec: rec}
}

// NewReplayFrom returns a gateway backed by an arbitrary fixture tree
func NewReplayFrom(fsys fs.FS, rec *diag.Recorder) *Replay {
	return &Replay{fsys: fsys, rec: rec}
}

// Wire shapes of the provider documents.
type imageDoc struct {
	Images []struct {
		ImageID      string `json:"ImageId"`
		Name         string `json:"Name"`
		Description  string `json:"Description"`
		CreationDate string `json:"CreationDate"`
	} `json:"Images"`
}

type keyPairDoc struct {
	KeyPairs []struct {
		KeyName        string `json:"KeyName"`
		KeyFingerprint string `json:"KeyFingerprint"`
	} `json:"KeyPairs"`
}

type securityGroupDoc struct {
	SecurityGroups []struct {
		GroupID     string `json:"GroupId"`
		GroupName   string `json:"GroupName"`
		Description string `json:"Description"`
	} `json:"SecurityGroups"`
}

type priceHistoryDoc struct {
	SpotPriceHistory []struct {
		InstanceType     string `json:"InstanceType"`
		AvailabilityZone string `json:"AvailabilityZone"`
		SpotPrice        string `json:"SpotPrice"`
		Timestamp        string `json:"Timestamp"`
	} `json:"SpotPriceHistory"`
}

type spotRequestDoc struct {
	SpotInstanceRequests []struct {
		SpotInstanceRequestID string `json:"SpotInstanceRequestId"`
		State                 string `json:"State"`
		Status                struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Status"`
	} `json:"SpotInstanceRequests"`
}

func (r *Replay) decode(op, name string, out interface{}) error {
	r.rec.Call(op, map[string]string{"fixture": name})

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		r.rec.Result(op, nil, err)
		return opErr(op, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		r.rec.Result(op, nil, err)
		return opErr(op, fmt.Errorf("malformed document %s: %w", name, err))
	}
	r.rec.Result(op, json.RawMessage(raw), nil)
	return nil
}

// ListImages replays the image fixture
func (r *Replay) ListImages(ctx context.Context) ([]models.Image, error) {
	const op = "DescribeImages"
	var doc imageDoc
	if err := r.decode(op, "fixtures/images.json", &doc); err != nil {
		return nil, err
	}

	images := []models.Image{}
	for _, img := range doc.Images {
		created, err := time.Parse(time.RFC3339, img.CreationDate)
		if err != nil {
			return nil, opErr(op, fmt.Errorf("bad creation date for %s: %w", img.ImageID, err))
		}
		images = append(images, models.Image{
			ImageID:     img.ImageID,
			Name:        img.Name,
			Description: img.Description,
			CreatedAt:   created,
		})
	}
	return images, nil
}

// ListKeyPairs replays the key pair fixture
func (r *Replay) ListKeyPairs(ctx context.Context) ([]models.KeyPair, error) {
	var doc keyPairDoc
	if err := r.decode("DescribeKeyPairs", "fixtures/keypairs.json", &doc); err != nil {
		return nil, err
	}

	pairs := []models.KeyPair{}
	for _, kp := range doc.KeyPairs {
		pairs = append(pairs, models.KeyPair{Name: kp.KeyName, Fingerprint: kp.KeyFingerprint})
	}
	return pairs, nil
}

// ListSecurityGroups replays the security group fixture
func (r *Replay) ListSecurityGroups(ctx context.Context) ([]models.SecurityGroup, error) {
	var doc securityGroupDoc
	if err := r.decode("DescribeSecurityGroups", "fixtures/groups.json", &doc); err != nil {
		return nil, err
	}

	groups := []models.SecurityGroup{}
	for _, sg := range doc.SecurityGroups {
		groups = append(groups, models.SecurityGroup{
			GroupID:     sg.GroupID,
			Name:        sg.GroupName,
			Description: sg.Description,
		})
	}
	return groups, nil
}

// SpotPriceHistory replays the price fixture, narrowed to the
// requested types the way the provider would narrow a live query
func (r *Replay) SpotPriceHistory(ctx context.Context, instanceTypes []string, window time.Duration) ([]models.PriceSample, error) {
	const op = "DescribeSpotPriceHistory"
	var doc priceHistoryDoc
	if err := r.decode(op, "fixtures/prices.json", &doc); err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(instanceTypes))
	for _, t := range instanceTypes {
		wanted[t] = true
	}

	samples := []models.PriceSample{}
	for _, p := range doc.SpotPriceHistory {
		if !wanted[p.InstanceType] {
			continue
		}
		price, err := strconv.ParseFloat(p.SpotPrice, 64)
		if err != nil {
			return nil, opErr(op, fmt.Errorf("bad spot price %q: %w", p.SpotPrice, err))
		}
		sample := models.PriceSample{
			InstanceType: p.InstanceType,
			Zone:         p.AvailabilityZone,
			Price:        price,
		}
		if p.Timestamp != "" {
			ts, err := time.Parse(time.RFC3339, p.Timestamp)
			if err != nil {
				return nil, opErr(op, fmt.Errorf("bad timestamp %q: %w", p.Timestamp, err))
			}
			sample.Timestamp = ts
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// RequestSpotInstance replays the canned receipt; nothing is submitted
func (r *Replay) RequestSpotInstance(ctx context.Context, spec models.LaunchSpec) (models.SpotReceipt, error) {
	const op = "RequestSpotInstances"
	r.rec.Note("launch-spec", spec)

	var doc spotRequestDoc
	if err := r.decode(op, "fixtures/submit.json", &doc); err != nil {
		return models.SpotReceipt{}, err
	}
	if len(doc.SpotInstanceRequests) == 0 {
		return models.SpotReceipt{}, opErr(op, fmt.Errorf("empty response"))
	}

	req := doc.SpotInstanceRequests[0]
	return models.SpotReceipt{
		RequestID:     req.SpotInstanceRequestID,
		State:         req.State,
		StatusCode:    req.Status.Code,
		StatusMessage: req.Status.Message,
	}, nil
}
