// Package workflow sequences one run: query the provider, resolve a
// launch specification, let the operator pick a ranked offer and
// submit exactly one spot request.
package workflow

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"

	"github.com/younsl/spotbid/internal/models"
	"github.com/younsl/spotbid/pkg/config"
	"github.com/younsl/spotbid/pkg/diag"
	"github.com/younsl/spotbid/pkg/formatter"
	"github.com/younsl/spotbid/pkg/gateway"
	"github.com/younsl/spotbid/pkg/pricing"
	"github.com/younsl/spotbid/pkg/ranker"
	"github.com/younsl/spotbid/pkg/selector"
)

// ErrAborted means the operator declined the selection. It is not a
// failure: the driver exits 0 and removes the diagnostics log.
var ErrAborted = errors.New("selection aborted by operator")

const (
	// Trailing window of spot history the ranking is computed over.
	historyWindow = time.Hour

	// Bid used when TestBid is set, low enough that the provider will
	// never fulfill it.
	testBidPrice = 0.001
)

// Workflow drives one selection-and-reservation run
type Workflow struct {
	cfg    config.Config
	gw     gateway.Gateway
	prices *pricing.Client // nil disables the on-demand comparison
	rec    *diag.Recorder
	in     io.Reader
	out    io.Writer

	// Spinner animates the query phase. Off by default so tests and
	// piped output stay clean.
	Spinner bool
}

// New builds a workflow. All collaborators are fixed for the run.
func New(cfg config.Config, gw gateway.Gateway, prices *pricing.Client, rec *diag.Recorder, in io.Reader, out io.Writer) *Workflow {
	return &Workflow{cfg: cfg, gw: gw, prices: prices, rec: rec, in: in, out: out}
}

// Run executes the whole sequence. It returns nil on a successful
// submission, ErrAborted when the operator declines, and a fatal
// error otherwise. The reservation call happens at most once.
func (w *Workflow) Run(ctx context.Context) error {
	candidates, err := selector.CandidateTypes(models.InstanceTypeCatalog, w.cfg.TypePattern)
	if err != nil {
		return err
	}
	w.rec.Note("candidate-types", candidates)

	images, pairs, groups, samples, err := w.fetch(ctx, candidates)
	if err != nil {
		return err
	}

	image, err := selector.LatestImage(images)
	if err != nil {
		return err
	}
	w.rec.Note("resolved-image", image)

	keyPair, err := selector.KeyPair(pairs, w.cfg.KeyPattern)
	if err != nil {
		return err
	}
	w.rec.Note("resolved-key-pair", keyPair)

	group, err := selector.SecurityGroup(groups, w.cfg.GroupPattern)
	if err != nil {
		return err
	}
	w.rec.Note("resolved-group", group)

	offers, err := ranker.Rank(samples)
	if err != nil {
		return err
	}
	w.rec.Note("ranked-offers", offers)

	fmt.Fprintf(w.out, "Image:     %s (%s, created %s)\n", image.ImageID, image.Name, humanize.Time(image.CreatedAt))
	fmt.Fprintf(w.out, "Key pair:  %s (%s)\n", keyPair.Name, keyPair.Fingerprint)
	fmt.Fprintf(w.out, "Group:     %s (%s)\n\n", group.Name, group.GroupID)

	onDemand := w.prices.OnDemandPrices(ctx, candidates)
	w.rec.Note("on-demand-prices", onDemand)

	formatter.PrintOffers(w.out, offers, onDemand)

	choice, ok := w.promptSelection(len(offers))
	if !ok {
		formatter.Warnf(w.out, "No offer selected, nothing was requested.\n")
		return ErrAborted
	}
	offer := offers[choice-1]

	bid := w.cfg.BidMultiplier * offer.Price
	if w.cfg.TestBid {
		bid = testBidPrice
	}

	spec := models.LaunchSpec{
		ImageID:      image.ImageID,
		KeyName:      keyPair.Name,
		GroupID:      group.GroupID,
		InstanceType: offer.InstanceType,
		Zone:         offer.Zone,
		BidPrice:     bid,
	}
	w.rec.Note("launch-spec", spec)

	fmt.Fprintf(w.out, "\nRequesting %s in %s at %.4f (bid %.4f) ...\n", spec.InstanceType, spec.Zone, offer.Price, spec.BidPrice)

	receipt, err := w.gw.RequestSpotInstance(ctx, spec)
	if err != nil {
		return fmt.Errorf("spot request failed, check the EC2 console before retrying: %w", err)
	}
	w.rec.Note("receipt", receipt)

	formatter.Successf(w.out, "Spot request %s is %s\n", receipt.RequestID, receipt.State)
	if receipt.StatusMessage != "" {
		fmt.Fprintln(w.out, receipt.StatusMessage)
	}
	return nil
}

// fetch issues the four read-only queries concurrently. They have no
// data dependency on each other, so only the slowest one is waited
// for. Results land in per-query slots, no shared mutable state.
func (w *Workflow) fetch(ctx context.Context, candidates []string) ([]models.Image, []models.KeyPair, []models.SecurityGroup, []models.PriceSample, error) {
	var result struct {
		images  []models.Image
		pairs   []models.KeyPair
		groups  []models.SecurityGroup
		samples []models.PriceSample

		imagesErr, pairsErr, groupsErr, samplesErr error
	}

	var s *spinner.Spinner
	if w.Spinner {
		s = spinner.New(spinner.CharSets[9], 200*time.Millisecond)
		s.Suffix = " Querying provider records ..."
		s.Start()
	}

	var wg sync.WaitGroup
	wg.Add(4)
	go func() {
		defer wg.Done()
		result.images, result.imagesErr = w.gw.ListImages(ctx)
	}()
	go func() {
		defer wg.Done()
		result.pairs, result.pairsErr = w.gw.ListKeyPairs(ctx)
	}()
	go func() {
		defer wg.Done()
		result.groups, result.groupsErr = w.gw.ListSecurityGroups(ctx)
	}()
	go func() {
		defer wg.Done()
		result.samples, result.samplesErr = w.gw.SpotPriceHistory(ctx, candidates, historyWindow)
	}()
	wg.Wait()

	if s != nil {
		s.Stop()
	}

	for _, err := range []error{result.imagesErr, result.pairsErr, result.groupsErr, result.samplesErr} {
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	return result.images, result.pairs, result.groups, result.samples, nil
}

// promptSelection reads one line and validates it as an index in
// [1, n]. Anything else, including end-of-input, means abort.
func (w *Workflow) promptSelection(n int) (int, bool) {
	fmt.Fprintf(w.out, "\nSelect an offer [1-%d], anything else cancels: ", n)

	scanner := bufio.NewScanner(w.in)
	if !scanner.Scan() {
		return 0, false
	}

	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || choice < 1 || choice > n {
		return 0, false
	}
	return choice, true
}
